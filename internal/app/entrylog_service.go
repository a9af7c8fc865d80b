// Package app holds the application services and business logic.
package app

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"weightlog/internal/domain"
)

// Sticky profile fields that carry over from the latest entry.
const (
	FieldTargetWeight = "targetWeight"
	FieldHeight       = "height"
	FieldAge          = "age"
)

// StickyFields lists the fields EditLatestField accepts.
var StickyFields = []string{FieldTargetWeight, FieldHeight, FieldAge}

// AppendInput carries raw form text for a new entry. Blank sticky fields
// inherit from the latest entry.
type AppendInput struct {
	Weight       string
	TargetWeight string
	Height       string
	Age          string
}

// DisplayRow is an entry paired with its chronological position.
type DisplayRow struct {
	Index int
	Entry domain.Entry
}

// EntryLogService owns the entry log and keeps the store in step with it.
// It is not safe for concurrent use; callers serialize access.
type EntryLogService struct {
	store  domain.Store
	key    string
	now    func() time.Time
	log    []domain.Entry
	loaded bool
}

// Option configures an EntryLogService.
type Option func(*EntryLogService)

// WithKey overrides the store key the log is kept under.
func WithKey(key string) Option {
	return func(s *EntryLogService) { s.key = key }
}

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *EntryLogService) { s.now = now }
}

// NewEntryLogService creates an EntryLogService backed by the given store.
func NewEntryLogService(store domain.Store, opts ...Option) *EntryLogService {
	s := &EntryLogService{store: store, key: domain.DefaultLogKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the log from the store. firstRun is true when nothing usable
// was stored, in which case the caller should ask for initial data. A blob
// that fails to decode is treated the same as no data.
func (s *EntryLogService) Load(ctx context.Context) (entries []domain.Entry, firstRun bool, err error) {
	blob, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, false, &domain.PersistenceError{Op: "load", Err: err}
	}
	s.loaded = true
	if !ok {
		s.log = []domain.Entry{}
		return s.Entries(), true, nil
	}
	decoded, err := domain.DecodeLog(blob)
	if err != nil {
		log.Printf("entry log %q unreadable, starting empty: %v", s.key, err)
		s.log = []domain.Entry{}
		return s.Entries(), true, nil
	}
	s.log = decoded
	return s.Entries(), len(decoded) == 0, nil
}

// EnsureLoaded runs Load once if nothing has been read yet.
func (s *EntryLogService) EnsureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	_, _, err := s.Load(ctx)
	return err
}

// Entries returns a copy of the log in chronological order.
func (s *EntryLogService) Entries() []domain.Entry {
	out := make([]domain.Entry, len(s.log))
	copy(out, s.log)
	return out
}

// Latest returns the most recent entry.
func (s *EntryLogService) Latest() (domain.Entry, bool) {
	if len(s.log) == 0 {
		return domain.Entry{}, false
	}
	return s.log[len(s.log)-1], true
}

// MissingStickyFields lists the sticky fields a new entry must supply
// because there is nothing to inherit them from.
func (s *EntryLogService) MissingStickyFields(ctx context.Context) ([]string, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	if len(s.log) > 0 {
		return nil, nil
	}
	return append([]string(nil), StickyFields...), nil
}

// Append validates in, builds a new entry stamped now and persists the log.
// On a store failure the entry is returned together with a
// *domain.PersistenceError.
func (s *EntryLogService) Append(ctx context.Context, in AppendInput) (*domain.Entry, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	latest, hasLatest := s.Latest()

	var bad []string
	weight, ok := parsePositiveFloat(in.Weight)
	if !ok {
		bad = append(bad, "weight")
	}
	target, ok := resolveFloat(in.TargetWeight, latest.TargetWeight, hasLatest)
	if !ok {
		bad = append(bad, FieldTargetWeight)
	}
	height, ok := resolveFloat(in.Height, latest.Height, hasLatest)
	if !ok {
		bad = append(bad, FieldHeight)
	}
	age, ok := resolveInt(in.Age, latest.Age, hasLatest)
	if !ok {
		bad = append(bad, FieldAge)
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}

	e := domain.NewEntry(weight, target, height, age, s.now())
	if bad := domain.OverflowFields(e); len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}
	s.log = append(s.log, e)
	if err := s.persist(ctx, "append"); err != nil {
		return &e, err
	}
	return &e, nil
}

// DeleteAt removes the entry at a chronological index.
func (s *EntryLogService) DeleteAt(ctx context.Context, index int) error {
	if err := s.EnsureLoaded(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.log) {
		return &domain.IndexError{Index: index, Len: len(s.log)}
	}
	next := make([]domain.Entry, 0, len(s.log)-1)
	next = append(next, s.log[:index]...)
	next = append(next, s.log[index+1:]...)
	s.log = next
	return s.persist(ctx, "delete")
}

// EditLatestField overwrites one sticky field of the latest entry. The
// entry's stored BMI is left as it was computed at creation.
func (s *EntryLogService) EditLatestField(ctx context.Context, field, value string) (*domain.Entry, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	if field != FieldTargetWeight && field != FieldHeight && field != FieldAge {
		return nil, &domain.ValidationError{Fields: []string{field}}
	}
	if len(s.log) == 0 {
		return nil, domain.ErrEmptyLog
	}

	latest := &s.log[len(s.log)-1]
	updated := *latest
	switch field {
	case FieldAge:
		v, ok := parsePositiveInt(value)
		if !ok {
			return nil, &domain.ValidationError{Fields: []string{field}}
		}
		updated.Age = v
	case FieldHeight, FieldTargetWeight:
		v, ok := parsePositiveFloat(value)
		if !ok {
			return nil, &domain.ValidationError{Fields: []string{field}}
		}
		if field == FieldHeight {
			updated.Height = v
		} else {
			updated.TargetWeight = v
		}
	}

	if len(domain.OverflowFields(updated)) > 0 {
		return nil, &domain.ValidationError{Fields: []string{field}}
	}

	*latest = updated
	if err := s.persist(ctx, "edit "+field); err != nil {
		return &updated, err
	}
	return &updated, nil
}

// ClearAll empties the log and wipes the store.
func (s *EntryLogService) ClearAll(ctx context.Context) error {
	s.log = []domain.Entry{}
	s.loaded = true
	if err := s.store.Clear(ctx); err != nil {
		return &domain.PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// FilterByRange returns the entries inside r relative to now. It does not
// touch the store; call Load first to read persisted data.
func (s *EntryLogService) FilterByRange(r domain.Range, now time.Time) []domain.Entry {
	return domain.FilterEntries(s.log, r, now)
}

// Display returns the log newest first, each row keeping the chronological
// index DeleteAt expects.
func (s *EntryLogService) Display(ctx context.Context) ([]DisplayRow, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	rows := make([]DisplayRow, 0, len(s.log))
	for i := len(s.log) - 1; i >= 0; i-- {
		rows = append(rows, DisplayRow{Index: i, Entry: s.log[i]})
	}
	return rows, nil
}

func (s *EntryLogService) persist(ctx context.Context, op string) error {
	blob, err := domain.EncodeLog(s.log)
	if err != nil {
		return &domain.PersistenceError{Op: op, Err: err}
	}
	if err := s.store.Set(ctx, s.key, blob); err != nil {
		return &domain.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func resolveFloat(raw string, inherited float64, hasLatest bool) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return inherited, hasLatest && inherited > 0
	}
	return parsePositiveFloat(raw)
}

func resolveInt(raw string, inherited int, hasLatest bool) (int, bool) {
	if strings.TrimSpace(raw) == "" {
		return inherited, hasLatest && inherited > 0
	}
	return parsePositiveInt(raw)
}

func parsePositiveFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func parsePositiveInt(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
