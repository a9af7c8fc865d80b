package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

type mockStore struct {
	getFn   func(ctx context.Context, key string) ([]byte, bool, error)
	setFn   func(ctx context.Context, key string, blob []byte) error
	clearFn func(ctx context.Context) error

	data   map[string][]byte
	writes int
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *mockStore) Set(ctx context.Context, key string, blob []byte) error {
	m.writes++
	if m.setFn != nil {
		return m.setFn(ctx, key, blob)
	}
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

func (m *mockStore) Clear(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	m.data = map[string][]byte{}
	return nil
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newService(store domain.Store) *app.EntryLogService {
	return app.NewEntryLogService(store, app.WithClock(func() time.Time { return fixedNow }))
}

func mustAppend(t *testing.T, svc *app.EntryLogService, in app.AppendInput) *domain.Entry {
	t.Helper()
	e, err := svc.Append(context.Background(), in)
	if err != nil {
		t.Fatalf("append %+v: %v", in, err)
	}
	return e
}

func TestLoad_FirstRun(t *testing.T) {
	svc := newService(newMockStore())
	entries, firstRun, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !firstRun {
		t.Fatal("expected firstRun")
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log, got %d", len(entries))
	}
}

func TestLoad_CorruptBlobIsEmpty(t *testing.T) {
	store := newMockStore()
	store.data[domain.DefaultLogKey] = []byte("{oops")
	svc := newService(store)

	entries, firstRun, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !firstRun || len(entries) != 0 {
		t.Fatalf("expected empty first-run log, got %d entries firstRun=%v", len(entries), firstRun)
	}
}

func TestLoad_StoreError(t *testing.T) {
	store := newMockStore()
	store.getFn = func(_ context.Context, _ string) ([]byte, bool, error) {
		return nil, false, errors.New("disk gone")
	}
	svc := newService(store)

	_, _, err := svc.Load(context.Background())
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestLoad_Hydrates(t *testing.T) {
	store := newMockStore()
	first := newService(store)
	mustAppend(t, first, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})

	second := newService(store)
	entries, firstRun, err := second.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if firstRun {
		t.Fatal("did not expect firstRun")
	}
	if len(entries) != 1 || entries[0].Weight != 70 || entries[0].BMI != 22.9 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if !entries[0].Date.Equal(fixedNow) {
		t.Fatalf("date not preserved: %v", entries[0].Date)
	}
}

func TestAppend_Scenario(t *testing.T) {
	svc := newService(newMockStore())

	first := mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	if first.BMI != 22.9 {
		t.Fatalf("expected bmi 22.9, got %v", first.BMI)
	}

	second := mustAppend(t, svc, app.AppendInput{Weight: "69"})
	if second.Weight != 69 || second.TargetWeight != 65 || second.Height != 175 || second.Age != 28 {
		t.Fatalf("sticky fields not inherited: %+v", second)
	}
	if second.BMI != 22.5 {
		t.Fatalf("expected bmi 22.5, got %v", second.BMI)
	}
	if len(svc.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(svc.Entries()))
	}
}

func TestAppend_BMIProperty(t *testing.T) {
	cases := []struct{ weight, height string }{
		{"50", "150"}, {"82.4", "181"}, {"120", "190.5"}, {"45.2", "160"},
	}
	for _, tc := range cases {
		svc := newService(newMockStore())
		e := mustAppend(t, svc, app.AppendInput{Weight: tc.weight, TargetWeight: "60", Height: tc.height, Age: "30"})
		want := domain.Round1(e.Weight / ((e.Height / 100) * (e.Height / 100)))
		if e.BMI != want {
			t.Errorf("weight %s height %s: bmi %v; want %v", tc.weight, tc.height, e.BMI, want)
		}
	}
}

func TestAppend_OverrideSticky(t *testing.T) {
	svc := newService(newMockStore())
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	e := mustAppend(t, svc, app.AppendInput{Weight: "69", TargetWeight: "62"})
	if e.TargetWeight != 62 || e.Height != 175 || e.Age != 28 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestAppend_ValidationEmptyLog(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	_, err := svc.Append(context.Background(), app.AppendInput{Weight: "70"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"targetWeight", "height", "age"}
	if !reflect.DeepEqual(ve.Fields, want) {
		t.Fatalf("fields = %v; want %v", ve.Fields, want)
	}
	if len(svc.Entries()) != 0 {
		t.Fatal("log mutated on validation failure")
	}
	if store.writes != 0 {
		t.Fatalf("expected no store writes, got %d", store.writes)
	}
}

func TestAppend_ValidationBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   app.AppendInput
		want []string
	}{
		{"missing weight", app.AppendInput{TargetWeight: "65", Height: "175", Age: "28"}, []string{"weight"}},
		{"zero weight", app.AppendInput{Weight: "0", TargetWeight: "65", Height: "175", Age: "28"}, []string{"weight"}},
		{"negative height", app.AppendInput{Weight: "70", TargetWeight: "65", Height: "-175", Age: "28"}, []string{"height"}},
		{"non-numeric", app.AppendInput{Weight: "abc", TargetWeight: "x", Height: "175", Age: "28"}, []string{"weight", "targetWeight"}},
		{"fractional age", app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28.5"}, []string{"age"}},
		{"NaN weight", app.AppendInput{Weight: "NaN", TargetWeight: "65", Height: "175", Age: "28"}, []string{"weight"}},
		{"overflowing weight", app.AppendInput{Weight: "1e308", TargetWeight: "65", Height: "175", Age: "28"}, []string{"weight"}},
		{"overflowing target", app.AppendInput{Weight: "70", TargetWeight: "1e308", Height: "175", Age: "28"}, []string{"targetWeight"}},
		{"vanishing height", app.AppendInput{Weight: "70", TargetWeight: "65", Height: "1e-300", Age: "28"}, []string{"height"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(newMockStore())
			_, err := svc.Append(context.Background(), tc.in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !reflect.DeepEqual(ve.Fields, tc.want) {
				t.Fatalf("fields = %v; want %v", ve.Fields, tc.want)
			}
		})
	}
}

func TestAppend_OverflowLeavesLogSavable(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	writes := store.writes

	if _, err := svc.Append(context.Background(), app.AppendInput{Weight: "1e308"}); err == nil {
		t.Fatal("expected overflowing weight to be rejected")
	}
	if store.writes != writes || len(svc.Entries()) != 1 {
		t.Fatalf("rejected entry changed state: writes %d->%d, entries %d", writes, store.writes, len(svc.Entries()))
	}

	mustAppend(t, svc, app.AppendInput{Weight: "69"})
	if _, err := svc.EditLatestField(context.Background(), "age", "29"); err != nil {
		t.Fatalf("edit after rejected append: %v", err)
	}
	if _, err := domain.DecodeLog(store.data[domain.DefaultLogKey]); err != nil {
		t.Fatalf("stored blob unreadable: %v", err)
	}
}

func TestAppend_PersistenceError(t *testing.T) {
	store := newMockStore()
	store.setFn = func(_ context.Context, _ string, _ []byte) error { return errors.New("quota exceeded") }
	svc := newService(store)

	e, err := svc.Append(context.Background(), app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if e == nil || e.Weight != 70 {
		t.Fatalf("expected entry alongside error, got %v", e)
	}
	// In-memory state runs ahead of the store.
	if len(svc.Entries()) != 1 {
		t.Fatalf("expected in-memory entry, got %d", len(svc.Entries()))
	}
}

func TestDeleteAt(t *testing.T) {
	svc := newService(newMockStore())
	for _, w := range []string{"70", "69", "68"} {
		mustAppend(t, svc, app.AppendInput{Weight: w, TargetWeight: "65", Height: "175", Age: "28"})
	}

	if err := svc.DeleteAt(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := svc.Entries()
	if len(entries) != 2 || entries[0].Weight != 70 || entries[1].Weight != 68 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDeleteAt_OutOfRange(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	writes := store.writes

	for _, idx := range []int{1, -1, 42} {
		err := svc.DeleteAt(context.Background(), idx)
		var ie *domain.IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("index %d: expected IndexError, got %v", idx, err)
		}
	}
	if len(svc.Entries()) != 1 {
		t.Fatal("log changed on failed delete")
	}
	if store.writes != writes {
		t.Fatal("store written on failed delete")
	}
}

func TestDeleteAt_Persists(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	if err := svc.DeleteAt(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := domain.DecodeLog(store.data[domain.DefaultLogKey])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected persisted empty log, got %d", len(entries))
	}
}

func TestEditLatestField(t *testing.T) {
	svc := newService(newMockStore())
	mustAppend(t, svc, app.AppendInput{Weight: "72", TargetWeight: "65", Height: "175", Age: "30"})
	mustAppend(t, svc, app.AppendInput{Weight: "70"})
	before := svc.Entries()

	got, err := svc.EditLatestField(context.Background(), "age", "40")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Age != 40 {
		t.Fatalf("expected age 40, got %d", got.Age)
	}

	after := svc.Entries()
	if after[1].Age != 40 || after[1].BMI != before[1].BMI || after[1].Height != before[1].Height {
		t.Fatalf("unexpected latest entry: %+v", after[1])
	}
	if !reflect.DeepEqual(after[0], before[0]) {
		t.Fatal("earlier entry changed")
	}
}

func TestEditLatestField_HeightKeepsBMI(t *testing.T) {
	svc := newService(newMockStore())
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})

	got, err := svc.EditLatestField(context.Background(), "height", "180.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Height != 180.5 || got.BMI != 22.9 {
		t.Fatalf("unexpected entry: %+v", got)
	}

	next := mustAppend(t, svc, app.AppendInput{Weight: "70"})
	if next.Height != 180.5 {
		t.Fatalf("edited height not inherited: %+v", next)
	}
}

func TestEditLatestField_Errors(t *testing.T) {
	empty := newService(newMockStore())
	if _, err := empty.EditLatestField(context.Background(), "age", "40"); !errors.Is(err, domain.ErrEmptyLog) {
		t.Fatalf("expected ErrEmptyLog, got %v", err)
	}

	svc := newService(newMockStore())
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})

	tests := []struct {
		field, value string
	}{
		{"age", "40.5"},
		{"age", "-1"},
		{"height", "abc"},
		{"targetWeight", "0"},
		{"targetWeight", "1e308"},
		{"weight", "70"},
	}
	for _, tc := range tests {
		_, err := svc.EditLatestField(context.Background(), tc.field, tc.value)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s=%s: expected ValidationError, got %v", tc.field, tc.value, err)
		}
	}
	if latest, _ := svc.Latest(); latest.Age != 28 || latest.Height != 175 || latest.TargetWeight != 65 {
		t.Fatalf("latest changed on failed edit: %+v", latest)
	}
}

func TestClearAll(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.Entries()) != 0 {
		t.Fatal("expected empty log")
	}
	if _, ok, _ := store.Get(context.Background(), domain.DefaultLogKey); ok {
		t.Fatal("expected key absent after clear")
	}
}

func TestClearAll_StoreError(t *testing.T) {
	store := newMockStore()
	store.clearFn = func(_ context.Context) error { return errors.New("locked") }
	svc := newService(store)

	err := svc.ClearAll(context.Background())
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestFilterByRange(t *testing.T) {
	clock := fixedNow.AddDate(0, 0, -60)
	svc := app.NewEntryLogService(newMockStore(), app.WithClock(func() time.Time { return clock }))
	mustAppend(t, svc, app.AppendInput{Weight: "72", TargetWeight: "65", Height: "175", Age: "28"})
	clock = fixedNow.AddDate(0, 0, -10)
	mustAppend(t, svc, app.AppendInput{Weight: "71"})
	clock = fixedNow.AddDate(0, 0, -1)
	mustAppend(t, svc, app.AppendInput{Weight: "70"})

	all := svc.FilterByRange(domain.RangeAll, fixedNow)
	if !reflect.DeepEqual(all, svc.Entries()) {
		t.Fatal("all must return the whole log")
	}
	if got := svc.FilterByRange(domain.RangeMonth, fixedNow); len(got) != 2 || got[0].Weight != 71 {
		t.Fatalf("month: unexpected %+v", got)
	}
	if got := svc.FilterByRange(domain.RangeWeek, fixedNow); len(got) != 1 || got[0].Weight != 70 {
		t.Fatalf("week: unexpected %+v", got)
	}
}

func TestDisplay(t *testing.T) {
	svc := newService(newMockStore())
	for _, w := range []string{"70", "69", "68"} {
		mustAppend(t, svc, app.AppendInput{Weight: w, TargetWeight: "65", Height: "175", Age: "28"})
	}
	rows, err := svc.Display(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || rows[0].Index != 2 || rows[0].Entry.Weight != 68 || rows[2].Index != 0 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestMissingStickyFields(t *testing.T) {
	svc := newService(newMockStore())
	missing, err := svc.MissingStickyFields(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(missing) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", missing)
	}
	mustAppend(t, svc, app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"})
	missing, _ = svc.MissingStickyFields(context.Background())
	if len(missing) != 0 {
		t.Fatalf("expected none missing, got %v", missing)
	}
}

func TestWithKey(t *testing.T) {
	store := newMockStore()
	svc := app.NewEntryLogService(store, app.WithKey("profile-2"))
	if _, err := svc.Append(context.Background(), app.AppendInput{Weight: "70", TargetWeight: "65", Height: "175", Age: "28"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.data["profile-2"]; !ok {
		t.Fatal("expected blob under custom key")
	}
}
