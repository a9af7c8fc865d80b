// Package domain contains the core business entities and interfaces.
package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Entry is a single weight measurement with its sticky profile fields and
// the BMI derived at creation time.
type Entry struct {
	Weight       float64
	TargetWeight float64
	Height       float64
	Age          int
	Date         time.Time
	BMI          float64

	// rawDate keeps a stored date string that could not be parsed so that a
	// re-save writes it back unchanged.
	rawDate string
}

// entryJSON is the persisted shape. Field names and types must stay stable
// for blobs written by earlier versions.
type entryJSON struct {
	Weight       float64 `json:"weight"`
	TargetWeight float64 `json:"targetWeight"`
	Height       float64 `json:"height"`
	Age          float64 `json:"age"`
	Date         string  `json:"date"`
	BMI          float64 `json:"bmi"`
}

// NewEntry builds an entry stamped at t with its BMI computed from weight and
// height.
func NewEntry(weight, targetWeight, height float64, age int, t time.Time) Entry {
	return Entry{
		Weight:       weight,
		TargetWeight: targetWeight,
		Height:       height,
		Age:          age,
		Date:         t,
		BMI:          ComputeBMI(weight, height),
	}
}

// Dated reports whether the entry carries a usable timestamp.
func (e Entry) Dated() bool {
	return !e.Date.IsZero()
}

// DateString returns the string that is persisted for the entry's date.
func (e Entry) DateString() string {
	if !e.Dated() {
		return e.rawDate
	}
	return e.Date.Format(time.RFC3339Nano)
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Weight:       e.Weight,
		TargetWeight: e.TargetWeight,
		Height:       e.Height,
		Age:          float64(e.Age),
		Date:         e.DateString(),
		BMI:          e.BMI,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Dates in the legacy locale
// format are accepted; anything unparseable is kept verbatim.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var w entryJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = Entry{
		Weight:       w.Weight,
		TargetWeight: w.TargetWeight,
		Height:       w.Height,
		Age:          int(math.Round(w.Age)),
		BMI:          w.BMI,
	}
	if t, ok := ParseEntryDate(w.Date); ok {
		e.Date = t
	} else {
		e.rawDate = w.Date
	}
	return nil
}

var localeSpaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

var (
	monthFirstLayouts = []string{
		"1/2/2006, 3:04:05 PM",
		"1/2/2006, 15:04:05",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 15:04:05",
	}
	dayFirstLayouts = []string{
		"2/1/2006, 3:04:05 PM",
		"2/1/2006, 15:04:05",
		"2/1/2006 3:04:05 PM",
		"2/1/2006 15:04:05",
	}
	isoLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// ParseEntryDate parses a persisted date string. RFC 3339 is tried first,
// then the locale layouts older blobs were written with, which are
// interpreted in the local time zone. A slash date is read month-first or
// day-first only when one of its first two parts is above 12 (or both are
// equal); otherwise the order cannot be told and the date is rejected.
func ParseEntryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	// Newer ICU builds put a narrow no-break space before AM/PM.
	s = strings.ToUpper(localeSpaces.Replace(s))

	layouts := isoLayouts
	if a, b, ok := slashParts(s); ok {
		switch {
		case a == b, a <= 12 && b > 12:
			layouts = monthFirstLayouts
		case a > 12 && b <= 12:
			layouts = dayFirstLayouts
		default:
			return time.Time{}, false
		}
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// slashParts returns the first two numbers of an "a/b/yyyy" date.
func slashParts(s string) (a, b int, ok bool) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 3 {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	return a, b, errA == nil && errB == nil
}

// EncodeLog serializes the log into the persisted blob.
func EncodeLog(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// DecodeLog parses a persisted blob.
func DecodeLog(blob []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// DistanceToTarget is the absolute gap between an entry's weight and its
// target weight, rounded to one decimal.
func DistanceToTarget(e Entry) float64 {
	return Round1(math.Abs(e.Weight - e.TargetWeight))
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// OverflowFields lists the fields of e whose derived values (BMI, the
// one-decimal kg and lb figures) are not finite. Such an entry cannot be
// persisted or rendered.
func OverflowFields(e Entry) []string {
	var bad []string
	bmiOK := finite(e.BMI)
	if !finite(Round1(ConvertWeight(e.Weight, UnitKg, UnitLb))) || (!bmiOK && e.Height >= 1) {
		bad = append(bad, "weight")
	}
	if !finite(Round1(ConvertWeight(e.TargetWeight, UnitKg, UnitLb))) {
		bad = append(bad, "targetWeight")
	}
	if !bmiOK && e.Height < 1 {
		bad = append(bad, "height")
	}
	return bad
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
