package app

import (
	"context"
	"errors"
	"time"

	"weightlog/internal/domain"
)

// ChartsService derives chart and summary views from the entry log.
type ChartsService struct {
	entries *EntryLogService
}

// NewChartsService creates a ChartsService reading from the given log.
func NewChartsService(entries *EntryLogService) *ChartsService {
	return &ChartsService{entries: entries}
}

// SeriesPoint is a single (date, weight) pair of the trend chart.
type SeriesPoint struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Weight float64   `json:"weight"`
	Unit   string    `json:"unit"`
}

// Summary is the latest-entry card set.
type Summary struct {
	NeedsSetup       bool    `json:"needsSetup"`
	Count            int     `json:"count"`
	Weight           float64 `json:"weight,omitempty"`
	TargetWeight     float64 `json:"targetWeight,omitempty"`
	BMI              float64 `json:"bmi,omitempty"`
	Category         string  `json:"category,omitempty"`
	DistanceToTarget float64 `json:"distanceToTarget,omitempty"`
	Unit             string  `json:"unit"`
}

// Series returns the chart points for r, with weights converted to unit.
// Undated entries cannot be placed on a time axis and are skipped. Every
// other point carries a "02 Jan" label, starting with the first.
func (s *ChartsService) Series(ctx context.Context, r domain.Range, unit string, now time.Time) ([]SeriesPoint, error) {
	if !domain.ValidUnit(unit) {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}
	if err := s.entries.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	filtered := s.entries.FilterByRange(r, now)
	points := make([]SeriesPoint, 0, len(filtered))
	for _, e := range filtered {
		if !e.Dated() {
			continue
		}
		label := ""
		if len(points)%2 == 0 {
			label = e.Date.In(time.Local).Format("02 Jan")
		}
		points = append(points, SeriesPoint{
			Date:   e.Date,
			Label:  label,
			Weight: domain.Round1(domain.ConvertWeight(e.Weight, domain.UnitKg, unit)),
			Unit:   unit,
		})
	}
	return points, nil
}

// Summary describes the latest entry, with weights converted to unit.
func (s *ChartsService) Summary(ctx context.Context, unit string) (*Summary, error) {
	if !domain.ValidUnit(unit) {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}
	if err := s.entries.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	latest, ok := s.entries.Latest()
	if !ok {
		return &Summary{NeedsSetup: true, Unit: unit}, nil
	}
	convert := func(v float64) float64 {
		return domain.Round1(domain.ConvertWeight(v, domain.UnitKg, unit))
	}
	return &Summary{
		Count:            len(s.entries.Entries()),
		Weight:           convert(latest.Weight),
		TargetWeight:     convert(latest.TargetWeight),
		BMI:              latest.BMI,
		Category:         domain.BMICategory(latest.BMI),
		DistanceToTarget: convert(domain.DistanceToTarget(latest)),
		Unit:             unit,
	}, nil
}
