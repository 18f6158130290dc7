package view

import (
	"context"

	"github.com/zulandar/cave/internal/aggregate"
	"github.com/zulandar/cave/internal/models"
)

// AvailabilityView lists probe results with per-node mean latency.
type AvailabilityView struct {
	Notice
	Checks  []models.AvailabilityCheck    `json:"checks"`
	Summary aggregate.AvailabilitySummary `json:"summary"`
}

// Availability loads every availability check.
func (l *Loader) Availability(ctx context.Context) AvailabilityView {
	ctx, done := l.begin(ctx, "availability")
	v := AvailabilityView{Checks: []models.AvailabilityCheck{}}
	v.Summary.Nodes = []aggregate.NodeMean{}
	defer func() { done(&v.Notice, v.Summary.Total) }()

	if l.cfgErr != nil {
		v.Notice = l.failure("availability", l.cfgErr)
		return v
	}
	checks, err := l.records.LoadAvailabilityChecks(ctx)
	if err != nil {
		v.Notice = l.failure("availability", err)
		return v
	}

	v.Checks = checks
	v.Summary = aggregate.Summarize(checks)
	if len(checks) == 0 {
		v.Notice = empty("No availability checks yet")
		return v
	}
	v.Notice = ok()
	return v
}
