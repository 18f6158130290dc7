package view

import (
	"context"
	"fmt"

	"github.com/zulandar/cave/internal/aggregate"
	"github.com/zulandar/cave/internal/filter"
	"github.com/zulandar/cave/internal/models"
)

// ResponseRow pairs a response with its wall-clock elapsed time. The stored
// processing_time is kept on the response itself; the two are not merged.
type ResponseRow struct {
	models.Response
	Elapsed        string   `json:"elapsed,omitempty"`
	ElapsedSeconds *float64 `json:"elapsed_seconds,omitempty"`
}

// NewResponseRow derives the elapsed fields for r.
func NewResponseRow(r models.Response) ResponseRow {
	row := ResponseRow{Response: r}
	if d, ok := aggregate.ResponseElapsed(r); ok {
		row.Elapsed = aggregate.FormatElapsed(d)
		secs := d.Seconds()
		row.ElapsedSeconds = &secs
	}
	return row
}

// ToMap extends the response row dictionary with the elapsed fields.
func (r ResponseRow) ToMap() map[string]any {
	m := r.Response.ToMap()
	if r.ElapsedSeconds != nil {
		m["elapsed"] = r.Elapsed
		m["elapsed_seconds"] = *r.ElapsedSeconds
	}
	return m
}

// ResponsesQuery selects a response view. An empty Type lists every type in
// the base shape. SelectedID 0 means no detail row.
type ResponsesQuery struct {
	Type       models.ChallengeType
	Pending    bool
	Filter     filter.ResponseSelection
	SelectedID int64
}

// ResponsesView lists responses after filtering.
type ResponsesView struct {
	Notice
	Type      models.ChallengeType     `json:"type,omitempty"`
	Pending   bool                     `json:"pending"`
	Responses []ResponseRow            `json:"responses"`
	Displayed int                      `json:"displayed"`
	Total     int                      `json:"total"`
	Filters   []string                 `json:"filters"`
	Selection filter.ResponseSelection `json:"selection"`
	Options   filter.ResponseOptions   `json:"options"`
	Selected  *ResponseRow             `json:"selected,omitempty"`
	Detail    Notice                   `json:"detail"`
}

// Responses loads responses per q. Pending lists unevaluated responses of
// every type, newest first.
func (l *Loader) Responses(ctx context.Context, q ResponsesQuery) ResponsesView {
	name := "responses"
	if q.Pending {
		name = "pending"
	} else if q.Type != "" {
		name += "_" + string(q.Type)
	}
	ctx, done := l.begin(ctx, name)
	v := ResponsesView{
		Type:      q.Type,
		Pending:   q.Pending,
		Selection: q.Filter,
		Filters:   orEmpty(q.Filter.Describe()),
		Responses: []ResponseRow{},
	}
	defer func() { done(&v.Notice, v.Displayed) }()

	if l.cfgErr != nil {
		v.Notice = l.failure(name, l.cfgErr)
		return v
	}
	var (
		responses []models.Response
		err       error
	)
	if q.Pending {
		responses, err = l.records.LoadPendingResponses(ctx)
	} else {
		responses, err = l.records.LoadResponses(ctx, q.Type)
	}
	if err != nil {
		v.Notice = l.failure(name, err)
		return v
	}

	matched := filter.Responses(responses, q.Filter)
	v.Total = len(responses)
	v.Displayed = len(matched)
	v.Options = filter.DiscoverResponseOptions(responses)
	v.Responses = make([]ResponseRow, len(matched))
	for i, r := range matched {
		v.Responses[i] = NewResponseRow(r)
	}

	switch {
	case v.Total == 0 && q.Pending:
		v.Notice = empty("No responses are waiting for evaluation")
	case v.Total == 0:
		v.Notice = empty("No responses yet")
	case v.Displayed == 0:
		v.Notice = empty("No responses matched. Please update your filters")
	default:
		v.Notice = ok()
	}
	v.Selected, v.Detail = selectResponse(v.Responses, q.SelectedID)
	return v
}

// Pending is Responses for unevaluated responses.
func (l *Loader) Pending(ctx context.Context, sel filter.ResponseSelection) ResponsesView {
	return l.Responses(ctx, ResponsesQuery{Pending: true, Filter: sel})
}

func selectResponse(rows []ResponseRow, id int64) (*ResponseRow, Notice) {
	if id == 0 {
		return nil, noSelection("Select a response to see its details")
	}
	for i := range rows {
		if rows[i].ID == id {
			r := rows[i]
			return &r, ok()
		}
	}
	return nil, noSelection(fmt.Sprintf("Response %d not found; select another", id))
}
