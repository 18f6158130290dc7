// Package view assembles the per-page tuples the presentation layer shows:
// the filtered entities, their derived fields, a description of the applied
// filters, and a status saying whether there is anything to show. Store and
// configuration failures are converted into a status here and never
// returned as errors.
package view

import (
	"context"
	"errors"
	"time"

	"github.com/zulandar/cave/internal/config"
	"github.com/zulandar/cave/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Status is the outcome of assembling one view.
type Status string

const (
	StatusOK            Status = "ok"
	StatusEmpty         Status = "empty"
	StatusNoSelection   Status = "no_selection"
	StatusUnavailable   Status = "unavailable"
	StatusConfigMissing Status = "configuration_missing"
)

// Failed reports whether the status stops the view from rendering data.
func (s Status) Failed() bool {
	return s == StatusUnavailable || s == StatusConfigMissing
}

// Notice is the banner shown with a view.
type Notice struct {
	Status  Status   `json:"status"`
	Message string   `json:"message,omitempty"`
	Hints   []string `json:"hints,omitempty"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func ok() Notice { return Notice{Status: StatusOK} }

func empty(msg string) Notice { return Notice{Status: StatusEmpty, Message: msg} }

func noSelection(msg string) Notice { return Notice{Status: StatusNoSelection, Message: msg} }

// Loader reads both stores on every call; nothing is cached between views.
type Loader struct {
	records *store.RecordStore
	logs    *store.LogStore
	cfgErr  error
	log     *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithMetrics records view loads into m.
func WithMetrics(m *Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// NewLoader resolves the store locations from cfg. A configuration without
// a subnet root still yields a Loader; every view it assembles then reports
// StatusConfigMissing.
func NewLoader(cfg *config.Config, opts ...Option) *Loader {
	l := &Loader{
		log:     zap.NewNop(),
		metrics: NewMetrics(nil),
		tracer:  otel.Tracer("github.com/zulandar/cave/internal/view"),
	}
	for _, opt := range opts {
		opt(l)
	}

	paths, err := cfg.Resolve()
	if err != nil {
		l.cfgErr = err
		return l
	}
	l.records = store.NewRecordStore(paths.Database, l.log)
	l.logs = store.NewLogStore(paths.LogFile, l.log)
	return l
}

// Paths returns the resolved store locations, or an error wrapping
// config.ErrConfigurationMissing.
func (l *Loader) Paths() (config.Paths, error) {
	if l.cfgErr != nil {
		return config.Paths{}, l.cfgErr
	}
	return config.Paths{LogFile: l.logs.Path(), Database: l.records.Path()}, nil
}

// begin starts the span and timer for one view. The returned func records
// the final notice and item count.
func (l *Loader) begin(ctx context.Context, name string) (context.Context, func(*Notice, int)) {
	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "view."+name)
	return ctx, func(n *Notice, items int) {
		l.metrics.observe(name, n.Status, items, time.Since(start))
		span.SetAttributes(
			attribute.String("view.status", string(n.Status)),
			attribute.Int("view.items", items),
		)
		if n.Status.Failed() {
			span.SetStatus(codes.Error, n.Message)
		}
		span.End()
	}
}

// failure converts a configuration or store error into a notice. Any other
// error is reported as unavailable data.
func (l *Loader) failure(view string, err error) Notice {
	if errors.Is(err, config.ErrConfigurationMissing) {
		return Notice{
			Status:  StatusConfigMissing,
			Message: err.Error(),
			Hints:   []string{"Set " + config.EnvSubnetRoot + " to the absolute path of the subnet repository"},
		}
	}

	n := Notice{Status: StatusUnavailable, Message: err.Error()}
	var ue *store.UnavailableError
	if errors.As(err, &ue) {
		n.Hints = ue.Hints()
	}
	l.log.Warn("view data unavailable", zap.String("view", view), zap.Error(err))
	return n
}
