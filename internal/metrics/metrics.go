package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/philipparndt/gobuilding/internal/metrics"

// Metrics counts link and navigation activity. Without a configured
// OTel provider every instrument is a no-op.
type Metrics struct {
	linksCreated  metric.Int64Counter
	linksRemoved  metric.Int64Counter
	navigations   metric.Int64Counter
	loadsFailed   metric.Int64Counter
	loadsStale    metric.Int64Counter
	loadsDuration metric.Float64Histogram
}

// New creates the instruments on the global meter provider.
func New() (*Metrics, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates the instruments on the given meter.
func NewWithMeter(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)

	if mt.linksCreated, err = m.Int64Counter("links.created",
		metric.WithDescription("Links placed on an object")); err != nil {
		return nil, fmt.Errorf("creating links.created counter: %w", err)
	}
	if mt.linksRemoved, err = m.Int64Counter("links.removed",
		metric.WithDescription("Links removed, including bulk clears")); err != nil {
		return nil, fmt.Errorf("creating links.removed counter: %w", err)
	}
	if mt.navigations, err = m.Int64Counter("navigation.transitions",
		metric.WithDescription("Navigation transitions by kind")); err != nil {
		return nil, fmt.Errorf("creating navigation.transitions counter: %w", err)
	}
	if mt.loadsFailed, err = m.Int64Counter("loader.failed",
		metric.WithDescription("Asset loads that failed")); err != nil {
		return nil, fmt.Errorf("creating loader.failed counter: %w", err)
	}
	if mt.loadsStale, err = m.Int64Counter("loader.stale",
		metric.WithDescription("Asset loads discarded because a newer navigation superseded them")); err != nil {
		return nil, fmt.Errorf("creating loader.stale counter: %w", err)
	}
	if mt.loadsDuration, err = m.Float64Histogram("loader.duration",
		metric.WithDescription("Asset decode time"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating loader.duration histogram: %w", err)
	}

	return &mt, nil
}

// LinkCreated records a new link on object.
func (m *Metrics) LinkCreated(object string) {
	m.linksCreated.Add(context.Background(), 1, metric.WithAttributes(attribute.String("object", object)))
}

// LinksRemoved records n removed links.
func (m *Metrics) LinksRemoved(n int) {
	m.linksRemoved.Add(context.Background(), int64(n))
}

// Navigated records a navigation transition ("forward", "back", "reset").
func (m *Metrics) Navigated(kind string) {
	m.navigations.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// LoadFinished records a completed decode.
func (m *Metrics) LoadFinished(seconds float64, failed bool) {
	m.loadsDuration.Record(context.Background(), seconds)
	if failed {
		m.loadsFailed.Add(context.Background(), 1)
	}
}

// LoadDiscarded records a stale load result.
func (m *Metrics) LoadDiscarded() {
	m.loadsStale.Add(context.Background(), 1)
}
