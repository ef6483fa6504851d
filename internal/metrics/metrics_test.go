package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_GlobalProvider(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.LinkCreated("building")
		m.LinksRemoved(3)
		m.Navigated("forward")
		m.LoadFinished(0.25, true)
		m.LoadDiscarded()
	})
}

func TestNewWithMeter_Noop(t *testing.T) {
	m, err := NewWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestProvider_Disabled(t *testing.T) {
	p, err := NewProvider(ProviderConfig{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	m, err := NewWithMeter(p.Meter(instrumentationName))
	require.NoError(t, err)
	m.LinkCreated("building")
	assert.NoError(t, p.Shutdown(t.Context()))
}

func TestProvider_RequiresWriter(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Enabled: true})
	assert.Error(t, err)
}

func TestProvider_ExportsOnShutdown(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	var out bytes.Buffer
	p, err := NewProvider(ProviderConfig{
		Enabled:     true,
		ServiceName: "gobuilding-test",
		Interval:    time.Hour,
		Writer:      &out,
	})
	require.NoError(t, err)

	m, err := New()
	require.NoError(t, err)
	m.LinkCreated("building")
	m.LinksRemoved(2)
	m.LoadDiscarded()

	require.NoError(t, p.Shutdown(t.Context()))
	assert.Contains(t, out.String(), "links.created")
	assert.Contains(t, out.String(), "links.removed")
	assert.Contains(t, out.String(), "loader.stale")
	assert.Contains(t, out.String(), "gobuilding-test")
}
