package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestInit_ExportsMetricsToRegistry(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	var logs bytes.Buffer

	instruments, shutdown, err := Init(ctx, Options{
		ServiceName:    "levaja-test",
		LogLevel:       "warn",
		Registerer:     registry,
		LogOutput:      &logs,
		DisableTracing: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(ctx) })

	counter, err := instruments.Meter("test").Int64Counter("test.requests")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "test_requests_total")

	instruments.Logger.Info("dropped below warn")
	instruments.Logger.Warn("kept")
	assert.NotContains(t, logs.String(), "dropped below warn")
	assert.Contains(t, logs.String(), "kept")
}

func TestInit_RequiresServiceName(t *testing.T) {
	_, _, err := Init(context.Background(), Options{})
	assert.Error(t, err)
}
