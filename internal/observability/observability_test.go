// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-composer/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(newLogger(types.LoggingConfig{Level: "info", Format: "json"}, &buf), "search")

	logger.Debug().Msg("hidden")
	logger.Info().Str("query", "graphene").Msg("fetching")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "fetching", entry["message"])
	assert.Equal(t, "search", entry["component"])
	assert.Equal(t, "graphene", entry["query"])
}

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveFetch("semantic_scholar", OutcomeOK, 4)
	m.ObserveFetch("semantic_scholar", OutcomeEmpty, 0)
	m.ObserveFetch("semantic_scholar", OutcomeOK, 2)
	m.ObserveGeneration("mock", OutcomeOK)
	m.ObserveCompose(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues("semantic_scholar", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues("semantic_scholar", OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("mock", OutcomeOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ComposeDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("x", OutcomeOK, 1)
		m.ObserveGeneration("x", OutcomeError)
		m.ObserveCompose(time.Now())
	})
}
