package provider

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

func TestNew_ResolvesRegisteredInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	counters, histograms := prometrics.Standard(prometrics.New(reg, "", ""))

	tel := New(nil, nil, counters, histograms)
	require.NotNil(t, tel.Tracer())
	require.NotNil(t, tel.Logger())

	tel.Metrics().Counter(observability.MUsecaseRequests).Add(1,
		observability.L("use_case", "order.delete"),
		observability.L("outcome", "success"),
	)
	tel.Metrics().Histogram(observability.MUsecaseDuration).Observe(0.01,
		observability.L("use_case", "order.delete"),
	)

	count, err := testutil.GatherAndCount(reg, string(observability.MUsecaseRequests))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_UnknownKeyFallsBackToNop(t *testing.T) {
	tel := New(nil, nil, nil, nil)

	assert.NotPanics(t, func() {
		tel.Metrics().Counter("missing_total").Add(1)
		tel.Metrics().Histogram("missing_seconds").Observe(1)
	})
}
