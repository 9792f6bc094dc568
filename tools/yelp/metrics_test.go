package yelp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/effective-security/metrics"
	"github.com/effective-security/yelpmcp/tools/yelp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installSink(t *testing.T) *metrics.InmemSink {
	t.Helper()

	sink := metrics.NewInmemSink(time.Minute, time.Minute)
	_, err := metrics.NewGlobal(&metrics.Config{FilterDefault: true}, sink)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = metrics.NewGlobal(&metrics.Config{FilterDefault: true}, &metrics.BlackholeSink{})
	})
	return sink
}

func counters(sink *metrics.InmemSink) map[string]float64 {
	res := map[string]float64{}
	for _, intv := range sink.Data() {
		intv.RLock()
		for k, v := range intv.Counters {
			res[k] += v.Sum
		}
		intv.RUnlock()
	}
	return res
}

func samples(sink *metrics.InmemSink) map[string]int {
	res := map[string]int{}
	for _, intv := range sink.Data() {
		intv.RLock()
		for k, v := range intv.Samples {
			res[k] += v.Count
		}
		intv.RUnlock()
	}
	return res
}

func Test_Metrics(t *testing.T) {
	sink := installSink(t)

	notFound := `{"error":{"code":"BUSINESS_NOT_FOUND","description":"The requested business could not be found."}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFound))
	})

	details, err := yelp.NewBusinessDetailsTool(client)
	require.NoError(t, err)
	search, err := yelp.NewSearchTool(client)
	require.NoError(t, err)

	ctx := context.Background()
	res, err := details.Call(ctx, `{"business_id_or_alias":"nonexistent"}`)
	require.NoError(t, err)
	assert.Equal(t, notFound, res)

	_, err = search.Call(ctx, `{"term":"pizza"}`)
	require.Error(t, err)
	_, err = search.Call(ctx, `{"location":"NYC","limit":100}`)
	require.Error(t, err)
	_, err = search.Call(ctx, "not json")
	require.Error(t, err)

	c := counters(sink)
	assert.Equal(t, 1.0, c["stats_upstream_responses;tool=yelp_business_details;status=404"])
	assert.Equal(t, float64(len(notFound)), c["stats_upstream_bytes_received;tool=yelp_business_details"])
	assert.Equal(t, 1.0, c["stats_tool_calls_succeeded;tool=yelp_business_details"])
	assert.Equal(t, 3.0, c["stats_tool_calls_invalid;tool=yelp_search"])
	assert.Zero(t, c["stats_upstream_responses;tool=yelp_search;status=404"])

	s := samples(sink)
	assert.Equal(t, 1, s["perf_tool_call;tool=yelp_business_details"])
	assert.Equal(t, 1, s["perf_upstream_call;method=GET;path="+yelp.PathBusinessDetails])
}
