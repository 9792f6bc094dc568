package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsToolCallsSucceeded is base for counter metric for tool calls that reached the upstream API
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsInvalid = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_invalid",
		Help:         "stats_tool_calls_invalid provides total tool calls rejected by parameter validation",
		RequiredTags: []string{"tool"},
	}

	StatsUpstreamResponses = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_upstream_responses",
		Help:         "stats_upstream_responses provides total responses received from the Yelp API",
		RequiredTags: []string{"tool", "status"},
	}

	StatsUpstreamBytesReceived = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_upstream_bytes_received",
		Help:         "stats_upstream_bytes_received provides total bytes received from the Yelp API",
		RequiredTags: []string{"tool"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfUpstreamCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_upstream_call",
		Help:         "perf_upstream_call provides duration of the Yelp API round trip",
		RequiredTags: []string{"method", "path"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfToolCall,
	&PerfUpstreamCall,
	&StatsToolCallsFailed,
	&StatsToolCallsInvalid,
	&StatsToolCallsSucceeded,
	&StatsUpstreamBytesReceived,
	&StatsUpstreamResponses,
}
