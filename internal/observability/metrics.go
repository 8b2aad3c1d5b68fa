package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapTransitionsTotal counts successful swap lifecycle transitions by action.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of successful swap-request transitions by action",
	}, []string{"action"})

	// SwapTransitionConflicts counts transitions refused because the swap was
	// no longer in the expected source state, including lost races.
	SwapTransitionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transition_conflicts_total",
		Help: "Total number of swap transitions rejected by the conditional status update",
	}, []string{"action"})

	// FeedbackSubmissionsTotal counts feedback submissions by result.
	FeedbackSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_feedback_submissions_total",
		Help: "Total number of feedback submissions by result",
	}, []string{"result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WebSocketConnectionsTotal is the gauge of active swap-event WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})
)
