// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "familytable"

var (
	// NotificationsCreated counts stored notifications by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Notifications written by the fan-out engine.",
	}, []string{"type"})

	// AccessDenied counts authorization refusals by action.
	AccessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Requests refused by the scope resolver or the family directory.",
	}, []string{"action"})

	// TxRetries counts family operations retried after a conflict.
	TxRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "family_tx_retries_total",
		Help:      "Family operations retried after a concurrent modification.",
	}, []string{"op"})

	// RPCRequests counts handled RPCs by procedure and code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Handled RPCs.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency in seconds.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)
