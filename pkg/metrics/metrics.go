package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|fallback
	)
	CacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Cache invalidations by entity group",
		},
		[]string{"group"},
	)
)

var (
	ShiprocketRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiprocket_requests_total",
			Help: "Requests to the Shiprocket API",
		},
		[]string{"op", "result"}, // result: ok|error|auth_error
	)
	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiprocket_sync_runs_total",
			Help: "Reconciliation job runs",
		},
		[]string{"result"}, // ok|error
	)
	SyncOrdersUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shiprocket_sync_orders_updated_total",
			Help: "Orders whose status changed during reconciliation",
		},
	)
	DispatchRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_dispatch_retries_total",
			Help: "Retries while pushing orders to Shiprocket",
		},
	)
	DispatchDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shipment_dispatch_dropped_total",
			Help: "Orders dropped after exhausting dispatch retries",
		},
	)
)

var registerOnce sync.Once

func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CacheOps, CacheInvalidations,
			ShiprocketRequests, SyncRuns, SyncOrdersUpdated,
			DispatchRetries, DispatchDropped,
		)
	})
}
