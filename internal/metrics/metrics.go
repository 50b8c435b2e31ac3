package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PickupsScheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agromarket_pickups_scheduled_total",
		Help: "Total number of pickups successfully scheduled.",
	})

	DriversAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agromarket_drivers_assigned_total",
		Help: "Total number of successful driver assignments.",
	})

	PickupsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agromarket_pickups_completed_total",
		Help: "Total number of pickups marked as completed.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agromarket_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	PickupCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agromarket_pickup_cache_items",
		Help: "Current number of active pickups held in the cache.",
	})
)
