package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rangos",
		Subsystem: "orders",
		Name:      "transitions_applied_total",
		Help:      "Order status transitions successfully applied.",
	}, []string{"from", "to"})

	transitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rangos",
		Subsystem: "orders",
		Name:      "transitions_rejected_total",
		Help:      "Order status transitions rejected, by reason.",
	}, []string{"reason"})

	topProductsCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rangos",
		Subsystem: "products",
		Name:      "top_products_cache_total",
		Help:      "Top-products cache lookups, by result.",
	}, []string{"result"})
)
