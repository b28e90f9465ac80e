package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 列表缓存命中情况指标，按视图维度拆分
var (
	cacheHitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keep_note",
		Subsystem: "cache",
		Name:      "hit_total",
		Help:      "Total number of note list cache hits.",
	}, []string{"view"})

	cacheMissTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keep_note",
		Subsystem: "cache",
		Name:      "miss_total",
		Help:      "Total number of note list cache misses.",
	}, []string{"view"})

	cacheInvalidateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "keep_note",
		Subsystem: "cache",
		Name:      "invalidate_total",
		Help:      "Total number of owner-wide cache invalidations.",
	})
)
