// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/marketplace/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 快照重建计数
	SnapshotRebuildsTotal *prometheus.CounterVec
	// 快照重建失败计数
	SnapshotRebuildFailures *prometheus.CounterVec
	// 快照重建耗时
	SnapshotRebuildDuration prometheus.Histogram
	// 当前快照中的商品数
	SnapshotListings prometheus.Gauge
	// 分区抓取失败计数
	PartitionFetchFailures prometheus.Counter
	// 缓存失效事件计数
	InvalidationsTotal *prometheus.CounterVec
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotRebuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "snapshot_rebuilds_total",
			Help:      "Total snapshot rebuilds",
		}, []string{"kind"}),
		SnapshotRebuildFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "snapshot_rebuild_failures_total",
			Help:      "Total failed snapshot rebuilds",
		}, []string{"kind"}),
		SnapshotRebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "snapshot_rebuild_duration_seconds",
			Help:      "Snapshot rebuild duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotListings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "snapshot_listings",
			Help:      "Number of listings in the current catalog snapshot",
		}),
		PartitionFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "partition_fetch_failures_total",
			Help:      "Total per-seller partition fetch failures",
		}),
		InvalidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: serviceName,
			Name:      "invalidations_total",
			Help:      "Total cache invalidation events observed",
		}, []string{"kind"}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	metrics := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SnapshotRebuildsTotal,
		m.SnapshotRebuildFailures,
		m.SnapshotRebuildDuration,
		m.SnapshotListings,
		m.PartitionFetchFailures,
		m.InvalidationsTotal,
	}

	for _, metric := range metrics {
		if err := prometheus.DefaultRegisterer.Register(metric); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
