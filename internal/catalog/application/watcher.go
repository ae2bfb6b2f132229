package application

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/mq"
)

// SnapshotKind 快照种类
type SnapshotKind string

const (
	KindCatalog    SnapshotKind = "catalog"
	KindCategories SnapshotKind = "categories"
)

// MessageSource 上游变更通知流。投递语义为 at-least-once 且与写入无序。
type MessageSource interface {
	ReadMessage(ctx context.Context) (*mq.Message, error)
}

// ChangeWatcher 订阅商品与分类变更通知。每个事件同步置脏对应缓存，
// 再把重建触发投入内部队列，由单独的任务消费；队列满时丢弃触发事件
// 不会丢失更新，因为脏标记已先行生效。
type ChangeWatcher struct {
	listingSource  MessageSource
	categorySource MessageSource
	catalog        *SnapshotCache[domain.CatalogSnapshot]
	categories     *SnapshotCache[domain.CategorySnapshot]
	proactive      bool
	metrics        *metrics.Metrics

	events  chan SnapshotKind
	started atomic.Bool
}

func NewChangeWatcher(
	listingSource, categorySource MessageSource,
	catalog *SnapshotCache[domain.CatalogSnapshot],
	categories *SnapshotCache[domain.CategorySnapshot],
	proactive bool,
	m *metrics.Metrics,
) *ChangeWatcher {
	return &ChangeWatcher{
		listingSource:  listingSource,
		categorySource: categorySource,
		catalog:        catalog,
		categories:     categories,
		proactive:      proactive,
		metrics:        m,
		events:         make(chan SnapshotKind, 16),
	}
}

// Start 启动订阅循环与重建触发任务。重复调用是幂等的，
// 每个进程生命周期内每条通知流只有一个活跃订阅。
func (w *ChangeWatcher) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go w.consume(ctx, w.listingSource, KindCatalog)
	go w.consume(ctx, w.categorySource, KindCategories)
	go w.triggerLoop(ctx)
}

// Observe 处理一条变更通知：置脏并按需排队一次主动重建。
func (w *ChangeWatcher) Observe(ctx context.Context, kind SnapshotKind) {
	switch kind {
	case KindCatalog:
		w.catalog.Invalidate()
	case KindCategories:
		w.categories.Invalidate()
	}
	if w.metrics != nil {
		w.metrics.InvalidationsTotal.WithLabelValues(string(kind)).Inc()
	}
	if !w.proactive {
		return
	}
	select {
	case w.events <- kind:
	default:
		// 已有同类触发在队列中等待，脏标记保证更新不会丢失
	}
}

func (w *ChangeWatcher) consume(ctx context.Context, src MessageSource, kind SnapshotKind) {
	for {
		msg, err := src.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Notification read failed", "kind", kind, "error", err)
			time.Sleep(time.Second)
			continue
		}
		logger.Debug(ctx, "Change notification received", "kind", kind, "key", msg.Key, "offset", msg.Offset)
		w.Observe(ctx, kind)
	}
}

func (w *ChangeWatcher) triggerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case kind := <-w.events:
			w.rebuild(ctx, kind)
		}
	}
}

func (w *ChangeWatcher) rebuild(ctx context.Context, kind SnapshotKind) {
	start := time.Now()
	var err error
	switch kind {
	case KindCatalog:
		_, err = w.catalog.Get(ctx)
	case KindCategories:
		_, err = w.categories.Get(ctx)
	}
	if err != nil {
		logger.Error(ctx, "Proactive rebuild failed", "kind", kind, "error", err)
		return
	}
	logger.Info(ctx, "Proactive rebuild completed", "kind", kind, "duration", time.Since(start))
}
