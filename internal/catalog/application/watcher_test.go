package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/mq"
)

type fakeSource struct {
	ch chan *mq.Message
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan *mq.Message, 4)}
}

func (f *fakeSource) ReadMessage(ctx context.Context) (*mq.Message, error) {
	select {
	case msg := <-f.ch:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func countingCatalogCache(builds *atomic.Int32) *SnapshotCache[domain.CatalogSnapshot] {
	return NewSnapshotCache(func(ctx context.Context) (*domain.CatalogSnapshot, error) {
		builds.Add(1)
		return &domain.CatalogSnapshot{BuiltAt: time.Now()}, nil
	})
}

func countingCategoryCache(builds *atomic.Int32) *SnapshotCache[domain.CategorySnapshot] {
	return NewSnapshotCache(func(ctx context.Context) (*domain.CategorySnapshot, error) {
		builds.Add(1)
		return &domain.CategorySnapshot{BuiltAt: time.Now()}, nil
	})
}

func waitForBuilds(t *testing.T, builds *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if builds.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("builds = %d, want at least %d", builds.Load(), want)
}

func TestObserveInvalidatesCache(t *testing.T) {
	var catalogBuilds, categoryBuilds atomic.Int32
	catalog := countingCatalogCache(&catalogBuilds)
	categories := countingCategoryCache(&categoryBuilds)
	w := NewChangeWatcher(newFakeSource(), newFakeSource(), catalog, categories, false, nil)

	ctx := context.Background()
	if _, err := catalog.Get(ctx); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := catalog.Get(ctx); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if catalogBuilds.Load() != 1 {
		t.Fatalf("builds = %d, want 1 before notification", catalogBuilds.Load())
	}

	w.Observe(ctx, KindCatalog)
	if _, err := catalog.Get(ctx); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if catalogBuilds.Load() != 2 {
		t.Errorf("builds = %d, want 2 after notification", catalogBuilds.Load())
	}
	if categoryBuilds.Load() != 0 {
		t.Errorf("category builds = %d, catalog notification must not touch categories", categoryBuilds.Load())
	}
}

func TestWatcherProactiveRebuild(t *testing.T) {
	var catalogBuilds, categoryBuilds atomic.Int32
	listingSource := newFakeSource()
	categorySource := newFakeSource()
	w := NewChangeWatcher(listingSource, categorySource,
		countingCatalogCache(&catalogBuilds), countingCategoryCache(&categoryBuilds), true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	listingSource.ch <- &mq.Message{Topic: "listings", Key: "l1"}
	waitForBuilds(t, &catalogBuilds, 1)

	categorySource.ch <- &mq.Message{Topic: "categories", Key: "tools"}
	waitForBuilds(t, &categoryBuilds, 1)
}

func TestWatcherStartIdempotent(t *testing.T) {
	var catalogBuilds, categoryBuilds atomic.Int32
	w := NewChangeWatcher(newFakeSource(), newFakeSource(),
		countingCatalogCache(&catalogBuilds), countingCategoryCache(&categoryBuilds), true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Start(ctx)
	w.Start(ctx)
	// 没有崩溃或重复订阅即可；置脏语义由其余用例覆盖
}

func TestObserveQueueOverflowDoesNotBlock(t *testing.T) {
	var catalogBuilds, categoryBuilds atomic.Int32
	catalog := countingCatalogCache(&catalogBuilds)
	w := NewChangeWatcher(newFakeSource(), newFakeSource(),
		catalog, countingCategoryCache(&categoryBuilds), true, nil)

	// 触发循环未启动，队列最终写满，Observe 必须仍然立即返回
	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			w.Observe(ctx, KindCatalog)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Observe blocked on a full trigger queue")
	}

	// 脏标记仍然生效
	if _, err := catalog.Get(ctx); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if catalogBuilds.Load() != 1 {
		t.Errorf("builds = %d, want 1", catalogBuilds.Load())
	}
}
