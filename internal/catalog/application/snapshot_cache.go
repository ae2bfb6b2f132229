package application

import (
	"context"
	"sync"
)

// BuildFunc 构建一个全新快照。
type BuildFunc[T any] func(ctx context.Context) (*T, error)

// SnapshotCache 持有当前快照与脏标记。读命中直接返回；脏读触发重建，
// 并发到达的读请求合并等待同一次重建；重建失败保留旧快照。
type SnapshotCache[T any] struct {
	mu       sync.Mutex
	build    BuildFunc[T]
	current  *T
	dirty    bool
	gen      uint64
	inflight chan struct{}
	lastErr  error
}

// NewSnapshotCache 创建缓存，脏标记初始为 true，强制首次构建。
func NewSnapshotCache[T any](build BuildFunc[T]) *SnapshotCache[T] {
	return &SnapshotCache[T]{
		build: build,
		dirty: true,
	}
}

// Seed 注入一个历史快照（热启动）。脏标记保持不变，
// 首次读仍会触发重建，但重建期间的等待者可以立即拿到旧快照。
func (c *SnapshotCache[T]) Seed(snap *T) {
	if snap == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		c.current = snap
	}
}

// Invalidate 标记快照为脏。不阻塞，也不触发重建。
func (c *SnapshotCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
	c.gen++
}

// Get 返回当前快照。脏且无重建在途时由本调用发起重建；
// 已有重建在途则等待同一次重建完成。重建失败时返回旧快照，
// 没有旧快照才返回错误。
func (c *SnapshotCache[T]) Get(ctx context.Context) (*T, error) {
	c.mu.Lock()
	for {
		if !c.dirty && c.current != nil {
			snap := c.current
			c.mu.Unlock()
			return snap, nil
		}
		if c.inflight == nil {
			break
		}
		done := c.inflight
		c.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		c.mu.Lock()
		if c.dirty && c.inflight == nil {
			// 等到的那次重建失败了，返回旧快照而不是接力重建
			snap, err := c.current, c.lastErr
			c.mu.Unlock()
			if snap != nil {
				return snap, nil
			}
			return nil, err
		}
	}

	done := make(chan struct{})
	c.inflight = done
	startGen := c.gen
	c.mu.Unlock()

	snap, err := c.build(ctx)

	c.mu.Lock()
	if err == nil {
		c.current = snap
		// 构建期间又有失效事件到达时保持脏标记
		if c.gen == startGen {
			c.dirty = false
		}
	}
	c.lastErr = err
	c.inflight = nil
	close(done)
	stale := c.current
	c.mu.Unlock()

	if err != nil {
		if stale != nil {
			return stale, nil
		}
		return nil, err
	}
	return snap, nil
}
