package redis

import (
	"context"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/cache"
)

const (
	catalogSnapshotKey  = "catalog:snapshot"
	categorySnapshotKey = "catalog:categories"
)

type snapshotStore struct {
	cache *cache.RedisCache
}

// NewSnapshotStore 创建基于 Redis 的快照存储，用于进程重启后的热启动
func NewSnapshotStore(c *cache.RedisCache) domain.SnapshotStore {
	return &snapshotStore{cache: c}
}

func (s *snapshotStore) SaveCatalog(ctx context.Context, snap *domain.CatalogSnapshot) error {
	return s.cache.SetJSON(ctx, catalogSnapshotKey, snap, 0)
}

func (s *snapshotStore) LoadCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	var snap domain.CatalogSnapshot
	if err := s.cache.GetJSON(ctx, catalogSnapshotKey, &snap); err != nil {
		return nil, err
	}
	if snap.BuiltAt.IsZero() {
		return nil, nil
	}
	return &snap, nil
}

func (s *snapshotStore) SaveCategories(ctx context.Context, snap *domain.CategorySnapshot) error {
	return s.cache.SetJSON(ctx, categorySnapshotKey, snap, 0)
}

func (s *snapshotStore) LoadCategories(ctx context.Context) (*domain.CategorySnapshot, error) {
	var snap domain.CategorySnapshot
	if err := s.cache.GetJSON(ctx, categorySnapshotKey, &snap); err != nil {
		return nil, err
	}
	if snap.BuiltAt.IsZero() {
		return nil, nil
	}
	return &snap, nil
}
