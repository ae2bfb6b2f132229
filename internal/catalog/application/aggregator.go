package application

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
)

// Aggregator 将所有卖家分区并发聚合为一个排好序的目录快照。
type Aggregator struct {
	directory     domain.SellerDirectory
	categories    domain.CategoryRepository
	fetcher       *PartitionFetcher
	maxConcurrent int
	metrics       *metrics.Metrics
}

func NewAggregator(directory domain.SellerDirectory, categories domain.CategoryRepository, fetcher *PartitionFetcher, maxConcurrent int, m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		directory:     directory,
		categories:    categories,
		fetcher:       fetcher,
		maxConcurrent: maxConcurrent,
		metrics:       m,
	}
}

// BuildCatalog 构建全新目录快照。单个卖家抓取失败只记录并跳过，
// 残缺目录优于失败的聚合；卖家目录本身不可用则整体失败。
func (a *Aggregator) BuildCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	sellers, err := a.directory.ListSellers(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]domain.Listing, len(sellers))

	g := new(errgroup.Group)
	if a.maxConcurrent > 0 {
		g.SetLimit(a.maxConcurrent)
	}
	for i, seller := range sellers {
		g.Go(func() error {
			listings, err := a.fetcher.Fetch(ctx, seller)
			if err != nil {
				logger.Warn(ctx, "Skipping seller partition", "seller_uid", seller.UID, "error", err)
				if a.metrics != nil {
					a.metrics.PartitionFetchFailures.Inc()
				}
				return nil
			}
			results[i] = listings
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.Listing
	for _, listings := range results {
		merged = append(merged, listings...)
	}

	// 并列分值保持分区迭代顺序，保证重复构建结果一致
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Performance > merged[j].Performance
	})

	return &domain.CatalogSnapshot{Listings: merged, BuiltAt: time.Now()}, nil
}

// BuildCategories 构建按字母序排列的分类快照。
func (a *Aggregator) BuildCategories(ctx context.Context) (*domain.CategorySnapshot, error) {
	names, err := a.categories.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return &domain.CategorySnapshot{Names: names, BuiltAt: time.Now()}, nil
}
