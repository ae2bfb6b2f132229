package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

// PartitionFetcher 抓取单个卖家分区的商品，并为每件商品并发查询点赞数。
type PartitionFetcher struct {
	partition  domain.ListingPartition
	engagement domain.EngagementRepository
	timeout    time.Duration
}

func NewPartitionFetcher(partition domain.ListingPartition, engagement domain.EngagementRepository, timeout time.Duration) *PartitionFetcher {
	return &PartitionFetcher{
		partition:  partition,
		engagement: engagement,
		timeout:    timeout,
	}
}

// Fetch 返回指定卖家分区中已计算排名分值的商品。
// 任何失败都包装成 PartitionFetchError，只影响这一个卖家；
// 标题为空的原始条目按上游残留数据处理，静默跳过。
func (f *PartitionFetcher) Fetch(ctx context.Context, seller domain.Seller) ([]domain.Listing, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	raws, err := f.partition.FetchRaw(ctx, seller.UID)
	if err != nil {
		return nil, &domain.PartitionFetchError{SellerUID: seller.UID, Err: err}
	}

	now := time.Now()
	results := make([]*domain.Listing, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range raws {
		g.Go(func() error {
			likes, err := f.engagement.CountLikes(gctx, raw.ListingID)
			if err != nil {
				return err
			}
			if listing, ok := domain.NewListing(raw, seller, likes, now); ok {
				results[i] = &listing
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &domain.PartitionFetchError{SellerUID: seller.UID, Err: err}
	}

	listings := make([]domain.Listing, 0, len(results))
	for _, l := range results {
		if l != nil {
			listings = append(listings, *l)
		}
	}
	return listings, nil
}
