package application

import (
	"context"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
)

// LikeOverlay 在共享快照之上生成请求级的点赞视图，绝不修改缓存中的商品。
type LikeOverlay struct {
	engagement domain.EngagementRepository
}

func NewLikeOverlay(engagement domain.EngagementRepository) *LikeOverlay {
	return &LikeOverlay{engagement: engagement}
}

// Apply 返回一个副本序列，用户点赞过的商品 userLiked 为 true。
// userID 为空时原样返回；用户数据查询失败时降级为原样返回，
// 个性化失败不能影响读取。幂等：重复应用结果不变。
func (o *LikeOverlay) Apply(ctx context.Context, userID string, listings []domain.Listing) []domain.Listing {
	if userID == "" || len(listings) == 0 {
		return listings
	}

	liked, err := o.engagement.LikedListingIDs(ctx, userID)
	if err != nil {
		lookupErr := &domain.UserLookupError{UserID: userID, Err: err}
		logger.Warn(ctx, "Like overlay degraded", "error", lookupErr)
		return listings
	}
	if len(liked) == 0 {
		return listings
	}

	overlaid := make([]domain.Listing, len(listings))
	copy(overlaid, listings)
	for i := range overlaid {
		if _, ok := liked[overlaid[i].ListingID]; ok {
			overlaid[i].UserLiked = true
		}
	}
	return overlaid
}
