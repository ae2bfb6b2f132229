package persistence

import (
	"context"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/pkg/logger"
)

// ReadModel 互动数据的热路径读模型。found 为 false 表示尚未预热。
type ReadModel interface {
	CountLikes(ctx context.Context, listingID string) (int, bool, error)
	FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, bool, error)
}

type compositeEngagementRepository struct {
	hot           ReadModel
	authoritative domain.EngagementRepository
}

// NewCompositeEngagementRepository 创建组合仓储：点赞计数与关注集合优先读
// Redis 读模型，读模型未预热或不可用时回退 MySQL。用户点赞集合决定
// userLiked 标记，不允许读模型的异步滞后，每次请求都走权威存储。
func NewCompositeEngagementRepository(hot ReadModel, authoritative domain.EngagementRepository) domain.EngagementRepository {
	return &compositeEngagementRepository{
		hot:           hot,
		authoritative: authoritative,
	}
}

func (r *compositeEngagementRepository) CountLikes(ctx context.Context, listingID string) (int, error) {
	count, found, err := r.hot.CountLikes(ctx, listingID)
	if err != nil {
		logger.Warn(ctx, "Like count read model unavailable, falling back", "listing_id", listingID, "error", err)
	} else if found {
		return count, nil
	}
	return r.authoritative.CountLikes(ctx, listingID)
}

func (r *compositeEngagementRepository) LikedListingIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	// userLiked 是安全敏感标记，必须反映刚提交的点赞/取消，绕过读模型
	return r.authoritative.LikedListingIDs(ctx, userID)
}

func (r *compositeEngagementRepository) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	followed, found, err := r.hot.FollowedSellerUIDs(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "Follow set read model unavailable, falling back", "user_id", userID, "error", err)
	} else if found {
		return followed, nil
	}
	return r.authoritative.FollowedSellerUIDs(ctx, userID)
}

func (r *compositeEngagementRepository) SubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	// 订阅分类没有读模型，直接走权威存储
	return r.authoritative.SubscribedCategories(ctx, userID)
}
