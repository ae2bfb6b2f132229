package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

type engagementRepository struct{ db *gorm.DB }

// NewEngagementRepository 创建基于 MySQL 的互动数据仓储
func NewEngagementRepository(db *gorm.DB) domain.EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CountLikes(ctx context.Context, listingID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LikeModel{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *engagementRepository) LikedListingIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&LikeModel{}).
		Where("user_id = ?", userID).
		Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, err
	}

	liked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	return liked, nil
}

func (r *engagementRepository) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	var uids []string
	err := r.db.WithContext(ctx).
		Model(&FollowModel{}).
		Where("user_id = ?", userID).
		Pluck("seller_uid", &uids).Error
	if err != nil {
		return nil, err
	}

	followed := make(map[string]struct{}, len(uids))
	for _, uid := range uids {
		followed[uid] = struct{}{}
	}
	return followed, nil
}

func (r *engagementRepository) SubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&CategorySubscriptionModel{}).
		Where("user_id = ?", userID).
		Pluck("category_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
