package redis

import (
	"context"
	"fmt"

	"github.com/wyfcoding/marketplace/pkg/cache"
)

// EngagementReadModel 互动数据的 Redis 读模型，由互动事件消费者维护。
// 只投影点赞计数与关注集合；用户点赞集合不做投影，读路径直接走权威存储。
// 所有查询都返回 found 标记：key 不存在说明读模型尚未预热，
// 调用方应回退到权威存储。
type EngagementReadModel struct {
	cache *cache.RedisCache
}

func NewEngagementReadModel(c *cache.RedisCache) *EngagementReadModel {
	return &EngagementReadModel{cache: c}
}

func likersKey(listingID string) string { return fmt.Sprintf("listing:%s:likers", listingID) }

// FollowingSetKey 用户关注集合的 key
func FollowingSetKey(userID string) string { return fmt.Sprintf("user:%s:following", userID) }

// LikersSetKey 商品点赞者集合的 key
func LikersSetKey(listingID string) string { return likersKey(listingID) }

func (m *EngagementReadModel) CountLikes(ctx context.Context, listingID string) (int, bool, error) {
	key := likersKey(listingID)
	exists, err := m.cache.Exists(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if exists == 0 {
		return 0, false, nil
	}
	count, err := m.cache.SCard(ctx, key)
	if err != nil {
		return 0, false, err
	}
	return int(count), true, nil
}

func (m *EngagementReadModel) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, bool, error) {
	return m.memberSet(ctx, FollowingSetKey(userID))
}

func (m *EngagementReadModel) memberSet(ctx context.Context, key string) (map[string]struct{}, bool, error) {
	exists, err := m.cache.Exists(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if exists == 0 {
		return nil, false, nil
	}
	members, err := m.cache.SMembers(ctx, key)
	if err != nil {
		return nil, false, err
	}
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set, true, nil
}
