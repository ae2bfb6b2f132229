package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisrepo "github.com/wyfcoding/marketplace/internal/catalog/infrastructure/persistence/redis"
	"github.com/wyfcoding/marketplace/pkg/cache"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/mq"
)

// EngagementEvent 点赞/关注事件载荷
type EngagementEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	ListingID string `json:"listing_id"`
	SellerUID string `json:"seller_uid"`
}

// EngagementEventHandler 消费互动事件并维护 Redis 读模型。
// 只投影点赞计数与关注集合；用户点赞集合是安全敏感数据，
// 读路径每次请求都走权威存储，不在这里投影。
type EngagementEventHandler struct {
	cache *cache.RedisCache
}

func NewEngagementEventHandler(c *cache.RedisCache) *EngagementEventHandler {
	return &EngagementEventHandler{cache: c}
}

func (h *EngagementEventHandler) Handle(ctx context.Context, msg *mq.Message) error {
	var event EngagementEvent
	if err := msg.UnmarshalPayload(&event); err != nil {
		return fmt.Errorf("unmarshal engagement event: %w", err)
	}

	switch event.Type {
	case "like":
		return h.cache.SAdd(ctx, redisrepo.LikersSetKey(event.ListingID), event.UserID)
	case "unlike":
		return h.cache.SRem(ctx, redisrepo.LikersSetKey(event.ListingID), event.UserID)
	case "follow":
		return h.cache.SAdd(ctx, redisrepo.FollowingSetKey(event.UserID), event.SellerUID)
	case "unfollow":
		return h.cache.SRem(ctx, redisrepo.FollowingSetKey(event.UserID), event.SellerUID)
	default:
		logger.Warn(ctx, "Unknown engagement event type", "type", event.Type)
		return nil
	}
}

// Run 持续消费互动事件，直到 context 取消。
func (h *EngagementEventHandler) Run(ctx context.Context, consumer *mq.KafkaConsumer) {
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Engagement consumer read failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if err := h.Handle(ctx, msg); err != nil {
			logger.Error(ctx, "Engagement event handling failed", "offset", msg.Offset, "error", err)
		}
	}
}
