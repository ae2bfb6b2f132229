package domain

import "context"

// SellerDirectory 卖家目录
type SellerDirectory interface {
	// ListSellers 返回所有卖家类型的账户
	ListSellers(ctx context.Context) ([]Seller, error)
	// AccountTypeOf 返回指定用户的账户类型
	AccountTypeOf(ctx context.Context, uid string) (AccountType, error)
}

// ListingPartition 按卖家划分的商品分区
type ListingPartition interface {
	// FetchRaw 返回指定卖家分区中的全部原始商品
	FetchRaw(ctx context.Context, sellerUID string) ([]RawListing, error)
}

// EngagementRepository 用户互动数据（点赞、关注、订阅分类）
type EngagementRepository interface {
	// CountLikes 返回指定商品的点赞数
	CountLikes(ctx context.Context, listingID string) (int, error)
	// LikedListingIDs 返回用户点赞过的商品 ID 集合
	LikedListingIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	// FollowedSellerUIDs 返回用户关注的卖家 UID 集合
	FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	// SubscribedCategories 返回用户订阅的分类名
	SubscribedCategories(ctx context.Context, userID string) ([]string, error)
}

// CategoryRepository 分类目录
type CategoryRepository interface {
	ListNames(ctx context.Context) ([]string, error)
}

// ReferenceRepository 静态参考数据（采购方式、支付方式）
type ReferenceRepository interface {
	ProcurementTypes(ctx context.Context) ([]string, error)
	PaymentTypes(ctx context.Context) ([]string, error)
}

// SnapshotStore 快照持久化，用于进程重启后的热启动
type SnapshotStore interface {
	SaveCatalog(ctx context.Context, snap *CatalogSnapshot) error
	LoadCatalog(ctx context.Context) (*CatalogSnapshot, error)
	SaveCategories(ctx context.Context, snap *CategorySnapshot) error
	LoadCategories(ctx context.Context) (*CategorySnapshot, error)
}
