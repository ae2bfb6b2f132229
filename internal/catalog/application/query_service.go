package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

// CatalogQueryService 目录读取服务：快照 → 过滤 → 个性化覆盖 → 截断。
type CatalogQueryService struct {
	catalog    *SnapshotCache[domain.CatalogSnapshot]
	categories *SnapshotCache[domain.CategorySnapshot]
	overlay    *LikeOverlay
	directory  domain.SellerDirectory
	engagement domain.EngagementRepository
	reference  domain.ReferenceRepository
}

func NewCatalogQueryService(
	catalog *SnapshotCache[domain.CatalogSnapshot],
	categories *SnapshotCache[domain.CategorySnapshot],
	overlay *LikeOverlay,
	directory domain.SellerDirectory,
	engagement domain.EngagementRepository,
	reference domain.ReferenceRepository,
) *CatalogQueryService {
	return &CatalogQueryService{
		catalog:    catalog,
		categories: categories,
		overlay:    overlay,
		directory:  directory,
		engagement: engagement,
		reference:  reference,
	}
}

// HottestItems 返回按排名分值降序的完整快照。
func (s *CatalogQueryService) HottestItems(ctx context.Context, userID string, limit int) ([]domain.Listing, error) {
	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := s.overlay.Apply(ctx, userID, snap.Listings)
	return truncate(items, limit), nil
}

// SellerItems 返回指定卖家的商品。
func (s *CatalogQueryService) SellerItems(ctx context.Context, userID, sellerUID string, limit int) ([]domain.Listing, error) {
	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := filterListings(snap.Listings, func(l domain.Listing) bool {
		return l.SellerUID == sellerUID
	})
	items = s.overlay.Apply(ctx, userID, items)
	return truncate(items, limit), nil
}

// ItemsByFollowed 返回用户关注的卖家的商品。
func (s *CatalogQueryService) ItemsByFollowed(ctx context.Context, userID string, limit int) ([]domain.Listing, error) {
	followed, err := s.engagement.FollowedSellerUIDs(ctx, userID)
	if err != nil {
		return nil, &domain.UserLookupError{UserID: userID, Err: err}
	}

	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := filterListings(snap.Listings, func(l domain.Listing) bool {
		_, ok := followed[l.SellerUID]
		return ok
	})
	items = s.overlay.Apply(ctx, userID, items)
	return truncate(items, limit), nil
}

// ItemsBySuggestion 返回用户订阅分类下的商品。
// 用户没有订阅任何分类时返回全量（有意的回退策略，不是疏漏）。
func (s *CatalogQueryService) ItemsBySuggestion(ctx context.Context, userID string, limit int) ([]domain.Listing, error) {
	subscribed, err := s.engagement.SubscribedCategories(ctx, userID)
	if err != nil {
		return nil, &domain.UserLookupError{UserID: userID, Err: err}
	}

	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := snap.Listings
	if len(subscribed) > 0 {
		wanted := make(map[string]struct{}, len(subscribed))
		for _, c := range subscribed {
			wanted[c] = struct{}{}
		}
		items = filterListings(items, func(l domain.Listing) bool {
			_, ok := wanted[l.Category]
			return ok
		})
	}
	items = s.overlay.Apply(ctx, userID, items)
	return truncate(items, limit), nil
}

// LikedItems 返回用户点赞过的商品，全部标记 userLiked。
func (s *CatalogQueryService) LikedItems(ctx context.Context, userID string, limit int) ([]domain.Listing, error) {
	accountType, err := s.directory.AccountTypeOf(ctx, userID)
	if err != nil {
		return nil, &domain.UserLookupError{UserID: userID, Err: err}
	}
	if accountType.Clearance() < 0 {
		return nil, &domain.UserLookupError{UserID: userID, Err: errors.New("unknown account type")}
	}

	liked, err := s.engagement.LikedListingIDs(ctx, userID)
	if err != nil {
		return nil, &domain.UserLookupError{UserID: userID, Err: err}
	}

	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := filterListings(snap.Listings, func(l domain.Listing) bool {
		_, ok := liked[l.ListingID]
		return ok
	})
	for i := range items {
		items[i].UserLiked = true
	}
	return truncate(items, limit), nil
}

// Categories 返回按字母序排列的分类名。
func (s *CatalogQueryService) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.categories.Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Names, nil
}

// ProcurementTypes 返回按字母序排列的采购方式。
func (s *CatalogQueryService) ProcurementTypes(ctx context.Context) ([]string, error) {
	return s.reference.ProcurementTypes(ctx)
}

// PaymentTypes 返回按字母序排列的支付方式。
func (s *CatalogQueryService) PaymentTypes(ctx context.Context) ([]string, error) {
	return s.reference.PaymentTypes(ctx)
}

// filterListings 过滤出满足条件的商品，始终返回新的切片。
func filterListings(listings []domain.Listing, keep func(domain.Listing) bool) []domain.Listing {
	filtered := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if keep(l) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func truncate(listings []domain.Listing, limit int) []domain.Listing {
	if limit > 0 && len(listings) > limit {
		return listings[:limit]
	}
	return listings
}
