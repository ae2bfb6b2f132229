package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

func staticCatalog(listings ...domain.Listing) *SnapshotCache[domain.CatalogSnapshot] {
	return NewSnapshotCache(func(ctx context.Context) (*domain.CatalogSnapshot, error) {
		return &domain.CatalogSnapshot{Listings: listings, BuiltAt: time.Now()}, nil
	})
}

func staticCategories(names ...string) *SnapshotCache[domain.CategorySnapshot] {
	return NewSnapshotCache(func(ctx context.Context) (*domain.CategorySnapshot, error) {
		return &domain.CategorySnapshot{Names: names, BuiltAt: time.Now()}, nil
	})
}

func newTestQueryService(catalog *SnapshotCache[domain.CatalogSnapshot], directory *fakeDirectory, engagement *fakeEngagement) *CatalogQueryService {
	return NewCatalogQueryService(
		catalog,
		staticCategories("Art", "Tools"),
		NewLikeOverlay(engagement),
		directory,
		engagement,
		&fakeReference{procurement: []string{"Pickup"}, payment: []string{"Card", "Cash"}},
	)
}

func TestHottestItemsLimit(t *testing.T) {
	catalog := staticCatalog(
		domain.Listing{ListingID: "l1", Performance: 3},
		domain.Listing{ListingID: "l2", Performance: 2},
		domain.Listing{ListingID: "l3", Performance: 1},
	)
	svc := newTestQueryService(catalog, &fakeDirectory{}, &fakeEngagement{})

	items, err := svc.HottestItems(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("HottestItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ListingID != "l1" || items[1].ListingID != "l2" {
		t.Errorf("items = %s,%s, want l1,l2", items[0].ListingID, items[1].ListingID)
	}

	// limit 为 0 返回全量
	items, err = svc.HottestItems(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("HottestItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len without limit = %d, want 3", len(items))
	}
}

func TestSellerItemsFilters(t *testing.T) {
	catalog := staticCatalog(
		domain.Listing{ListingID: "l1", SellerUID: "a"},
		domain.Listing{ListingID: "l2", SellerUID: "b"},
		domain.Listing{ListingID: "l3", SellerUID: "a"},
	)
	svc := newTestQueryService(catalog, &fakeDirectory{}, &fakeEngagement{})

	items, err := svc.SellerItems(context.Background(), "", "a", 0)
	if err != nil {
		t.Fatalf("SellerItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	for _, l := range items {
		if l.SellerUID != "a" {
			t.Errorf("listing %s has seller %s", l.ListingID, l.SellerUID)
		}
	}
}

func TestItemsByFollowed(t *testing.T) {
	catalog := staticCatalog(
		domain.Listing{ListingID: "l1", SellerUID: "a"},
		domain.Listing{ListingID: "l2", SellerUID: "b"},
		domain.Listing{ListingID: "l3", SellerUID: "c"},
	)
	engagement := &fakeEngagement{followed: map[string]map[string]struct{}{
		"u1": {"a": {}, "c": {}},
	}}
	svc := newTestQueryService(catalog, &fakeDirectory{}, engagement)

	items, err := svc.ItemsByFollowed(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ItemsByFollowed() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ListingID != "l1" || items[1].ListingID != "l3" {
		t.Errorf("items = %s,%s, want l1,l3", items[0].ListingID, items[1].ListingID)
	}
}

func TestItemsByFollowedLookupFailure(t *testing.T) {
	svc := newTestQueryService(staticCatalog(), &fakeDirectory{}, &fakeEngagement{followErr: errors.New("db down")})

	_, err := svc.ItemsByFollowed(context.Background(), "u1", 0)
	var lookupErr *domain.UserLookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("error = %v, want UserLookupError", err)
	}
}

func TestItemsBySuggestion(t *testing.T) {
	catalog := staticCatalog(
		domain.Listing{ListingID: "l1", Category: "Tools"},
		domain.Listing{ListingID: "l2", Category: "Art"},
		domain.Listing{ListingID: "l3", Category: "Tools"},
	)

	t.Run("filters by subscribed categories", func(t *testing.T) {
		engagement := &fakeEngagement{subscribed: map[string][]string{"u1": {"Tools"}}}
		svc := newTestQueryService(catalog, &fakeDirectory{}, engagement)

		items, err := svc.ItemsBySuggestion(context.Background(), "u1", 0)
		if err != nil {
			t.Fatalf("ItemsBySuggestion() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("len = %d, want 2", len(items))
		}
		for _, l := range items {
			if l.Category != "Tools" {
				t.Errorf("listing %s has category %s", l.ListingID, l.Category)
			}
		}
	})

	t.Run("no subscriptions falls back to everything", func(t *testing.T) {
		svc := newTestQueryService(catalog, &fakeDirectory{}, &fakeEngagement{})

		items, err := svc.ItemsBySuggestion(context.Background(), "u1", 0)
		if err != nil {
			t.Fatalf("ItemsBySuggestion() error = %v", err)
		}
		if len(items) != 3 {
			t.Errorf("len = %d, want full catalog", len(items))
		}
	})
}

func TestLikedItems(t *testing.T) {
	catalog := staticCatalog(
		domain.Listing{ListingID: "l1"},
		domain.Listing{ListingID: "l2"},
		domain.Listing{ListingID: "l3"},
	)
	directory := &fakeDirectory{accountTypes: map[string]domain.AccountType{"u1": domain.AccountBuyer}}
	engagement := &fakeEngagement{liked: map[string]map[string]struct{}{
		"u1": {"l1": {}, "l3": {}},
	}}
	svc := newTestQueryService(catalog, directory, engagement)

	items, err := svc.LikedItems(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("LikedItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	for _, l := range items {
		if !l.UserLiked {
			t.Errorf("listing %s not marked liked", l.ListingID)
		}
	}
}

func TestLikedItemsUnknownAccountType(t *testing.T) {
	directory := &fakeDirectory{accountTypes: map[string]domain.AccountType{"u1": "Visitor"}}
	svc := newTestQueryService(staticCatalog(), directory, &fakeEngagement{})

	_, err := svc.LikedItems(context.Background(), "u1", 0)
	var lookupErr *domain.UserLookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("error = %v, want UserLookupError", err)
	}
}

func TestLikedItemsDirectoryFailure(t *testing.T) {
	directory := &fakeDirectory{accountErr: errors.New("user not found")}
	svc := newTestQueryService(staticCatalog(), directory, &fakeEngagement{})

	_, err := svc.LikedItems(context.Background(), "u1", 0)
	var lookupErr *domain.UserLookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("error = %v, want UserLookupError", err)
	}
}

func TestReferenceQueries(t *testing.T) {
	svc := newTestQueryService(staticCatalog(), &fakeDirectory{}, &fakeEngagement{})

	names, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if len(names) != 2 || names[0] != "Art" {
		t.Errorf("Categories() = %v", names)
	}

	proc, err := svc.ProcurementTypes(context.Background())
	if err != nil || len(proc) != 1 {
		t.Errorf("ProcurementTypes() = %v, %v", proc, err)
	}
	pay, err := svc.PaymentTypes(context.Background())
	if err != nil || len(pay) != 2 {
		t.Errorf("PaymentTypes() = %v, %v", pay, err)
	}
}
