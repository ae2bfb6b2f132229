package application

import (
	"context"
	"errors"
	"testing"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

func TestOverlayMarksLikedListings(t *testing.T) {
	overlay := NewLikeOverlay(&fakeEngagement{liked: map[string]map[string]struct{}{
		"u1": {"l1": {}, "l3": {}},
	}})
	listings := []domain.Listing{{ListingID: "l1"}, {ListingID: "l2"}, {ListingID: "l3"}}

	got := overlay.Apply(context.Background(), "u1", listings)
	wantLiked := map[string]bool{"l1": true, "l2": false, "l3": true}
	for _, l := range got {
		if l.UserLiked != wantLiked[l.ListingID] {
			t.Errorf("%s UserLiked = %v, want %v", l.ListingID, l.UserLiked, wantLiked[l.ListingID])
		}
	}
}

func TestOverlayDoesNotMutateInput(t *testing.T) {
	overlay := NewLikeOverlay(&fakeEngagement{liked: map[string]map[string]struct{}{
		"u1": {"l1": {}},
	}})
	listings := []domain.Listing{{ListingID: "l1"}}

	overlay.Apply(context.Background(), "u1", listings)
	if listings[0].UserLiked {
		t.Error("Apply mutated the shared input slice")
	}
}

func TestOverlayEmptyUserIsIdentity(t *testing.T) {
	overlay := NewLikeOverlay(&fakeEngagement{likedErr: errors.New("must not be called")})
	listings := []domain.Listing{{ListingID: "l1"}}

	got := overlay.Apply(context.Background(), "", listings)
	if len(got) != 1 || got[0].UserLiked {
		t.Errorf("Apply with empty user = %+v, want unchanged input", got)
	}
}

func TestOverlayDegradesOnLookupFailure(t *testing.T) {
	overlay := NewLikeOverlay(&fakeEngagement{likedErr: errors.New("redis down")})
	listings := []domain.Listing{{ListingID: "l1"}, {ListingID: "l2"}}

	got := overlay.Apply(context.Background(), "u1", listings)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, l := range got {
		if l.UserLiked {
			t.Errorf("%s UserLiked = true after failed lookup", l.ListingID)
		}
	}
}

func TestOverlayIdempotent(t *testing.T) {
	overlay := NewLikeOverlay(&fakeEngagement{liked: map[string]map[string]struct{}{
		"u1": {"l1": {}},
	}})
	listings := []domain.Listing{{ListingID: "l1"}, {ListingID: "l2"}}

	once := overlay.Apply(context.Background(), "u1", listings)
	twice := overlay.Apply(context.Background(), "u1", once)
	for i := range once {
		if once[i].UserLiked != twice[i].UserLiked {
			t.Errorf("listing %s changed on second application", once[i].ListingID)
		}
	}
}
