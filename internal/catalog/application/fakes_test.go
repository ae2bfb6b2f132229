package application

import (
	"context"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"
)

type fakeDirectory struct {
	sellers      []domain.Seller
	listErr      error
	accountTypes map[string]domain.AccountType
	accountErr   error
}

func (f *fakeDirectory) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sellers, nil
}

func (f *fakeDirectory) AccountTypeOf(ctx context.Context, uid string) (domain.AccountType, error) {
	if f.accountErr != nil {
		return "", f.accountErr
	}
	return f.accountTypes[uid], nil
}

type fakePartition struct {
	raws map[string][]domain.RawListing
	errs map[string]error
}

func (f *fakePartition) FetchRaw(ctx context.Context, sellerUID string) ([]domain.RawListing, error) {
	if err := f.errs[sellerUID]; err != nil {
		return nil, err
	}
	return f.raws[sellerUID], nil
}

type fakeEngagement struct {
	likes      map[string]int
	likesErr   error
	liked      map[string]map[string]struct{}
	likedErr   error
	followed   map[string]map[string]struct{}
	followErr  error
	subscribed map[string][]string
	subErr     error
}

func (f *fakeEngagement) CountLikes(ctx context.Context, listingID string) (int, error) {
	if f.likesErr != nil {
		return 0, f.likesErr
	}
	return f.likes[listingID], nil
}

func (f *fakeEngagement) LikedListingIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if f.likedErr != nil {
		return nil, f.likedErr
	}
	return f.liked[userID], nil
}

func (f *fakeEngagement) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if f.followErr != nil {
		return nil, f.followErr
	}
	return f.followed[userID], nil
}

func (f *fakeEngagement) SubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subscribed[userID], nil
}

type fakeCategories struct {
	names []string
	err   error
}

func (f *fakeCategories) ListNames(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

type fakeReference struct {
	procurement []string
	payment     []string
}

func (f *fakeReference) ProcurementTypes(ctx context.Context) ([]string, error) {
	return f.procurement, nil
}

func (f *fakeReference) PaymentTypes(ctx context.Context) ([]string, error) {
	return f.payment, nil
}
