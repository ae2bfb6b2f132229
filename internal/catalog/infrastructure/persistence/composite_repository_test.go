package persistence

import (
	"context"
	"errors"
	"testing"
)

type fakeReadModel struct {
	likeCount      int
	likeFound      bool
	likeErr        error
	followed       map[string]struct{}
	followFound    bool
	followErr      error
	countLikeCalls int
	followCalls    int
}

func (f *fakeReadModel) CountLikes(ctx context.Context, listingID string) (int, bool, error) {
	f.countLikeCalls++
	return f.likeCount, f.likeFound, f.likeErr
}

func (f *fakeReadModel) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, bool, error) {
	f.followCalls++
	return f.followed, f.followFound, f.followErr
}

type fakeAuthoritative struct {
	likes          map[string]int
	liked          map[string]struct{}
	followed       map[string]struct{}
	subscribed     []string
	likedCalls     int
	countLikeCalls int
	followCalls    int
}

func (f *fakeAuthoritative) CountLikes(ctx context.Context, listingID string) (int, error) {
	f.countLikeCalls++
	return f.likes[listingID], nil
}

func (f *fakeAuthoritative) LikedListingIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	f.likedCalls++
	return f.liked, nil
}

func (f *fakeAuthoritative) FollowedSellerUIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	f.followCalls++
	return f.followed, nil
}

func (f *fakeAuthoritative) SubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	return f.subscribed, nil
}

func TestLikedListingIDsAlwaysAuthoritative(t *testing.T) {
	hot := &fakeReadModel{}
	auth := &fakeAuthoritative{liked: map[string]struct{}{"l1": {}}}
	repo := NewCompositeEngagementRepository(hot, auth)

	liked, err := repo.LikedListingIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("LikedListingIDs() error = %v", err)
	}
	if _, ok := liked["l1"]; !ok {
		t.Errorf("liked = %v, want l1 from authoritative store", liked)
	}
	if auth.likedCalls != 1 {
		t.Errorf("authoritative calls = %d, want 1", auth.likedCalls)
	}
	if hot.countLikeCalls != 0 || hot.followCalls != 0 {
		t.Error("liked-set read must not touch the read model")
	}
}

func TestCountLikesPrefersReadModel(t *testing.T) {
	hot := &fakeReadModel{likeCount: 7, likeFound: true}
	auth := &fakeAuthoritative{likes: map[string]int{"l1": 3}}
	repo := NewCompositeEngagementRepository(hot, auth)

	count, err := repo.CountLikes(context.Background(), "l1")
	if err != nil {
		t.Fatalf("CountLikes() error = %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7 from read model", count)
	}
	if auth.countLikeCalls != 0 {
		t.Errorf("authoritative calls = %d, want 0 on warm read model", auth.countLikeCalls)
	}
}

func TestCountLikesFallsBackWhenCold(t *testing.T) {
	hot := &fakeReadModel{likeFound: false}
	auth := &fakeAuthoritative{likes: map[string]int{"l1": 3}}
	repo := NewCompositeEngagementRepository(hot, auth)

	count, err := repo.CountLikes(context.Background(), "l1")
	if err != nil {
		t.Fatalf("CountLikes() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3 from authoritative store", count)
	}
}

func TestFollowedSellerUIDsFallsBackOnError(t *testing.T) {
	hot := &fakeReadModel{followErr: errors.New("redis down")}
	auth := &fakeAuthoritative{followed: map[string]struct{}{"s1": {}}}
	repo := NewCompositeEngagementRepository(hot, auth)

	followed, err := repo.FollowedSellerUIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FollowedSellerUIDs() error = %v", err)
	}
	if _, ok := followed["s1"]; !ok {
		t.Errorf("followed = %v, want s1 from authoritative store", followed)
	}
	if auth.followCalls != 1 {
		t.Errorf("authoritative calls = %d, want 1", auth.followCalls)
	}
}
