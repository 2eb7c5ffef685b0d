//go:build !integration

package feed

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"localGuide/domain"
)

func TestPrioritizeRecentlyReviewed_MovesReviewedToFront(t *testing.T) {
	reviews := &fakeReviewRepo{reviews: []domain.RecentReview{
		{BusinessID: "B", CreatedAt: fixedNow.Add(-time.Hour)},
	}}
	s := newTestService(&fakeBusinessRepo{}, reviews, nil, Config{})

	blended := []domain.BusinessCandidate{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	got := ids(s.PrioritizeRecentlyReviewed(context.Background(), blended, "user-1"))

	if want := []string{"B", "A", "C"}; !equalIDs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if want := fixedNow.Add(-24 * time.Hour); !reviews.since.Equal(want) {
		t.Errorf("lookup window starts at %v, want %v", reviews.since, want)
	}
}

func TestPrioritizeRecentlyReviewed_MostRecentFirstAndSlugMatch(t *testing.T) {
	reviews := &fakeReviewRepo{reviews: []domain.RecentReview{
		{BusinessID: "D", CreatedAt: fixedNow.Add(-10 * time.Minute)},
		{BusinessSlug: "bean-there", CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{BusinessID: "D", CreatedAt: fixedNow.Add(-5 * time.Hour)},
	}}
	s := newTestService(&fakeBusinessRepo{}, reviews, nil, Config{})

	blended := []domain.BusinessCandidate{
		{ID: "A"},
		{ID: "B", Slug: "bean-there"},
		{ID: "C"},
		{ID: "D"},
	}
	got := ids(s.PrioritizeRecentlyReviewed(context.Background(), blended, "user-1"))

	if want := []string{"D", "B", "A", "C"}; !equalIDs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPrioritizeRecentlyReviewed_UnchangedWhenNothingApplies(t *testing.T) {
	blended := []domain.BusinessCandidate{{ID: "A"}, {ID: "B"}}

	tests := []struct {
		name   string
		repo   *fakeReviewRepo
		userID string
	}{
		{"anonymous", &fakeReviewRepo{reviews: []domain.RecentReview{{BusinessID: "B", CreatedAt: fixedNow}}}, ""},
		{"lookup fails", &fakeReviewRepo{err: errors.New("timeout")}, "user-1"},
		{"no reviews", &fakeReviewRepo{}, "user-1"},
		{"review outside window", &fakeReviewRepo{reviews: []domain.RecentReview{
			{BusinessID: "B", CreatedAt: fixedNow.Add(-48 * time.Hour)},
		}}, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(&fakeBusinessRepo{}, tt.repo, nil, Config{})
			got := ids(s.PrioritizeRecentlyReviewed(context.Background(), blended, tt.userID))
			if want := []string{"A", "B"}; !equalIDs(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestReorderByReviews_IsPermutation(t *testing.T) {
	blended := []domain.BusinessCandidate{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}
	since := fixedNow.Add(-24 * time.Hour)
	reviews := []domain.RecentReview{
		{BusinessID: "5", CreatedAt: fixedNow.Add(-time.Minute)},
		{BusinessID: "3", CreatedAt: fixedNow.Add(-time.Hour)},
		{BusinessID: "missing", CreatedAt: fixedNow},
	}

	got := ids(reorderByReviews(blended, reviews, since))
	if want := []string{"5", "3", "1", "2", "4"}; !equalIDs(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	if !equalIDs(sorted, ids(blended)) {
		t.Fatalf("result %v is not a permutation of the input", got)
	}
}
