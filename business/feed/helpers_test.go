//go:build !integration

package feed

import (
	"context"
	"sync"
	"time"

	"localGuide/domain"
)

func cand(id, key string) domain.BusinessCandidate {
	return domain.BusinessCandidate{ID: id, SubInterestID: key}
}

func ids(cs []domain.BusinessCandidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func cardIDs(cs []domain.BusinessCard) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func boolPtr(b bool) *bool { return &b }

// fakeBusinessRepo is safe for the concurrent bucket fetches.
type fakeBusinessRepo struct {
	mu sync.Mutex

	find    func(q domain.CandidateQuery) ([]domain.BusinessCandidate, error)
	findCtx func(ctx context.Context, q domain.CandidateQuery) ([]domain.BusinessCandidate, error)
	queries []domain.CandidateQuery

	procRows  []domain.BusinessCandidate
	procErr   error
	procCalls int
	procArgs  []domain.PersonalizationParams

	page       []domain.BusinessCandidate
	pageErr    error
	pageQuery  domain.PageQuery
	byID       map[string]domain.BusinessCandidate
	panicOnAll bool
}

func (f *fakeBusinessRepo) FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.BusinessCandidate, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	find, findCtx := f.find, f.findCtx
	f.mu.Unlock()

	if f.panicOnAll {
		panic("storage exploded")
	}
	if findCtx != nil {
		return findCtx(ctx, q)
	}
	if find == nil {
		return nil, nil
	}
	return find(q)
}

func (f *fakeBusinessRepo) RecommendPersonalized(ctx context.Context, procedure string, p domain.PersonalizationParams) ([]domain.BusinessCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procCalls++
	f.procArgs = append(f.procArgs, p)
	if f.panicOnAll {
		panic("procedure exploded")
	}
	return f.procRows, f.procErr
}

func (f *fakeBusinessRepo) FindPage(ctx context.Context, q domain.PageQuery) ([]domain.BusinessCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageQuery = q
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	if q.Limit < len(f.page) {
		return f.page[:q.Limit], nil
	}
	return f.page, nil
}

func (f *fakeBusinessRepo) FindByID(ctx context.Context, id string) (domain.BusinessCandidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return domain.BusinessCandidate{}, domain.ErrBusinessNotFound
	}
	return c, nil
}

func (f *fakeBusinessRepo) queriesWith(order domain.CandidateOrder) []domain.CandidateQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CandidateQuery
	for _, q := range f.queries {
		if q.OrderBy == order {
			out = append(out, q)
		}
	}
	return out
}

type fakeReviewRepo struct {
	reviews []domain.RecentReview
	err     error
	since   time.Time
}

func (f *fakeReviewRepo) FindRecentByUser(ctx context.Context, userID string, since time.Time) ([]domain.RecentReview, error) {
	f.since = since
	return f.reviews, f.err
}

type fakePreferenceRepo struct {
	prefs domain.UserPreferences
	err   error
	calls int
}

func (f *fakePreferenceRepo) GetUserPreferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	f.calls++
	return f.prefs, f.err
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestService(b BusinessRepository, r ReviewRepository, p PreferenceRepository, cfg Config) *Service {
	s := NewService(b, r, p, cfg)
	s.now = func() time.Time { return fixedNow }
	return s
}
