package feed

import "localGuide/domain"

const uncategorized = "uncategorized"

// Per-key caps applied while interleaving. The counter behind them is shared
// by all buckets; each bucket compares it against its own cap.
const (
	personalDiversityCap = 2
	topRatedDiversityCap = 3
	exploreDiversityCap  = 2

	personalPullsPerRound = 2
	topRatedPullsPerRound = 1
	explorePullsPerRound  = 1
)

// DiversityKey groups candidates by sub-interest, then category.
func DiversityKey(c domain.BusinessCandidate) string {
	if c.SubInterestID != "" {
		return c.SubInterestID
	}
	if c.Category != "" {
		return c.Category
	}
	return uncategorized
}

type bucketCursor struct {
	items []domain.BusinessCandidate
	pos   int
	cap   int
	pulls int
}

func (b *bucketCursor) exhausted() bool {
	return b.pos >= len(b.items)
}

type blender struct {
	limit  int
	out    []domain.BusinessCandidate
	seen   map[string]struct{}
	perKey map[string]int
}

func (m *blender) full() bool {
	return len(m.out) >= m.limit
}

func (m *blender) admit(c domain.BusinessCandidate) {
	m.seen[c.ID] = struct{}{}
	m.perKey[DiversityKey(c)]++
	m.out = append(m.out, c)
}

// pull advances b until it admits one candidate or runs out. Candidates over
// the diversity cap are passed over; the overflow pass can still take them.
func (m *blender) pull(b *bucketCursor) bool {
	for !b.exhausted() {
		c := b.items[b.pos]
		b.pos++

		if _, dup := m.seen[c.ID]; dup {
			continue
		}
		if m.perKey[DiversityKey(c)] >= b.cap {
			continue
		}
		m.admit(c)
		return true
	}
	return false
}

// Mix interleaves the three scored buckets into at most limit candidates:
// two personal picks, then one top rated, then one explore per round, with
// per-key diversity caps. Slots left once every cursor is spent are filled
// from unseen candidates in bucket order with the caps lifted.
func Mix(personal, topRated, explore []domain.BusinessCandidate, limit int) []domain.BusinessCandidate {
	if limit <= 0 {
		return []domain.BusinessCandidate{}
	}

	m := &blender{
		limit:  limit,
		out:    make([]domain.BusinessCandidate, 0, limit),
		seen:   make(map[string]struct{}),
		perKey: make(map[string]int),
	}

	buckets := []*bucketCursor{
		{items: personal, cap: personalDiversityCap, pulls: personalPullsPerRound},
		{items: topRated, cap: topRatedDiversityCap, pulls: topRatedPullsPerRound},
		{items: explore, cap: exploreDiversityCap, pulls: explorePullsPerRound},
	}

	for !m.full() && anyRemaining(buckets) {
		for _, b := range buckets {
			for i := 0; i < b.pulls && !m.full(); i++ {
				if !m.pull(b) {
					break
				}
			}
		}
	}

	// overflow: caps ignored, skipped candidates become eligible again
	for _, b := range buckets {
		for _, c := range b.items {
			if m.full() {
				break
			}
			if _, dup := m.seen[c.ID]; dup {
				continue
			}
			m.admit(c)
		}
	}

	if len(m.out) > limit {
		m.out = m.out[:limit]
	}

	return m.out
}

func anyRemaining(buckets []*bucketCursor) bool {
	for _, b := range buckets {
		if !b.exhausted() {
			return true
		}
	}
	return false
}
