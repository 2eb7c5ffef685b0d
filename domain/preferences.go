package domain

// UserPreferences are the onboarding choices stored for a user.
type UserPreferences struct {
	InterestIDs          []string
	SubInterestIDs       []string
	Dealbreakers         []string
	PreferredPriceRanges []string
}

func (p UserPreferences) IsEmpty() bool {
	return len(p.InterestIDs) == 0 &&
		len(p.SubInterestIDs) == 0 &&
		len(p.Dealbreakers) == 0 &&
		len(p.PreferredPriceRanges) == 0
}
