package postgres

import (
	"context"
	"fmt"

	"localGuide/business/feed"
	"localGuide/domain"

	"gorm.io/gorm"
)

// PreferenceRepository reads onboarding choices from the user_* link tables.
type PreferenceRepository struct {
	DB *gorm.DB
}

// Compile-time check that the struct implements the interface.
var _ feed.PreferenceRepository = (*PreferenceRepository)(nil)

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

func (r *PreferenceRepository) GetUserPreferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	var prefs domain.UserPreferences

	lookups := []struct {
		table  string
		column string
		dest   *[]string
	}{
		{"user_interests", "interest_id", &prefs.InterestIDs},
		{"user_sub_interests", "sub_interest_id", &prefs.SubInterestIDs},
		{"user_dealbreakers", "dealbreaker_id", &prefs.Dealbreakers},
		{"user_price_preferences", "price_range", &prefs.PreferredPriceRanges},
	}

	for _, l := range lookups {
		err := r.DB.WithContext(ctx).
			Table(l.table).
			Where("user_id = ?", userID).
			Pluck(l.column, l.dest).Error
		if err != nil {
			return domain.UserPreferences{}, fmt.Errorf("failed to read %s: %w", l.table, err)
		}
	}

	return prefs, nil
}
