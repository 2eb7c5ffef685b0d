package interest

import (
	"context"
	"fmt"

	"localGuide/domain"
	"localGuide/pkg/logger"
)

// InterestRepository contract interface
type InterestRepository interface {
	FindAll(ctx context.Context) ([]domain.Interest, error)
}

type interestService struct {
	interestRepo InterestRepository
}

func NewInterestService(interestRepo InterestRepository) *interestService {
	return &interestService{
		interestRepo: interestRepo,
	}
}

// GetAllInterests returns the onboarding taxonomy with sub-interests nested.
func (s *interestService) GetAllInterests(ctx context.Context) ([]domain.Interest, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all interests")
		return nil, fmt.Errorf("context error: %w", err)
	}

	interests, err := s.interestRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all interests", err)
		return nil, err
	}

	if interests == nil {
		interests = []domain.Interest{}
	}
	for i := range interests {
		if interests[i].SubInterests == nil {
			interests[i].SubInterests = []domain.SubInterest{}
		}
	}

	return interests, nil
}
