package match

import (
	"context"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
)

type MatchUseCase struct {
	userRepo   repository.UserRepository
	matchRepo  repository.MatchRepository
	matchCache repository.MatchCache
}

func NewMatchUseCase(
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	matchCache repository.MatchCache,
) *MatchUseCase {
	return &MatchUseCase{
		userRepo:   userRepo,
		matchRepo:  matchRepo,
		matchCache: matchCache,
	}
}

// FindMatches returns every profile that passes the requester's hard filters
// and shares at least one interest. Admission is boolean; no score is
// computed and result order carries no meaning.
func (uc *MatchUseCase) FindMatches(ctx context.Context, userID int) ([]*domain.Profile, error) {
	requester, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester.Preferences == nil {
		return nil, domain.ErrPreferencesNotFound
	}

	var cacheToken string
	if uc.matchCache != nil {
		cached, token, ok := uc.matchCache.Get(ctx, userID)
		if ok {
			return cached, nil
		}
		cacheToken = token
	}

	candidates, err := uc.matchRepo.FindCandidates(ctx, requester, requester.Preferences)
	if err != nil {
		return nil, err
	}

	interests := requester.InterestSet()
	matches := make([]*domain.Profile, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.SharesInterest(interests) {
			matches = append(matches, candidate)
		}
	}

	if uc.matchCache != nil {
		uc.matchCache.Set(ctx, cacheToken, matches)
	}
	return matches, nil
}
