package repository

import (
	"context"

	"github.com/anupamx/matrimony-backend/internal/domain"
)

type MatchRepository interface {
	// FindCandidates returns profiles of the opposite gender whose age falls
	// within the requester's preferred range and whose attributes equal every
	// preference filter that is set. The requester itself is excluded.
	FindCandidates(ctx context.Context, requester *domain.Profile, prefs *domain.Preferences) ([]*domain.Profile, error)
}
