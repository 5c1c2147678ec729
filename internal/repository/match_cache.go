package repository

import (
	"context"

	"github.com/anupamx/matrimony-backend/internal/domain"
)

// MatchCache is a best-effort cache for computed match lists. Entries are
// keyed by a write generation so any profile mutation invalidates them all.
// Get returns a token pinning the generation observed at lookup time; Set
// stores under that token, so a result computed against older data never
// lands under a generation newer than the data it was computed from. An
// empty token makes Set a no-op.
type MatchCache interface {
	Get(ctx context.Context, userID int) ([]*domain.Profile, string, bool)
	Set(ctx context.Context, token string, matches []*domain.Profile)
	Invalidate(ctx context.Context)
}
