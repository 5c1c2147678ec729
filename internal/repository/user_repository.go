package repository

import (
	"context"

	"github.com/anupamx/matrimony-backend/internal/domain"
)

// UserRepository persists Profile rows together with their one-to-one
// Contact and Preferences children. Multi-table writes are atomic.
type UserRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int) error
}
