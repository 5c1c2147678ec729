// Package repositorytest provides in-memory repository implementations for
// tests.
package repositorytest

import (
	"context"
	"fmt"
	"sort"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
)

type FakeUserRepository struct {
	Profiles map[int]*domain.Profile
	nextID   int
}

var _ repository.UserRepository = (*FakeUserRepository)(nil)

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		Profiles: make(map[int]*domain.Profile),
		nextID:   1,
	}
}

func (f *FakeUserRepository) Create(_ context.Context, profile *domain.Profile) error {
	for _, existing := range f.Profiles {
		if existing.Contact == nil {
			continue
		}
		if existing.Contact.Email == profile.Contact.Email ||
			existing.Contact.MobileNumber == profile.Contact.MobileNumber {
			return domain.ErrContactAlreadyRegistered
		}
	}

	profile.ID = f.nextID
	f.nextID++
	profile.Contact.UserID = profile.ID
	profile.Preferences.UserID = profile.ID

	stored := *profile
	f.Profiles[profile.ID] = &stored
	return nil
}

func (f *FakeUserRepository) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	profile, ok := f.Profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *FakeUserRepository) List(_ context.Context) ([]*domain.Profile, error) {
	ids := make([]int, 0, len(f.Profiles))
	for id := range f.Profiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	profiles := make([]*domain.Profile, 0, len(ids))
	for _, id := range ids {
		copied := *f.Profiles[id]
		profiles = append(profiles, &copied)
	}
	return profiles, nil
}

func (f *FakeUserRepository) Update(_ context.Context, profile *domain.Profile) error {
	stored, ok := f.Profiles[profile.ID]
	if !ok {
		return domain.ErrUserNotFound
	}

	updated := *profile
	// Missing children stay missing: the update skips them silently.
	if stored.Contact == nil {
		updated.Contact = nil
	}
	if stored.Preferences == nil {
		updated.Preferences = nil
	}
	f.Profiles[profile.ID] = &updated
	return nil
}

func (f *FakeUserRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.Profiles[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.Profiles, id)
	return nil
}

// FakeMatchRepository filters the profiles held by a FakeUserRepository with
// the same predicate the SQL candidate query applies.
type FakeMatchRepository struct {
	Users *FakeUserRepository
}

var _ repository.MatchRepository = (*FakeMatchRepository)(nil)

func NewFakeMatchRepository(users *FakeUserRepository) *FakeMatchRepository {
	return &FakeMatchRepository{Users: users}
}

func (f *FakeMatchRepository) FindCandidates(ctx context.Context, requester *domain.Profile, prefs *domain.Preferences) ([]*domain.Profile, error) {
	all, err := f.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	matchesFilter := func(value *string, field string) bool {
		return value == nil || *value == field
	}
	matchesOptional := func(value *string, field *string) bool {
		if value == nil {
			return true
		}
		return field != nil && *field == *value
	}

	var candidates []*domain.Profile
	for _, candidate := range all {
		if candidate.ID == requester.ID || candidate.Gender == requester.Gender {
			continue
		}
		if candidate.Age < prefs.PreferredAgeMin || candidate.Age > prefs.PreferredAgeMax {
			continue
		}
		if !matchesFilter(prefs.PreferredReligion, candidate.Religion) ||
			!matchesFilter(prefs.PreferredLocation, candidate.WorkLocation) ||
			!matchesOptional(prefs.PreferredDiet, candidate.Diet) ||
			!matchesOptional(prefs.PreferredDrinkingHabits, candidate.DrinkingHabits) ||
			!matchesOptional(prefs.PreferredSmokingHabits, candidate.SmokingHabits) {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// FakeMatchCache records cache traffic for assertions. It keys entries by a
// generation counter the way the redis cache does, so a Set carrying a token
// from before an Invalidate lands on an unreachable key.
type FakeMatchCache struct {
	Entries       map[string][]*domain.Profile
	Invalidations int
	gen           int
}

var _ repository.MatchCache = (*FakeMatchCache)(nil)

func NewFakeMatchCache() *FakeMatchCache {
	return &FakeMatchCache{Entries: make(map[string][]*domain.Profile)}
}

func (f *FakeMatchCache) token(userID int) string {
	return fmt.Sprintf("%d:%d", f.gen, userID)
}

func (f *FakeMatchCache) Get(_ context.Context, userID int) ([]*domain.Profile, string, bool) {
	token := f.token(userID)
	matches, ok := f.Entries[token]
	return matches, token, ok
}

func (f *FakeMatchCache) Set(_ context.Context, token string, matches []*domain.Profile) {
	if token == "" {
		return
	}
	f.Entries[token] = matches
}

func (f *FakeMatchCache) Invalidate(_ context.Context) {
	f.gen++
	f.Invalidations++
}

// Cached reports what a reader at the current generation would see.
func (f *FakeMatchCache) Cached(userID int) ([]*domain.Profile, bool) {
	matches, ok := f.Entries[f.token(userID)]
	return matches, ok
}
