package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
	"github.com/anupamx/matrimony-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

var contactSeq int

func newProfile(name, gender string, age int, interests []string) *domain.Profile {
	contactSeq++
	return &domain.Profile{
		FullName:             name,
		Gender:               gender,
		Age:                  age,
		MotherTongue:         "Hindi",
		Nationality:          "Indian",
		MaritalStatus:        "Never Married",
		HighestQualification: "B.Tech",
		Occupation:           "Engineer",
		WorkLocation:         "Bangalore",
		Religion:             "Hindu",
		Interests:            interests,
		Contact: &domain.Contact{
			MobileNumber: fmt.Sprintf("+91%010d", contactSeq),
			Email:        name + "@example.com",
		},
		Preferences: &domain.Preferences{
			PreferredAgeMin: 18,
			PreferredAgeMax: 100,
		},
	}
}

func seed(t *testing.T, repo *repositorytest.FakeUserRepository, profiles ...*domain.Profile) {
	t.Helper()
	for _, p := range profiles {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func newUseCase(users *repositorytest.FakeUserRepository, cache repository.MatchCache) *MatchUseCase {
	return NewMatchUseCase(users, repositorytest.NewFakeMatchRepository(users), cache)
}

func TestFindMatches_Scenario(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()

	a := newProfile("a", "Female", 25, []string{"reading", "hiking"})
	a.Preferences.PreferredAgeMin = 20
	a.Preferences.PreferredAgeMax = 30
	b := newProfile("b", "Male", 27, []string{"hiking", "gaming"})
	c := newProfile("c", "Male", 40, []string{"chess"})
	seed(t, users, a, b, c)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, b.ID, matches[0].ID)
}

func TestFindMatches_UserNotFound(t *testing.T) {
	uc := newUseCase(repositorytest.NewFakeUserRepository(), nil)

	_, err := uc.FindMatches(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindMatches_PreferencesNotFound(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	seed(t, users, a)
	users.Profiles[a.ID].Preferences = nil

	uc := newUseCase(users, nil)
	_, err := uc.FindMatches(context.Background(), a.ID)
	assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
}

func TestFindMatches_NeverIncludesSelfOrSameGender(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	b := newProfile("b", "Female", 25, []string{"reading"})
	c := newProfile("c", "Male", 25, []string{"reading"})
	seed(t, users, a, b, c)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, c.ID, matches[0].ID)
}

func TestFindMatches_AgeRangeIsInclusive(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	a.Preferences.PreferredAgeMin = 27
	a.Preferences.PreferredAgeMax = 30
	atMin := newProfile("b", "Male", 27, []string{"reading"})
	atMax := newProfile("c", "Male", 30, []string{"reading"})
	below := newProfile("d", "Male", 26, []string{"reading"})
	above := newProfile("e", "Male", 31, []string{"reading"})
	seed(t, users, a, atMin, atMax, below, above)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)

	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []int{atMin.ID, atMax.ID}, ids)
}

func TestFindMatches_NilFilterDoesNotExclude(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	b := newProfile("b", "Male", 25, []string{"reading"})
	b.Religion = "Christian"
	b.Diet = strPtr("Non-Veg")
	seed(t, users, a, b)

	uc := newUseCase(users, nil)

	// No religion or diet preference set: b passes despite differing values.
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// Setting the filter now excludes b.
	users.Profiles[a.ID].Preferences.PreferredReligion = strPtr("Hindu")
	matches, err = uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_PreferenceFiltersMatchExactly(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	a.Preferences.PreferredDiet = strPtr("Veg")
	a.Preferences.PreferredLocation = strPtr("Mumbai")

	veg := newProfile("b", "Male", 25, []string{"reading"})
	veg.Diet = strPtr("Veg")
	veg.WorkLocation = "Mumbai"

	nonVeg := newProfile("c", "Male", 25, []string{"reading"})
	nonVeg.Diet = strPtr("Non-Veg")
	nonVeg.WorkLocation = "Mumbai"

	noDiet := newProfile("d", "Male", 25, []string{"reading"})
	noDiet.WorkLocation = "Mumbai"

	seed(t, users, a, veg, nonVeg, noDiet)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, veg.ID, matches[0].ID)
}

func TestFindMatches_RequiresInterestOverlap(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	b := newProfile("b", "Male", 25, []string{"chess"})
	seed(t, users, a, b)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_EmptyInterestSetMatchesNobody(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, nil)
	b := newProfile("b", "Male", 25, []string{"reading"})
	seed(t, users, a, b)

	uc := newUseCase(users, nil)
	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_UsesCache(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	b := newProfile("b", "Male", 25, []string{"reading"})
	seed(t, users, a, b)

	cache := repositorytest.NewFakeMatchCache()
	uc := newUseCase(users, cache)

	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// Computed result is stored.
	cached, ok := cache.Cached(a.ID)
	require.True(t, ok)
	assert.Equal(t, matches, cached)

	// A cached entry short-circuits recomputation even after the data
	// changes underneath.
	require.NoError(t, users.Delete(context.Background(), b.ID))
	matches, err = uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// Invalidation forces a recompute.
	cache.Invalidate(context.Background())
	matches, err = uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

// invalidatingMatchRepo bumps the cache generation while candidates are being
// fetched, simulating a profile write racing a match computation.
type invalidatingMatchRepo struct {
	*repositorytest.FakeMatchRepository
	cache repository.MatchCache
}

func (r *invalidatingMatchRepo) FindCandidates(ctx context.Context, requester *domain.Profile, prefs *domain.Preferences) ([]*domain.Profile, error) {
	candidates, err := r.FakeMatchRepository.FindCandidates(ctx, requester, prefs)
	r.cache.Invalidate(ctx)
	return candidates, err
}

func TestFindMatches_WriteDuringComputeIsNotCached(t *testing.T) {
	users := repositorytest.NewFakeUserRepository()
	a := newProfile("a", "Female", 25, []string{"reading"})
	b := newProfile("b", "Male", 25, []string{"reading"})
	seed(t, users, a, b)

	cache := repositorytest.NewFakeMatchCache()
	uc := NewMatchUseCase(users, &invalidatingMatchRepo{
		FakeMatchRepository: repositorytest.NewFakeMatchRepository(users),
		cache:               cache,
	}, cache)

	matches, err := uc.FindMatches(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// The result was computed against pre-write data, so it must not be
	// visible under the post-write generation.
	_, ok := cache.Cached(a.ID)
	assert.False(t, ok)
}
