package user

import (
	"context"
	"testing"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *CreateUserRequest {
	return &CreateUserRequest{
		FullName:             "Priya Sharma",
		Gender:               "Female",
		DateOfBirth:          "1999-03-14",
		Age:                  27,
		MotherTongue:         "Hindi",
		Nationality:          "Indian",
		MaritalStatus:        "Never Married",
		HighestQualification: "M.Sc",
		Occupation:           "Teacher",
		WorkLocation:         "Pune",
		Religion:             "Hindu",
		Interests:            []string{"reading", "hiking"},
		Contact: ContactRequest{
			MobileNumber: "+911234567890",
			Email:        "priya@example.com",
		},
		Preferences: PreferencesRequest{
			PreferredAgeMin: 25,
			PreferredAgeMax: 35,
		},
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", got.FullName)
	assert.Equal(t, []string{"reading", "hiking"}, []string(got.Interests))
	require.NotNil(t, got.Contact)
	assert.Equal(t, "priya@example.com", got.Contact.Email)
	require.NotNil(t, got.Preferences)
	assert.Equal(t, 25, got.Preferences.PreferredAgeMin)
	assert.Equal(t, "1999-03-14", got.DateOfBirth.Format("2006-01-02"))
}

func TestCreate_DefaultsInterestsToEmptyList(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	req := validRequest()
	req.Interests = nil

	created, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, created.Interests)
	assert.Empty(t, created.Interests)
}

func TestCreate_DuplicateContactLeavesStorageUnchanged(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	dup := validRequest()
	dup.FullName = "Someone Else"
	dup.Contact.MobileNumber = "+919999999999" // email still collides

	_, err = uc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrContactAlreadyRegistered)
	assert.Len(t, repo.Profiles, 1)
}

func TestCreate_InvalidDateOfBirth(t *testing.T) {
	uc := NewUserUseCase(repositorytest.NewFakeUserRepository(), nil, nil)

	req := validRequest()
	req.DateOfBirth = "14-03-1999"

	_, err := uc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdate_ReplacesAllFields(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.FullName = "Priya Deshmukh"
	req.WorkLocation = "Mumbai"
	req.Interests = []string{"painting"}
	req.Preferences.PreferredAgeMax = 40

	updated, err := uc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Priya Deshmukh", updated.FullName)
	assert.Equal(t, "Mumbai", updated.WorkLocation)
	assert.Equal(t, []string{"painting"}, []string(updated.Interests))
	require.NotNil(t, updated.Preferences)
	assert.Equal(t, 40, updated.Preferences.PreferredAgeMax)
}

func TestUpdate_NotFound(t *testing.T) {
	uc := NewUserUseCase(repositorytest.NewFakeUserRepository(), nil, nil)

	_, err := uc.Update(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_MissingChildrenAreSkipped(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	// Simulate a profile that lost its contact row.
	repo.Profiles[created.ID].Contact = nil

	updated, err := uc.Update(context.Background(), created.ID, validRequest())
	require.NoError(t, err)
	assert.Nil(t, updated.Contact, "update must not create a missing contact")
	assert.NotNil(t, updated.Preferences)
}

func TestDelete_RemovesUserAndChildren(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	uc := NewUserUseCase(repo, nil, nil)

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, repo.Profiles)
}

func TestDelete_NotFound(t *testing.T) {
	uc := NewUserUseCase(repositorytest.NewFakeUserRepository(), nil, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), 42), domain.ErrUserNotFound)
}

func TestWritesInvalidateMatchCache(t *testing.T) {
	repo := repositorytest.NewFakeUserRepository()
	cache := repositorytest.NewFakeMatchCache()
	uc := NewUserUseCase(repo, cache, nil)

	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Invalidations)

	_, err = uc.Update(context.Background(), created.ID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Invalidations)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Equal(t, 3, cache.Invalidations)
}

func TestSuggestBio_RequiresClient(t *testing.T) {
	uc := NewUserUseCase(repositorytest.NewFakeUserRepository(), nil, nil)

	_, err := uc.SuggestBio(context.Background(), &SuggestBioRequest{
		FullName:     "Priya Sharma",
		Occupation:   "Teacher",
		WorkLocation: "Pune",
		Interests:    []string{"reading"},
	})
	assert.Error(t, err)
}
