package user

import (
	"context"
	"fmt"
	"time"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/infrastructure/gemini"
	"github.com/anupamx/matrimony-backend/internal/repository"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	matchCache   repository.MatchCache
	geminiClient *gemini.GeminiClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	matchCache repository.MatchCache,
	geminiClient *gemini.GeminiClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		matchCache:   matchCache,
		geminiClient: geminiClient,
	}
}

// ContactRequest represents the contact sub-entity of a user payload
type ContactRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,max=15,mobile"`
	Email        string `json:"email" binding:"required,email,max=100"`
}

// PreferencesRequest represents the partner-preference sub-entity
type PreferencesRequest struct {
	PreferredAgeMin         int     `json:"preferred_age_min" binding:"required,gte=18,lte=100"`
	PreferredAgeMax         int     `json:"preferred_age_max" binding:"required,gte=18,lte=100,gtefield=PreferredAgeMin"`
	PreferredReligion       *string `json:"preferred_religion" binding:"omitempty,max=50"`
	PreferredLocation       *string `json:"preferred_location" binding:"omitempty,max=100"`
	PreferredDiet           *string `json:"preferred_diet" binding:"omitempty,oneof=Veg Non-Veg Vegan Others"`
	PreferredDrinkingHabits *string `json:"preferred_drinking_habits" binding:"omitempty,oneof=Never Occasionally Frequently"`
	PreferredSmokingHabits  *string `json:"preferred_smoking_habits" binding:"omitempty,oneof=Never Occasionally Frequently"`
}

// CreateUserRequest carries the full profile payload. PUT reuses it: every
// field of the stored record is replaced, not patched.
type CreateUserRequest struct {
	FullName             string             `json:"full_name" binding:"required,min=2,max=50"`
	Gender               string             `json:"gender" binding:"required,oneof=Male Female Other"`
	DateOfBirth          string             `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Age                  int                `json:"age" binding:"required,gte=18,lte=100"`
	MotherTongue         string             `json:"mother_tongue" binding:"required,max=50"`
	Nationality          string             `json:"nationality" binding:"required,max=50"`
	MaritalStatus        string             `json:"marital_status" binding:"required,max=20"`
	HighestQualification string             `json:"highest_qualification" binding:"required,max=100"`
	Occupation           string             `json:"occupation" binding:"required,max=100"`
	WorkLocation         string             `json:"work_location" binding:"required,max=100"`
	Religion             string             `json:"religion" binding:"required,max=50"`
	Caste                *string            `json:"caste" binding:"omitempty,max=50"`
	Community            *string            `json:"community" binding:"omitempty,max=50"`
	Height               *float64           `json:"height" binding:"omitempty,gt=100,lt=250"`
	Weight               *float64           `json:"weight" binding:"omitempty,gt=30,lt=200"`
	Hobbies              *string            `json:"hobbies" binding:"omitempty,max=255"`
	Diet                 *string            `json:"diet" binding:"omitempty,oneof=Veg Non-Veg Vegan Others"`
	DrinkingHabits       *string            `json:"drinking_habits" binding:"omitempty,oneof=Never Occasionally Frequently"`
	SmokingHabits        *string            `json:"smoking_habits" binding:"omitempty,oneof=Never Occasionally Frequently"`
	LanguagesSpoken      *string            `json:"languages_spoken" binding:"omitempty,max=255"`
	Interests            []string           `json:"interests"`
	Contact              ContactRequest     `json:"contact" binding:"required"`
	Preferences          PreferencesRequest `json:"preferences" binding:"required"`
}

// SuggestBioRequest represents a profile-description suggestion request
type SuggestBioRequest struct {
	FullName     string   `json:"full_name" binding:"required"`
	Occupation   string   `json:"occupation" binding:"required"`
	WorkLocation string   `json:"work_location" binding:"required"`
	Interests    []string `json:"interests" binding:"required"`
}

func (req *CreateUserRequest) toDomain() (*domain.Profile, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_birth: %w", err)
	}

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}

	return &domain.Profile{
		FullName:             req.FullName,
		Gender:               req.Gender,
		DateOfBirth:          dob,
		Age:                  req.Age,
		MotherTongue:         req.MotherTongue,
		Nationality:          req.Nationality,
		MaritalStatus:        req.MaritalStatus,
		HighestQualification: req.HighestQualification,
		Occupation:           req.Occupation,
		WorkLocation:         req.WorkLocation,
		Religion:             req.Religion,
		Caste:                req.Caste,
		Community:            req.Community,
		Height:               req.Height,
		Weight:               req.Weight,
		Hobbies:              req.Hobbies,
		Diet:                 req.Diet,
		DrinkingHabits:       req.DrinkingHabits,
		SmokingHabits:        req.SmokingHabits,
		LanguagesSpoken:      req.LanguagesSpoken,
		Interests:            interests,
		Contact: &domain.Contact{
			MobileNumber: req.Contact.MobileNumber,
			Email:        req.Contact.Email,
		},
		Preferences: &domain.Preferences{
			PreferredAgeMin:         req.Preferences.PreferredAgeMin,
			PreferredAgeMax:         req.Preferences.PreferredAgeMax,
			PreferredReligion:       req.Preferences.PreferredReligion,
			PreferredLocation:       req.Preferences.PreferredLocation,
			PreferredDiet:           req.Preferences.PreferredDiet,
			PreferredDrinkingHabits: req.Preferences.PreferredDrinkingHabits,
			PreferredSmokingHabits:  req.Preferences.PreferredSmokingHabits,
		},
	}, nil
}

// Create registers a profile with its contact and preferences in one
// transaction. Duplicate email or mobile fails the whole create.
func (uc *UserUseCase) Create(ctx context.Context, req *CreateUserRequest) (*domain.Profile, error) {
	profile, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	uc.invalidateMatches(ctx)
	return profile, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int) (*domain.Profile, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) List(ctx context.Context) ([]*domain.Profile, error) {
	return uc.userRepo.List(ctx)
}

// Update replaces every stored field from the request. A missing contact or
// preferences row is skipped silently, never created.
func (uc *UserUseCase) Update(ctx context.Context, id int, req *CreateUserRequest) (*domain.Profile, error) {
	profile, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	profile.ID = id

	if err := uc.userRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	uc.invalidateMatches(ctx)

	// Reload so the response reflects which children actually exist.
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateMatches(ctx)
	return nil
}

// SuggestBio generates profile-description suggestions with Gemini.
func (uc *UserUseCase) SuggestBio(ctx context.Context, req *SuggestBioRequest) ([]string, error) {
	if uc.geminiClient == nil {
		return nil, fmt.Errorf("gemini client is not initialized")
	}
	return uc.geminiClient.SuggestBio(ctx, req.FullName, req.Occupation, req.WorkLocation, req.Interests)
}

func (uc *UserUseCase) invalidateMatches(ctx context.Context) {
	if uc.matchCache != nil {
		uc.matchCache.Invalidate(ctx)
	}
}
