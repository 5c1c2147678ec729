package domain

import (
	"time"

	"github.com/lib/pq"
)

// Profile is the primary user record. Contact and Preferences are one-to-one
// children, loaded alongside the profile when present.
type Profile struct {
	ID                   int            `json:"id" db:"id"`
	FullName             string         `json:"full_name" db:"full_name"`
	Gender               string         `json:"gender" db:"gender"`
	DateOfBirth          time.Time      `json:"date_of_birth" db:"date_of_birth"`
	Age                  int            `json:"age" db:"age"`
	MotherTongue         string         `json:"mother_tongue" db:"mother_tongue"`
	Nationality          string         `json:"nationality" db:"nationality"`
	MaritalStatus        string         `json:"marital_status" db:"marital_status"`
	HighestQualification string         `json:"highest_qualification" db:"highest_qualification"`
	Occupation           string         `json:"occupation" db:"occupation"`
	WorkLocation         string         `json:"work_location" db:"work_location"`
	Religion             string         `json:"religion" db:"religion"`
	Caste                *string        `json:"caste" db:"caste"`
	Community            *string        `json:"community" db:"community"`
	Height               *float64       `json:"height" db:"height"`
	Weight               *float64       `json:"weight" db:"weight"`
	Hobbies              *string        `json:"hobbies" db:"hobbies"`
	Diet                 *string        `json:"diet" db:"diet"`
	DrinkingHabits       *string        `json:"drinking_habits" db:"drinking_habits"`
	SmokingHabits        *string        `json:"smoking_habits" db:"smoking_habits"`
	LanguagesSpoken      *string        `json:"languages_spoken" db:"languages_spoken"`
	Interests            pq.StringArray `json:"interests" db:"interests"`

	Contact     *Contact     `json:"contact,omitempty" db:"-"`
	Preferences *Preferences `json:"preferences,omitempty" db:"-"`
}

type Contact struct {
	ID           int    `json:"-" db:"id"`
	UserID       int    `json:"-" db:"user_id"`
	MobileNumber string `json:"mobile_number" db:"mobile_number"`
	Email        string `json:"email" db:"email"`
}

type Preferences struct {
	ID                      int     `json:"-" db:"id"`
	UserID                  int     `json:"-" db:"user_id"`
	PreferredAgeMin         int     `json:"preferred_age_min" db:"preferred_age_min"`
	PreferredAgeMax         int     `json:"preferred_age_max" db:"preferred_age_max"`
	PreferredReligion       *string `json:"preferred_religion" db:"preferred_religion"`
	PreferredLocation       *string `json:"preferred_location" db:"preferred_location"`
	PreferredDiet           *string `json:"preferred_diet" db:"preferred_diet"`
	PreferredDrinkingHabits *string `json:"preferred_drinking_habits" db:"preferred_drinking_habits"`
	PreferredSmokingHabits  *string `json:"preferred_smoking_habits" db:"preferred_smoking_habits"`
}

// InterestSet returns the profile's interests as a set for overlap checks.
func (p *Profile) InterestSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Interests))
	for _, interest := range p.Interests {
		set[interest] = struct{}{}
	}
	return set
}

// SharesInterest reports whether the profile has at least one interest in
// common with the given set.
func (p *Profile) SharesInterest(interests map[string]struct{}) bool {
	for _, interest := range p.Interests {
		if _, ok := interests[interest]; ok {
			return true
		}
	}
	return false
}
