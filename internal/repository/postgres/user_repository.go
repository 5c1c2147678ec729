package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// failure, which the contacts table raises for duplicate email or mobile.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *userRepository) Create(ctx context.Context, profile *domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Fast-path duplicate check for the friendly error. The unique
	// constraints on user_contacts remain the source of truth: a racing
	// insert that slips past this check fails at commit with 23505.
	var taken bool
	err = tx.GetContext(ctx, &taken,
		`SELECT EXISTS(SELECT 1 FROM user_contacts WHERE email = $1 OR mobile_number = $2)`,
		profile.Contact.Email, profile.Contact.MobileNumber,
	)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrContactAlreadyRegistered
	}

	if profile.Interests == nil {
		profile.Interests = pq.StringArray{}
	}

	query := `
		INSERT INTO user_profiles (
			full_name, gender, date_of_birth, age, mother_tongue, nationality,
			marital_status, highest_qualification, occupation, work_location,
			religion, caste, community, height, weight, hobbies,
			diet, drinking_habits, smoking_habits, languages_spoken, interests
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`
	err = tx.QueryRowContext(
		ctx, query,
		profile.FullName, profile.Gender, profile.DateOfBirth, profile.Age,
		profile.MotherTongue, profile.Nationality, profile.MaritalStatus,
		profile.HighestQualification, profile.Occupation, profile.WorkLocation,
		profile.Religion, profile.Caste, profile.Community, profile.Height,
		profile.Weight, profile.Hobbies, profile.Diet, profile.DrinkingHabits,
		profile.SmokingHabits, profile.LanguagesSpoken, profile.Interests,
	).Scan(&profile.ID)
	if err != nil {
		return err
	}

	profile.Contact.UserID = profile.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_contacts (user_id, mobile_number, email) VALUES ($1, $2, $3) RETURNING id`,
		profile.ID, profile.Contact.MobileNumber, profile.Contact.Email,
	).Scan(&profile.Contact.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrContactAlreadyRegistered
		}
		return err
	}

	profile.Preferences.UserID = profile.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_preferences (
			user_id, preferred_age_min, preferred_age_max, preferred_religion,
			preferred_location, preferred_diet, preferred_drinking_habits, preferred_smoking_habits
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		profile.ID, profile.Preferences.PreferredAgeMin, profile.Preferences.PreferredAgeMax,
		profile.Preferences.PreferredReligion, profile.Preferences.PreferredLocation,
		profile.Preferences.PreferredDiet, profile.Preferences.PreferredDrinkingHabits,
		profile.Preferences.PreferredSmokingHabits,
	).Scan(&profile.Preferences.ID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrContactAlreadyRegistered
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := r.attachChildren(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	err := r.db.SelectContext(ctx, &profiles, `SELECT * FROM user_profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		if err := r.attachChildren(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// attachChildren loads the contact and preferences rows. A missing child is
// not an error; the profile keeps a nil pointer for it.
func (r *userRepository) attachChildren(ctx context.Context, profile *domain.Profile) error {
	var contact domain.Contact
	err := r.db.GetContext(ctx, &contact, `SELECT * FROM user_contacts WHERE user_id = $1`, profile.ID)
	if err == nil {
		profile.Contact = &contact
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var prefs domain.Preferences
	err = r.db.GetContext(ctx, &prefs, `SELECT * FROM user_preferences WHERE user_id = $1`, profile.ID)
	if err == nil {
		profile.Preferences = &prefs
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, profile *domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if profile.Interests == nil {
		profile.Interests = pq.StringArray{}
	}

	query := `
		UPDATE user_profiles
		SET full_name = $1, gender = $2, date_of_birth = $3, age = $4,
		    mother_tongue = $5, nationality = $6, marital_status = $7,
		    highest_qualification = $8, occupation = $9, work_location = $10,
		    religion = $11, caste = $12, community = $13, height = $14,
		    weight = $15, hobbies = $16, diet = $17, drinking_habits = $18,
		    smoking_habits = $19, languages_spoken = $20, interests = $21
		WHERE id = $22
	`
	result, err := tx.ExecContext(
		ctx, query,
		profile.FullName, profile.Gender, profile.DateOfBirth, profile.Age,
		profile.MotherTongue, profile.Nationality, profile.MaritalStatus,
		profile.HighestQualification, profile.Occupation, profile.WorkLocation,
		profile.Religion, profile.Caste, profile.Community, profile.Height,
		profile.Weight, profile.Hobbies, profile.Diet, profile.DrinkingHabits,
		profile.SmokingHabits, profile.LanguagesSpoken, profile.Interests,
		profile.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	// A profile without a contact or preferences row tolerates the update;
	// the missing child is skipped, never created here.
	if profile.Contact != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE user_contacts SET mobile_number = $1, email = $2 WHERE user_id = $3`,
			profile.Contact.MobileNumber, profile.Contact.Email, profile.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrContactAlreadyRegistered
			}
			return err
		}
	}

	if profile.Preferences != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE user_preferences
			 SET preferred_age_min = $1, preferred_age_max = $2, preferred_religion = $3,
			     preferred_location = $4, preferred_diet = $5,
			     preferred_drinking_habits = $6, preferred_smoking_habits = $7
			 WHERE user_id = $8`,
			profile.Preferences.PreferredAgeMin, profile.Preferences.PreferredAgeMax,
			profile.Preferences.PreferredReligion, profile.Preferences.PreferredLocation,
			profile.Preferences.PreferredDiet, profile.Preferences.PreferredDrinkingHabits,
			profile.Preferences.PreferredSmokingHabits, profile.ID,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrContactAlreadyRegistered
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The FK cascade would remove the children anyway; deleting them
	// explicitly first keeps the order children-before-parent.
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_contacts WHERE user_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
