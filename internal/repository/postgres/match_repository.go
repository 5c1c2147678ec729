package postgres

import (
	"context"
	"fmt"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) FindCandidates(ctx context.Context, requester *domain.Profile, prefs *domain.Preferences) ([]*domain.Profile, error) {
	query, args := buildCandidateQuery(requester, prefs)

	var candidates []*domain.Profile
	err := r.db.SelectContext(ctx, &candidates, query, args...)
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// buildCandidateQuery assembles the hard-filter WHERE clause. A nil
// preference field adds no condition at all, so "don't care" never excludes
// a candidate.
func buildCandidateQuery(requester *domain.Profile, prefs *domain.Preferences) (string, []interface{}) {
	query := `SELECT * FROM user_profiles WHERE gender <> $1 AND age BETWEEN $2 AND $3 AND id <> $4`
	args := []interface{}{requester.Gender, prefs.PreferredAgeMin, prefs.PreferredAgeMax, requester.ID}
	argCount := 5

	optional := []struct {
		column string
		value  *string
	}{
		{"religion", prefs.PreferredReligion},
		{"work_location", prefs.PreferredLocation},
		{"diet", prefs.PreferredDiet},
		{"drinking_habits", prefs.PreferredDrinkingHabits},
		{"smoking_habits", prefs.PreferredSmokingHabits},
	}
	for _, filter := range optional {
		if filter.value != nil {
			query += fmt.Sprintf(" AND %s = $%d", filter.column, argCount)
			args = append(args, *filter.value)
			argCount++
		}
	}

	return query, args
}
