package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fyzahq/fyza/internal/model"
)

var ErrProfileNotFound = errors.New("user profile not found")

const profileColumns = `id, first_name, last_name, age, annual_income, city, occupation, dependents, risk_profile, created_at, updated_at`

type ProfileRepository interface {
	ByID(ctx context.Context, id int64) (*model.Profile, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByID(ctx context.Context, id int64) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_profiles WHERE id = $1`, id)
	return count > 0, err
}

// Create inserts profile and sets the database-assigned ID
func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.GetContext(ctx, profile, `
		INSERT INTO user_profiles (first_name, last_name, age, annual_income, city, occupation, dependents, risk_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+profileColumns,
		profile.FirstName, profile.LastName, profile.Age, profile.AnnualIncome, profile.City,
		profile.Occupation, profile.Dependents, profile.RiskProfile, profile.CreatedAt, profile.UpdatedAt)
}

// Update replaces every field of the profile with the given ID
func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	err := r.db.GetContext(ctx, profile, `
		UPDATE user_profiles
		SET first_name = $1, last_name = $2, age = $3, annual_income = $4, city = $5,
		    occupation = $6, dependents = $7, risk_profile = $8, updated_at = $9
		WHERE id = $10
		RETURNING `+profileColumns,
		profile.FirstName, profile.LastName, profile.Age, profile.AnnualIncome, profile.City,
		profile.Occupation, profile.Dependents, profile.RiskProfile, profile.UpdatedAt, profile.ID)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}

	return err
}
