package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fyzahq/fyza/internal/model"
)

var (
	ErrGoalNotFound = errors.New("financial goal not found")
)

const goalColumns = `goal_id, user_id, goal_name, target_amount, target_date, priority, created_at, updated_at`

type GoalRepository interface {
	Create(ctx context.Context, goal *model.FinancialGoal) error
	ByID(ctx context.Context, goalID string) (*model.FinancialGoal, error)
	Goals(ctx context.Context, userID int64) ([]*model.FinancialGoal, error)
	Update(ctx context.Context, goal *model.FinancialGoal) error
	Delete(ctx context.Context, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// Create inserts goal and refreshes it with the stored row
func (r *goalRepository) Create(ctx context.Context, goal *model.FinancialGoal) error {
	query := `INSERT INTO financial_goals (` + goalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + goalColumns

	return r.db.GetContext(ctx, goal, query,
		goal.GoalID,
		goal.UserID,
		goal.GoalName,
		goal.TargetAmount,
		goal.TargetDate,
		goal.Priority,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.FinancialGoal, error) {
	goal := &model.FinancialGoal{}
	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE goal_id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals lists a user's goals in creation order
func (r *goalRepository) Goals(ctx context.Context, userID int64) ([]*model.FinancialGoal, error) {
	goals := []*model.FinancialGoal{}
	query := `SELECT ` + goalColumns + ` FROM financial_goals
	          WHERE user_id = $1
	          ORDER BY created_at ASC, goal_id ASC`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Update writes every mutable field and refreshes goal with the stored row
func (r *goalRepository) Update(ctx context.Context, goal *model.FinancialGoal) error {
	query := `UPDATE financial_goals
	          SET goal_name = $1, target_amount = $2, target_date = $3, priority = $4, updated_at = $5
	          WHERE goal_id = $6
	          RETURNING ` + goalColumns

	err := r.db.GetContext(ctx, goal, query,
		goal.GoalName,
		goal.TargetAmount,
		goal.TargetDate,
		goal.Priority,
		goal.UpdatedAt,
		goal.GoalID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrGoalNotFound
	}

	return err
}

func (r *goalRepository) Delete(ctx context.Context, goalID string) error {
	query := `DELETE FROM financial_goals WHERE goal_id = $1`
	result, err := r.db.ExecContext(ctx, query, goalID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
