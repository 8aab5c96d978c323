package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/repository"
	"github.com/fyzahq/fyza/internal/validation"
)

var (
	ErrUnknownUser = errors.New("user profile does not exist")
)

type GoalService struct {
	repo        repository.GoalRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewGoalService(repo repository.GoalRepository, profileRepo repository.ProfileRepository) *GoalService {
	return &GoalService{
		repo:        repo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

func (s *GoalService) Goals(ctx context.Context, userID int64) ([]*model.FinancialGoal, error) {
	return s.repo.Goals(ctx, userID)
}

func (s *GoalService) ByID(ctx context.Context, goalID string) (*model.FinancialGoal, error) {
	return s.repo.ByID(ctx, goalID)
}

func (s *GoalService) Create(ctx context.Context, in model.GoalInput) (*model.FinancialGoal, error) {
	now := s.timestamp()

	err := validation.ValidateGoal(in, now)
	if err != nil {
		return nil, err
	}

	exists, err := s.profileRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check goal owner: %w", err)
	}
	if !exists {
		return nil, ErrUnknownUser
	}

	goal := &model.FinancialGoal{
		GoalID:       uuid.New().String(),
		UserID:       in.UserID,
		GoalName:     in.GoalName,
		TargetAmount: in.TargetAmount,
		TargetDate:   in.TargetDate,
		Priority:     in.Priority,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Debug("financial goal created", "goal_id", goal.GoalID, "user_id", goal.UserID)

	return goal, nil
}

// Update applies the fields present in u and returns the stored goal
func (s *GoalService) Update(ctx context.Context, goalID string, u model.GoalUpdate) (*model.FinancialGoal, error) {
	now := s.timestamp()

	err := validation.ValidateGoalUpdate(u, now)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	u.Apply(goal)
	goal.UpdatedAt = now

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	return s.repo.Delete(ctx, goalID)
}

// timestamp truncates to microseconds so values survive a Postgres round trip
func (s *GoalService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
