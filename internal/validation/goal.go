package validation

import (
	"time"

	"github.com/fyzahq/fyza/internal/model"
)

// ValidateGoal checks a complete goal payload
func ValidateGoal(in model.GoalInput, now time.Time) error {
	if in.UserID <= 0 {
		return newError("user_id", "must be a positive integer")
	}

	err := ValidateName("goal_name", in.GoalName)
	if err != nil {
		return err
	}

	err = validateAmount(in.TargetAmount)
	if err != nil {
		return err
	}

	err = validateTargetDate(in.TargetDate, now)
	if err != nil {
		return err
	}

	if !in.Priority.Valid() {
		return newError("priority", "must be one of High, Medium, Low")
	}

	return nil
}

// ValidateGoalUpdate checks only the fields present in the update
func ValidateGoalUpdate(u model.GoalUpdate, now time.Time) error {
	if u.GoalName != nil {
		err := ValidateName("goal_name", *u.GoalName)
		if err != nil {
			return err
		}
	}

	if u.TargetAmount != nil {
		err := validateAmount(*u.TargetAmount)
		if err != nil {
			return err
		}
	}

	if u.TargetDate != nil {
		err := validateTargetDate(*u.TargetDate, now)
		if err != nil {
			return err
		}
	}

	if u.Priority != nil && !u.Priority.Valid() {
		return newError("priority", "must be one of High, Medium, Low")
	}

	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return newError("target_amount", "must be greater than 0")
	}
	return nil
}

func validateTargetDate(d model.Date, now time.Time) error {
	if d.IsZero() {
		return newError("target_date", "is required")
	}
	if !d.AfterDay(now) {
		return newError("target_date", "must be in the future")
	}
	return nil
}
