package model

import (
	"errors"
	"time"
)

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var ErrInvalidPriority = errors.New("priority must be one of High, Medium, Low")

type Priority string

type FinancialGoal struct {
	GoalID       string    `db:"goal_id" json:"goal_id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	GoalName     string    `db:"goal_name" json:"goal_name"`
	TargetAmount float64   `db:"target_amount" json:"target_amount"`
	TargetDate   Date      `db:"target_date" json:"target_date"`
	Priority     Priority  `db:"priority" json:"priority"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// GoalInput is the create payload: every goal field plus the owner.
type GoalInput struct {
	UserID       int64    `json:"user_id"`
	GoalName     string   `json:"goal_name"`
	TargetAmount float64  `json:"target_amount"`
	TargetDate   Date     `json:"target_date"`
	Priority     Priority `json:"priority"`
}

// GoalUpdate carries only the fields a PUT should change.
type GoalUpdate struct {
	GoalName     *string   `json:"goal_name,omitempty"`
	TargetAmount *float64  `json:"target_amount,omitempty"`
	TargetDate   *Date     `json:"target_date,omitempty"`
	Priority     *Priority `json:"priority,omitempty"`
}

// Apply copies the set fields of u onto g.
func (u GoalUpdate) Apply(g *FinancialGoal) {
	if u.GoalName != nil {
		g.GoalName = *u.GoalName
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.TargetDate != nil {
		g.TargetDate = *u.TargetDate
	}
	if u.Priority != nil {
		g.Priority = *u.Priority
	}
}

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", ErrInvalidPriority
}

func (p Priority) Valid() bool {
	_, err := ParsePriority(string(p))
	return err == nil
}

func (p Priority) String() string {
	return string(p)
}

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p *Priority) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return ErrInvalidPriority
	}
	return p.UnmarshalText([]byte(s))
}
