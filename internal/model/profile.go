package model

import "time"

const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

type Profile struct {
	ID           int64     `db:"id" json:"id,omitempty"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Age          int       `db:"age" json:"age"`
	AnnualIncome float64   `db:"annual_income" json:"annual_income"`
	City         string    `db:"city" json:"city"`
	Occupation   string    `db:"occupation" json:"occupation"`
	Dependents   int       `db:"dependents" json:"dependents"`
	RiskProfile  string    `db:"risk_profile" json:"risk_profile"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
