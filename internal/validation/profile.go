package validation

import (
	"github.com/fyzahq/fyza/internal/model"
)

// ValidateProfile validates a profile create or replace payload
func ValidateProfile(p *model.Profile) error {
	err := ValidateName("first_name", p.FirstName)
	if err != nil {
		return err
	}

	err = ValidateName("last_name", p.LastName)
	if err != nil {
		return err
	}

	if p.Age < 0 || p.Age > 150 {
		return newError("age", "must be between 0 and 150")
	}

	if p.AnnualIncome < 0 {
		return newError("annual_income", "must not be negative")
	}

	if p.Dependents < 0 {
		return newError("dependents", "must not be negative")
	}

	switch p.RiskProfile {
	case "", model.RiskConservative, model.RiskModerate, model.RiskAggressive:
	default:
		return newError("risk_profile", "must be conservative, moderate or aggressive")
	}

	return nil
}
