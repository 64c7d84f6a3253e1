// internal/models/program.go
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed program taxonomy used across the catalog.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryHousing        Category = "housing"
	CategoryHealthcare     Category = "healthcare"
	CategoryFinancial      Category = "financial"
	CategoryChildcare      Category = "childcare"
	CategoryEmployment     Category = "employment"
	CategoryLegal          Category = "legal"
	CategorySenior         Category = "senior"
	CategoryDisability     Category = "disability"
	CategoryVeteran        Category = "veteran"
	CategoryEducation      Category = "education"
	CategoryTransportation Category = "transportation"
)

// Categories lists every valid program category.
var Categories = []Category{
	CategoryFood, CategoryHousing, CategoryHealthcare, CategoryFinancial,
	CategoryChildcare, CategoryEmployment, CategoryLegal, CategorySenior,
	CategoryDisability, CategoryVeteran, CategoryEducation, CategoryTransportation,
}

// IsValidCategory reports whether s names a known category.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// CriterionType identifies how an eligibility criterion is evaluated.
type CriterionType string

const (
	CriterionIncome      CriterionType = "income"
	CriterionHousehold   CriterionType = "household"
	CriterionCategorical CriterionType = "categorical"
	CriterionGeographic  CriterionType = "geographic"
	CriterionSituational CriterionType = "situational"
)

// EligibilityCriterion is one structured rule attached to a program.
// Value holds a criterion-specific JSON object (e.g. {"min_age": 60});
// its shape is validated per type before evaluation.
type EligibilityCriterion struct {
	ID       string          `json:"id"`
	Type     CriterionType   `json:"type"`
	Name     string          `json:"name"`
	Value    json.RawMessage `json:"value"`
	Required bool            `json:"required"`
}

// IncomeLimit is one stored income ceiling row for a program.
// At most one row per (program, household size) is active at a time.
type IncomeLimit struct {
	HouseholdSize int             `json:"householdSize"`
	AnnualLimit   decimal.Decimal `json:"annualLimit"`
	MonthlyLimit  decimal.Decimal `json:"monthlyLimit"`
	FPLPercentage *int            `json:"fplPercentage,omitempty"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

// ActiveAt reports whether the row applies at the given instant.
func (l IncomeLimit) ActiveAt(t time.Time) bool {
	if t.Before(l.EffectiveDate) {
		return false
	}
	return l.ExpiresAt == nil || t.Before(*l.ExpiresAt)
}

// Program is a catalog record, read-only to the matching engine.
type Program struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code,omitempty"`
	Name           string                 `json:"name"`
	Category       Category               `json:"category"`
	Description    string                 `json:"description,omitempty"`
	Criteria       []EligibilityCriterion `json:"criteria,omitempty"`
	IncomeLimits   []IncomeLimit          `json:"incomeLimits,omitempty"`
	FPLPercentage  *int                   `json:"fplPercentage,omitempty"`
	BenefitMin     *decimal.Decimal       `json:"benefitMin,omitempty"`
	BenefitMax     *decimal.Decimal       `json:"benefitMax,omitempty"`
	BenefitFamily  string                 `json:"benefitFamily,omitempty"`
	ServesCounties []string               `json:"servesCounties,omitempty"`
	ServesStates   []string               `json:"servesStates,omitempty"`
	IsEmergency    bool                   `json:"isEmergency"`
	Confidence     float64                `json:"confidenceScore"`
	Documents      []DocumentRequirement  `json:"documents,omitempty"`
}

// CriteriaOfType returns the program's criteria of one type, in catalog order.
func (p *Program) CriteriaOfType(t CriterionType) []EligibilityCriterion {
	var out []EligibilityCriterion
	for _, c := range p.Criteria {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
