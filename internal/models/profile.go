// internal/models/profile.go
package models

import "github.com/shopspring/decimal"

// UserProfile is the transient household profile one match request runs
// against. It is built by the caller, treated as read-only here, and never
// persisted or logged.
//
// Pointer fields distinguish "prefer not to say" from a real answer:
// a nil MonthlyIncome is unknown income, not zero; a nil HasChildren means
// the question was never answered. Situations follows the same convention
// at the slice level (nil = no situation data, empty = none reported).
type UserProfile struct {
	HouseholdSize    int              `json:"householdSize"`
	MonthlyIncome    *decimal.Decimal `json:"monthlyIncome,omitempty"`
	MonthlyRent      *decimal.Decimal `json:"monthlyRent,omitempty"`
	MonthlyUtilities *decimal.Decimal `json:"monthlyUtilities,omitempty"`

	HasChildren *bool `json:"hasChildren,omitempty"`
	HasSenior   *bool `json:"hasSenior,omitempty"`
	HasDisabled *bool `json:"hasDisabled,omitempty"`
	IsVeteran   *bool `json:"isVeteran,omitempty"`
	IsPregnant  *bool `json:"isPregnant,omitempty"`

	County string `json:"county,omitempty"`
	State  string `json:"state,omitempty"`

	Needs      []Category `json:"needs,omitempty"`
	Situations []string   `json:"situations,omitempty"`
}

// NeedsCategory reports whether the user asked for help in a category.
func (p *UserProfile) NeedsCategory(c Category) bool {
	for _, n := range p.Needs {
		if n == c {
			return true
		}
	}
	return false
}

// HasSituation reports whether the user declared a crisis situation.
func (p *UserProfile) HasSituation(s string) bool {
	for _, v := range p.Situations {
		if v == s {
			return true
		}
	}
	return false
}
