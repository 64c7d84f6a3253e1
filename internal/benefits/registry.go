// internal/benefits/registry.go
package benefits

import (
	"github.com/shopspring/decimal"

	"community-assist/internal/common/errors"
	"community-assist/internal/models"
)

// Disclaimer is attached to every estimate. An estimate is never a
// determination; only the administering agency decides actual benefits.
const Disclaimer = "This is an estimate only. Actual benefits are determined by the administering agency."

// Input carries the household figures a calculator works from.
// All monetary amounts are monthly.
type Input struct {
	HouseholdSize     int
	GrossIncome       decimal.Decimal
	Rent              decimal.Decimal
	Utilities         decimal.Decimal
	ElderlyOrDisabled bool
}

// Validate rejects structurally invalid input before any arithmetic runs.
func (in Input) Validate() error {
	if in.HouseholdSize < 1 {
		return errors.NewEstimateInputInvalidError("household size must be at least 1")
	}
	if in.GrossIncome.IsNegative() {
		return errors.NewEstimateInputInvalidError("gross income cannot be negative")
	}
	if in.Rent.IsNegative() || in.Utilities.IsNegative() {
		return errors.NewEstimateInputInvalidError("shelter costs cannot be negative")
	}
	return nil
}

// Calculator estimates benefits for one program family. Implementations
// must be pure: identical input yields identical output.
type Calculator interface {
	Family() string
	Estimate(in Input) (*models.BenefitEstimate, error)
}

// Registry maps a benefit family identifier to its calculator. Adding a
// family means registering a new Calculator, nothing in the scorer changes.
type Registry struct {
	calculators map[string]Calculator
}

// NewRegistry builds a registry over the given calculators.
func NewRegistry(calcs ...Calculator) *Registry {
	r := &Registry{calculators: make(map[string]Calculator, len(calcs))}
	for _, c := range calcs {
		r.calculators[c.Family()] = c
	}
	return r
}

// Default returns the registry with every built-in calculator registered.
func Default() *Registry {
	return NewRegistry(NewSNAPCalculator())
}

// Has reports whether a calculator is registered for the family.
// No calculator means "no estimate available", not a zero benefit.
func (r *Registry) Has(family string) bool {
	_, ok := r.calculators[family]
	return ok
}

// Estimate dispatches to the family's calculator.
func (r *Registry) Estimate(family string, in Input) (*models.BenefitEstimate, error) {
	calc, ok := r.calculators[family]
	if !ok {
		return nil, errors.NewUnknownBenefitFamilyError(family)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return calc.Estimate(in)
}
