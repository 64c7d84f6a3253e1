// internal/benefits/snap.go
package benefits

import (
	"github.com/shopspring/decimal"

	"community-assist/internal/models"
)

// FamilySNAP identifies the SNAP-style reference calculator.
const FamilySNAP = "snap"

// 2024 figures for the 48 contiguous states. Gross income limits are 130%
// of FPL; the shelter cap applies only to non-elderly/non-disabled
// households.
var (
	snapIncomeLimits = map[int]int64{
		1: 1580, 2: 2137, 3: 2694, 4: 3250,
		5: 3807, 6: 4364, 7: 4921, 8: 5478,
	}
	snapMaxBenefits = map[int]int64{
		1: 234, 2: 430, 3: 616, 4: 782,
		5: 929, 6: 1114, 7: 1232, 8: 1408,
	}
	snapStandardDeductions = map[int]int64{
		1: 198, 2: 198, 3: 198, 4: 208,
		5: 244, 6: 279, 7: 314, 8: 349,
	}
	snapMaxTabulatedSize = 8
	snapShelterCap       = decimal.NewFromInt(624)
	snapShelterShare     = decimal.NewFromFloat(0.5)
	snapBenefitReduction = decimal.NewFromFloat(0.3)
)

// SNAPCalculator implements the SNAP-style reference formula.
type SNAPCalculator struct{}

// NewSNAPCalculator returns the SNAP reference calculator.
func NewSNAPCalculator() *SNAPCalculator {
	return &SNAPCalculator{}
}

func (c *SNAPCalculator) Family() string { return FamilySNAP }

// Estimate applies the simplified SNAP arithmetic: gross test at the
// 130%-FPL ceiling, standard deduction, shelter deduction, then the
// 30%-of-net reduction from the size maximum. Pure and deterministic.
func (c *SNAPCalculator) Estimate(in Input) (*models.BenefitEstimate, error) {
	size := in.HouseholdSize
	if size > snapMaxTabulatedSize {
		size = snapMaxTabulatedSize
	}

	limit := decimal.NewFromInt(snapIncomeLimits[size])
	maxBenefit := decimal.NewFromInt(snapMaxBenefits[size])
	standardDeduction := decimal.NewFromInt(snapStandardDeductions[size])

	if in.GrossIncome.GreaterThan(limit) {
		return &models.BenefitEstimate{
			Family:     FamilySNAP,
			Eligible:   false,
			Reason:     "Income exceeds 130% of Federal Poverty Level",
			Details:    map[string]string{"income_limit": limit.StringFixed(2)},
			Disclaimer: Disclaimer,
		}, nil
	}

	netIncome := in.GrossIncome.Sub(standardDeduction)

	shelterCosts := in.Rent.Add(in.Utilities)
	shelterDeduction := shelterCosts.Sub(netIncome.Mul(snapShelterShare))
	if shelterDeduction.IsNegative() {
		shelterDeduction = decimal.Zero
	}
	if !in.ElderlyOrDisabled && shelterDeduction.GreaterThan(snapShelterCap) {
		shelterDeduction = snapShelterCap
	}

	netIncome = netIncome.Sub(shelterDeduction)
	if netIncome.IsNegative() {
		netIncome = decimal.Zero
	}

	benefit := maxBenefit.Sub(netIncome.Mul(snapBenefitReduction))
	if benefit.IsNegative() {
		benefit = decimal.Zero
	}
	if benefit.GreaterThan(maxBenefit) {
		benefit = maxBenefit
	}
	benefit = benefit.Round(0)

	return &models.BenefitEstimate{
		Family:           FamilySNAP,
		Eligible:         true,
		EstimatedMonthly: benefit.StringFixed(0),
		MaximumPossible:  maxBenefit.StringFixed(0),
		Details: map[string]string{
			"gross_income":       in.GrossIncome.StringFixed(2),
			"standard_deduction": standardDeduction.StringFixed(2),
			"shelter_deduction":  shelterDeduction.StringFixed(2),
			"net_income":         netIncome.StringFixed(2),
		},
		Disclaimer: Disclaimer,
	}, nil
}
