// internal/models/fpl.go
package models

import "github.com/shopspring/decimal"

// FPLEntry is one Federal Poverty Level reference row.
type FPLEntry struct {
	Year          int             `json:"year"`
	State         string          `json:"state"`
	HouseholdSize int             `json:"householdSize"`
	AnnualAmount  decimal.Decimal `json:"annualAmount"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
}

// FPLTable holds the poverty-line rows for one (year, state) pair,
// keyed by household size.
type FPLTable struct {
	Year    int              `json:"year"`
	State   string           `json:"state"`
	Entries map[int]FPLEntry `json:"entries"`
}

// MaxTabulatedSize returns the largest household size present in the table,
// or 0 for an empty table.
func (t *FPLTable) MaxTabulatedSize() int {
	max := 0
	for size := range t.Entries {
		if size > max {
			max = size
		}
	}
	return max
}

// AnnualAmount returns the annual poverty-line amount for a household size.
// Sizes beyond the tabulated maximum extrapolate using the table's own
// largest-to-previous-size delta per additional member, per the federal
// methodology. Returns false only when the table cannot support the lookup.
func (t *FPLTable) AnnualAmount(householdSize int) (decimal.Decimal, bool) {
	if householdSize < 1 {
		return decimal.Zero, false
	}
	if e, ok := t.Entries[householdSize]; ok {
		return e.AnnualAmount, true
	}

	max := t.MaxTabulatedSize()
	if max == 0 || householdSize < max {
		// A gap inside the tabulated range means a broken table, not a
		// household beyond it.
		return decimal.Zero, false
	}

	prev, ok := t.Entries[max-1]
	if !ok {
		return decimal.Zero, false
	}
	top := t.Entries[max]
	increment := top.AnnualAmount.Sub(prev.AnnualAmount)
	extra := decimal.NewFromInt(int64(householdSize - max))
	return top.AnnualAmount.Add(increment.Mul(extra)), true
}

// MonthlyAmount is AnnualAmount divided by 12, rounded half-up to cents.
func (t *FPLTable) MonthlyAmount(householdSize int) (decimal.Decimal, bool) {
	if e, ok := t.Entries[householdSize]; ok {
		return e.MonthlyAmount, true
	}
	annual, ok := t.AnnualAmount(householdSize)
	if !ok {
		return decimal.Zero, false
	}
	return annual.Div(decimal.NewFromInt(12)).Round(2), true
}
