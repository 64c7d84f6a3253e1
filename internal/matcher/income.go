// internal/matcher/income.go
package matcher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// resolveIncomeLimit returns the monthly income ceiling that applies to a
// program for a household size, or nil when the program has no income
// requirement. A nil ceiling means "known not required"; callers must not
// read it as "income unknown".
//
// Resolution order: an active stored limit row for the exact household
// size wins; otherwise a program-level FPL percentage is applied to the
// state's poverty-line table (falling back to the configured default
// state), extrapolating beyond the tabulated maximum size. All arithmetic
// is fixed-point decimal, rounded half-up to cents.
func (m *Matcher) resolveIncomeLimit(p *models.Program, snap *models.Snapshot, state string, householdSize int, asOf time.Time) (*decimal.Decimal, error) {
	if householdSize < 1 {
		return nil, fmt.Errorf("household size must be positive, got %d", householdSize)
	}

	// Invariant: at most one active row per (program, size). Pick the most
	// recently effective one so a stale duplicate cannot shadow a newer row.
	var row *models.IncomeLimit
	for i := range p.IncomeLimits {
		l := &p.IncomeLimits[i]
		if l.HouseholdSize < 1 {
			return nil, apperrors.NewLimitRowInvalidError(
				fmt.Sprintf("row has non-positive household size %d", l.HouseholdSize))
		}
		if l.HouseholdSize != householdSize || !l.ActiveAt(asOf) {
			continue
		}
		if row == nil || l.EffectiveDate.After(row.EffectiveDate) {
			row = l
		}
	}
	if row != nil {
		limit := row.MonthlyLimit
		return &limit, nil
	}

	if p.FPLPercentage != nil {
		table := snap.FPLForState(state, m.cfg.DefaultState)
		if table == nil {
			return nil, fmt.Errorf("no FPL table available for state %q or default %q", state, m.cfg.DefaultState)
		}
		monthly, ok := table.MonthlyAmount(householdSize)
		if !ok {
			return nil, fmt.Errorf("FPL table for %q cannot resolve household size %d", table.State, householdSize)
		}
		pct := decimal.NewFromInt(int64(*p.FPLPercentage))
		limit := monthly.Mul(pct).Div(oneHundred).Round(2)
		return &limit, nil
	}

	// No limit rows and no FPL percentage: the program has no income
	// requirement at all.
	return nil, nil
}
