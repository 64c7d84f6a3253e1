// internal/matcher/criterion_test.go
package matcher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-assist/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func incomeCriterion(raw string) models.EligibilityCriterion {
	return models.EligibilityCriterion{
		ID:    "c-income",
		Type:  models.CriterionIncome,
		Name:  "income limit",
		Value: json.RawMessage(raw),
	}
}

// Income satisfaction uses a stored $2,000 ceiling so the near-miss band
// edges are exact: the band ends at $2,200.
func TestEvaluateIncomeBand(t *testing.T) {
	m := newTestMatcher(t)
	asOf := time.Now()

	p := models.Program{
		ID: "p1",
		IncomeLimits: []models.IncomeLimit{
			{
				HouseholdSize: 1,
				MonthlyLimit:  dec(2000),
				EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	snap := testSnapshot(p)

	tests := []struct {
		name     string
		income   *decimal.Decimal
		expected float64
	}{
		{name: "well under the ceiling", income: decPtr(1200), expected: 1.0},
		{name: "exactly at the ceiling", income: decPtr(2000), expected: 1.0},
		{name: "five percent over", income: decPtr(2100), expected: 0.5},
		{name: "at the band edge", income: decPtr(2200), expected: 0.5},
		{name: "just past the band", income: decPtr(2220), expected: 0.0},
		{name: "far over", income: decPtr(5000), expected: 0.0},
		{name: "undisclosed income", income: nil, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &models.UserProfile{HouseholdSize: 1, MonthlyIncome: tt.income}
			sat, err := m.evaluateCriterion(incomeCriterion(`{}`), &p, profile, snap, asOf)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
		})
	}
}

func TestEvaluateIncomeCriterionLevelPercentageOverrides(t *testing.T) {
	m := newTestMatcher(t)

	// Program-level 400% would admit this income; the criterion's 100%
	// ceiling of $1,255 does not.
	p := models.Program{ID: "p1", FPLPercentage: intPtr(400)}
	snap := testSnapshot(p)
	profile := &models.UserProfile{HouseholdSize: 1, MonthlyIncome: decPtr(2000), State: "FL"}

	sat, err := m.evaluateCriterion(incomeCriterion(`{"fpl_percentage": 100}`), &p, profile, snap, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, sat)
}

func TestEvaluateIncomeNoRequirement(t *testing.T) {
	m := newTestMatcher(t)

	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)
	profile := &models.UserProfile{HouseholdSize: 1, MonthlyIncome: decPtr(9000)}

	sat, err := m.evaluateCriterion(incomeCriterion(`{}`), &p, profile, snap, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1.0, sat)
}

func TestEvaluateIncomeMalformedValue(t *testing.T) {
	m := newTestMatcher(t)

	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)
	profile := &models.UserProfile{HouseholdSize: 1}

	// 800% is outside the schema's allowed range.
	_, err := m.evaluateCriterion(incomeCriterion(`{"fpl_percentage": 800}`), &p, profile, snap, time.Now())
	assert.Error(t, err)
}

func TestEvaluateHousehold(t *testing.T) {
	m := newTestMatcher(t)
	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)

	criterion := func(raw string) models.EligibilityCriterion {
		return models.EligibilityCriterion{
			ID:    "c-hh",
			Type:  models.CriterionHousehold,
			Name:  "household",
			Value: json.RawMessage(raw),
		}
	}

	tests := []struct {
		name     string
		raw      string
		profile  models.UserProfile
		expected float64
	}{
		{
			name:     "children required and present",
			raw:      `{"has_children": true}`,
			profile:  models.UserProfile{HouseholdSize: 3, HasChildren: boolPtr(true)},
			expected: 1.0,
		},
		{
			name:     "children required and absent",
			raw:      `{"has_children": true}`,
			profile:  models.UserProfile{HouseholdSize: 1, HasChildren: boolPtr(false)},
			expected: 0.0,
		},
		{
			name:     "children unknown",
			raw:      `{"has_children": true}`,
			profile:  models.UserProfile{HouseholdSize: 3},
			expected: 0.5,
		},
		{
			name:     "size inside the range",
			raw:      `{"min_size": 2, "max_size": 6}`,
			profile:  models.UserProfile{HouseholdSize: 4},
			expected: 1.0,
		},
		{
			name:     "size below the minimum",
			raw:      `{"min_size": 2}`,
			profile:  models.UserProfile{HouseholdSize: 1},
			expected: 0.0,
		},
		{
			name:     "size above the maximum",
			raw:      `{"max_size": 4}`,
			profile:  models.UserProfile{HouseholdSize: 6},
			expected: 0.0,
		},
		{
			name:     "size miss outranks unknown children",
			raw:      `{"has_children": true, "min_size": 3}`,
			profile:  models.UserProfile{HouseholdSize: 2},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sat, err := m.evaluateCriterion(criterion(tt.raw), &p, &tt.profile, snap, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
		})
	}
}

func TestEvaluateCategorical(t *testing.T) {
	m := newTestMatcher(t)
	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)

	criterion := func(raw string) models.EligibilityCriterion {
		return models.EligibilityCriterion{
			ID:    "c-cat",
			Type:  models.CriterionCategorical,
			Name:  "status",
			Value: json.RawMessage(raw),
		}
	}

	tests := []struct {
		name     string
		raw      string
		profile  models.UserProfile
		expected float64
		wantErr  bool
	}{
		{
			name:     "veteran confirmed",
			raw:      `{"status": "veteran"}`,
			profile:  models.UserProfile{HouseholdSize: 1, IsVeteran: boolPtr(true)},
			expected: 1.0,
		},
		{
			name:     "veteran denied",
			raw:      `{"status": "veteran"}`,
			profile:  models.UserProfile{HouseholdSize: 1, IsVeteran: boolPtr(false)},
			expected: 0.0,
		},
		{
			name:     "veteran unanswered",
			raw:      `{"status": "veteran"}`,
			profile:  models.UserProfile{HouseholdSize: 1},
			expected: 0.5,
		},
		{
			name:     "age floor of sixty reads as elderly",
			raw:      `{"min_age": 60}`,
			profile:  models.UserProfile{HouseholdSize: 1, HasSenior: boolPtr(true)},
			expected: 1.0,
		},
		{
			name:     "disabled confirmed",
			raw:      `{"status": "disabled"}`,
			profile:  models.UserProfile{HouseholdSize: 1, HasDisabled: boolPtr(true)},
			expected: 1.0,
		},
		{
			name:     "pregnant unanswered",
			raw:      `{"status": "pregnant"}`,
			profile:  models.UserProfile{HouseholdSize: 1},
			expected: 0.5,
		},
		{
			name:    "age floor below sixty has no status",
			raw:     `{"min_age": 30}`,
			profile: models.UserProfile{HouseholdSize: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sat, err := m.evaluateCriterion(criterion(tt.raw), &p, &tt.profile, snap, time.Now())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
		})
	}
}

func TestEvaluateGeographic(t *testing.T) {
	m := newTestMatcher(t)
	snap := testSnapshot()

	criterion := models.EligibilityCriterion{
		ID:    "c-geo",
		Type:  models.CriterionGeographic,
		Name:  "service area",
		Value: json.RawMessage(`{}`),
	}

	tests := []struct {
		name     string
		program  models.Program
		profile  models.UserProfile
		expected float64
	}{
		{
			name:     "empty scope serves everywhere",
			program:  models.Program{ID: "p1"},
			profile:  models.UserProfile{HouseholdSize: 1, County: "Orange", State: "FL"},
			expected: 1.0,
		},
		{
			name:     "county match is case insensitive",
			program:  models.Program{ID: "p1", ServesCounties: []string{"ORANGE", "Osceola"}},
			profile:  models.UserProfile{HouseholdSize: 1, County: "orange"},
			expected: 1.0,
		},
		{
			name:     "county mismatch",
			program:  models.Program{ID: "p1", ServesCounties: []string{"Osceola"}},
			profile:  models.UserProfile{HouseholdSize: 1, County: "Orange"},
			expected: 0.0,
		},
		{
			name:     "state mismatch",
			program:  models.Program{ID: "p1", ServesStates: []string{"FL"}},
			profile:  models.UserProfile{HouseholdSize: 1, State: "GA"},
			expected: 0.0,
		},
		{
			name:     "scoped program with no profile location",
			program:  models.Program{ID: "p1", ServesCounties: []string{"Orange"}},
			profile:  models.UserProfile{HouseholdSize: 1},
			expected: 0.5,
		},
		{
			name:     "state matches but county unknown",
			program:  models.Program{ID: "p1", ServesStates: []string{"FL"}, ServesCounties: []string{"Orange"}},
			profile:  models.UserProfile{HouseholdSize: 1, State: "FL"},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sat, err := m.evaluateCriterion(criterion, &tt.program, &tt.profile, snap, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
		})
	}
}

func TestEvaluateSituational(t *testing.T) {
	m := newTestMatcher(t)
	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)

	criterion := models.EligibilityCriterion{
		ID:    "c-sit",
		Type:  models.CriterionSituational,
		Name:  "crisis",
		Value: json.RawMessage(`{"situations": ["eviction", "homeless"]}`),
	}

	tests := []struct {
		name       string
		situations []string
		expected   float64
	}{
		{name: "declared matching situation", situations: []string{"eviction"}, expected: 1.0},
		{name: "declared other situation", situations: []string{"job_loss"}, expected: 0.0},
		{name: "affirmatively none", situations: []string{}, expected: 0.0},
		{name: "no situation data", situations: nil, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &models.UserProfile{HouseholdSize: 1, Situations: tt.situations}
			sat, err := m.evaluateCriterion(criterion, &p, profile, snap, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
		})
	}
}

func TestEvaluateUnknownCriterionType(t *testing.T) {
	m := newTestMatcher(t)
	p := models.Program{ID: "p1"}
	snap := testSnapshot(p)

	c := models.EligibilityCriterion{
		ID:    "c-x",
		Type:  "astrological",
		Name:  "sign",
		Value: json.RawMessage(`{}`),
	}
	_, err := m.evaluateCriterion(c, &p, &models.UserProfile{HouseholdSize: 1}, snap, time.Now())
	assert.Error(t, err)
}
