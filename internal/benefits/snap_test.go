// internal/benefits/snap_test.go
package benefits

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestSNAPEstimate(t *testing.T) {
	calc := NewSNAPCalculator()

	tests := []struct {
		name            string
		input           Input
		expectEligible  bool
		expectedMonthly string
		expectedMax     string
		expectedReason  string
		expectedNet     string
		expectedShelter string
	}{
		{
			name: "high shelter costs still reduce to zero benefit",
			input: Input{
				HouseholdSize: 1,
				GrossIncome:   money(1400),
				Rent:          money(800),
				Utilities:     money(150),
			},
			expectEligible:  true,
			expectedMonthly: "0",
			expectedMax:     "234",
			expectedNet:     "853.00",
			expectedShelter: "349.00",
		},
		{
			name: "low income single person",
			input: Input{
				HouseholdSize: 1,
				GrossIncome:   money(800),
				Rent:          money(700),
				Utilities:     money(100),
			},
			expectEligible:  true,
			expectedMonthly: "203",
			expectedMax:     "234",
			expectedNet:     "103.00",
			expectedShelter: "499.00",
		},
		{
			name: "moderate income single person",
			input: Input{
				HouseholdSize: 1,
				GrossIncome:   money(1000),
				Rent:          money(600),
				Utilities:     money(100),
			},
			expectEligible:  true,
			expectedMonthly: "83",
			expectedMax:     "234",
			expectedNet:     "503.00",
			expectedShelter: "299.00",
		},
		{
			name: "income above 130 percent of FPL",
			input: Input{
				HouseholdSize: 2,
				GrossIncome:   money(2200),
				Rent:          money(900),
				Utilities:     money(100),
			},
			expectEligible: false,
			expectedReason: "Income exceeds 130% of Federal Poverty Level",
		},
		{
			name: "income exactly at the limit passes the gross test",
			input: Input{
				HouseholdSize: 1,
				GrossIncome:   money(1580),
				Rent:          money(0),
				Utilities:     money(0),
			},
			expectEligible:  true,
			expectedMonthly: "0",
			expectedMax:     "234",
		},
		{
			name: "zero income receives the maximum benefit",
			input: Input{
				HouseholdSize: 3,
				GrossIncome:   money(0),
				Rent:          money(500),
				Utilities:     money(100),
			},
			expectEligible:  true,
			expectedMonthly: "616",
			expectedMax:     "616",
		},
		{
			name: "households beyond size eight use the size-eight tables",
			input: Input{
				HouseholdSize: 12,
				GrossIncome:   money(3000),
				Rent:          money(1200),
				Utilities:     money(300),
			},
			expectEligible:  true,
			expectedMonthly: "665",
			expectedMax:     "1408",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := calc.Estimate(tt.input)
			require.NoError(t, err)
			require.NotNil(t, est)

			assert.Equal(t, FamilySNAP, est.Family)
			assert.Equal(t, tt.expectEligible, est.Eligible)
			assert.Equal(t, Disclaimer, est.Disclaimer)

			if !tt.expectEligible {
				assert.Equal(t, tt.expectedReason, est.Reason)
				assert.Empty(t, est.EstimatedMonthly)
				return
			}

			assert.Equal(t, tt.expectedMonthly, est.EstimatedMonthly)
			assert.Equal(t, tt.expectedMax, est.MaximumPossible)
			if tt.expectedNet != "" {
				assert.Equal(t, tt.expectedNet, est.Details["net_income"])
			}
			if tt.expectedShelter != "" {
				assert.Equal(t, tt.expectedShelter, est.Details["shelter_deduction"])
			}
		})
	}
}

func TestSNAPShelterCapSkippedForElderlyOrDisabled(t *testing.T) {
	calc := NewSNAPCalculator()

	base := Input{
		HouseholdSize: 1,
		GrossIncome:   money(1500),
		Rent:          money(1400),
		Utilities:     money(100),
	}

	capped, err := calc.Estimate(base)
	require.NoError(t, err)
	assert.Equal(t, "624.00", capped.Details["shelter_deduction"])
	assert.Equal(t, "31", capped.EstimatedMonthly)

	elderly := base
	elderly.ElderlyOrDisabled = true
	uncapped, err := calc.Estimate(elderly)
	require.NoError(t, err)
	assert.Equal(t, "849.00", uncapped.Details["shelter_deduction"])
	assert.Equal(t, "98", uncapped.EstimatedMonthly)
}

func TestSNAPEstimateIsPure(t *testing.T) {
	calc := NewSNAPCalculator()
	in := Input{
		HouseholdSize: 4,
		GrossIncome:   money(2100),
		Rent:          money(950),
		Utilities:     money(200),
	}

	first, err := calc.Estimate(in)
	require.NoError(t, err)
	second, err := calc.Estimate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
