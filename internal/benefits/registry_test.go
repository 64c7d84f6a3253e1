// internal/benefits/registry_test.go
package benefits

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "community-assist/internal/common/errors"
)

func TestRegistryDispatch(t *testing.T) {
	reg := Default()

	assert.True(t, reg.Has(FamilySNAP))
	assert.False(t, reg.Has("liheap"))

	est, err := reg.Estimate(FamilySNAP, Input{
		HouseholdSize: 2,
		GrossIncome:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, FamilySNAP, est.Family)
	assert.True(t, est.Eligible)
}

func TestRegistryUnknownFamily(t *testing.T) {
	reg := Default()

	est, err := reg.Estimate("liheap", Input{
		HouseholdSize: 1,
		GrossIncome:   decimal.NewFromInt(500),
	})
	require.Error(t, err)
	assert.Nil(t, est)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeUnknownBenefitFamily, stdErr.Code)
	assert.Contains(t, stdErr.Details, "liheap")
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr string
	}{
		{
			name:  "valid input",
			input: Input{HouseholdSize: 1, GrossIncome: decimal.NewFromInt(100)},
		},
		{
			name:    "zero household size",
			input:   Input{HouseholdSize: 0, GrossIncome: decimal.NewFromInt(100)},
			wantErr: "household size",
		},
		{
			name:    "negative income",
			input:   Input{HouseholdSize: 1, GrossIncome: decimal.NewFromInt(-1)},
			wantErr: "gross income",
		},
		{
			name:    "negative rent",
			input:   Input{HouseholdSize: 1, Rent: decimal.NewFromInt(-50)},
			wantErr: "shelter costs",
		},
		{
			name:    "negative utilities",
			input:   Input{HouseholdSize: 1, Utilities: decimal.NewFromInt(-10)},
			wantErr: "shelter costs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, apperrors.ErrCodeEstimateInputInvalid, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.wantErr)
		})
	}
}

func TestRegistryValidatesBeforeCalculating(t *testing.T) {
	reg := Default()

	est, err := reg.Estimate(FamilySNAP, Input{
		HouseholdSize: 0,
		GrossIncome:   decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Nil(t, est)
}
