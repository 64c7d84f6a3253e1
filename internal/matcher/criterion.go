// internal/matcher/criterion.go
package matcher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"community-assist/internal/common/validation"
	"community-assist/internal/models"
)

// Satisfaction degrees. Criteria never resolve to a hard boolean; a
// required criterion at exactly satisfied=0 is the hard-exclusion signal.
const (
	satisfied   = 1.0
	unsatisfied = 0.0
)

// Structured criterion values, one shape per criterion type. The JSON
// schemas in internal/common/validation gate these before decoding.
type incomeValue struct {
	FPLPercentage *int `json:"fpl_percentage"`
}

type householdValue struct {
	HasChildren *bool `json:"has_children"`
	MinSize     *int  `json:"min_size"`
	MaxSize     *int  `json:"max_size"`
}

type categoricalValue struct {
	Status string `json:"status"`
	MinAge *int   `json:"min_age"`
}

type situationalValue struct {
	Situations []string `json:"situations"`
}

// evaluateCriterion returns the satisfaction degree in [0,1] of one
// criterion for the profile. A returned error means the criterion is
// malformed catalog data; the scorer excludes just that program.
func (m *Matcher) evaluateCriterion(c models.EligibilityCriterion, p *models.Program, profile *models.UserProfile, snap *models.Snapshot, asOf time.Time) (float64, error) {
	if err := validation.ValidateCriterion(c); err != nil {
		return 0, err
	}

	switch c.Type {
	case models.CriterionIncome:
		return m.evaluateIncome(c, p, profile, snap, asOf)
	case models.CriterionHousehold:
		return m.evaluateHousehold(c, profile)
	case models.CriterionCategorical:
		return m.evaluateCategorical(c, profile)
	case models.CriterionGeographic:
		return m.evaluateGeographic(p, profile)
	case models.CriterionSituational:
		return m.evaluateSituational(c, profile)
	default:
		return 0, fmt.Errorf("unknown criterion type %q", c.Type)
	}
}

func (m *Matcher) evaluateIncome(c models.EligibilityCriterion, p *models.Program, profile *models.UserProfile, snap *models.Snapshot, asOf time.Time) (float64, error) {
	var v incomeValue
	if len(c.Value) > 0 {
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return 0, fmt.Errorf("decode income criterion: %w", err)
		}
	}

	// A criterion-level FPL percentage overrides the program-level one.
	prog := *p
	if v.FPLPercentage != nil {
		prog.FPLPercentage = v.FPLPercentage
	}

	ceiling, err := m.resolveIncomeLimit(&prog, snap, profile.State, profile.HouseholdSize, asOf)
	if err != nil {
		return 0, err
	}
	if ceiling == nil {
		// No income requirement: absence of a rule is never a penalty.
		return satisfied, nil
	}

	if profile.MonthlyIncome == nil {
		// "Prefer not to say" is neutral, not zero income.
		return m.cfg.NeutralSatisfaction, nil
	}

	income := *profile.MonthlyIncome
	if income.LessThanOrEqual(*ceiling) {
		return satisfied, nil
	}
	tolerance := ceiling.Mul(decimal.NewFromFloat(m.cfg.NearMissTolerance))
	if income.LessThanOrEqual(tolerance) {
		// Near-miss band: self-reported income is imprecise.
		return m.cfg.NearMissSatisfaction, nil
	}
	return unsatisfied, nil
}

func (m *Matcher) evaluateHousehold(c models.EligibilityCriterion, profile *models.UserProfile) (float64, error) {
	var v householdValue
	if len(c.Value) > 0 {
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return 0, fmt.Errorf("decode household criterion: %w", err)
		}
	}

	unknown := false

	if v.HasChildren != nil {
		if profile.HasChildren == nil {
			unknown = true
		} else if *profile.HasChildren != *v.HasChildren {
			return unsatisfied, nil
		}
	}
	if v.MinSize != nil && profile.HouseholdSize < *v.MinSize {
		return unsatisfied, nil
	}
	if v.MaxSize != nil && profile.HouseholdSize > *v.MaxSize {
		return unsatisfied, nil
	}

	if unknown {
		return m.cfg.NeutralSatisfaction, nil
	}
	return satisfied, nil
}

func (m *Matcher) evaluateCategorical(c models.EligibilityCriterion, profile *models.UserProfile) (float64, error) {
	var v categoricalValue
	if len(c.Value) > 0 {
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return 0, fmt.Errorf("decode categorical criterion: %w", err)
		}
	}

	status := v.Status
	if status == "" {
		// Age floors at 60+ are the senior programs' phrasing of "elderly".
		if v.MinAge != nil && *v.MinAge >= 60 {
			status = "elderly"
		} else {
			return 0, fmt.Errorf("categorical criterion %q has no status", c.Name)
		}
	}

	var flag *bool
	switch status {
	case "elderly":
		flag = profile.HasSenior
	case "veteran":
		flag = profile.IsVeteran
	case "disabled":
		flag = profile.HasDisabled
	case "pregnant":
		flag = profile.IsPregnant
	default:
		return 0, fmt.Errorf("categorical criterion %q has unknown status %q", c.Name, status)
	}

	if flag == nil {
		// The question was never answered; a binary legal status gets no
		// partial credit, but an unanswered one stays neutral.
		return m.cfg.NeutralSatisfaction, nil
	}
	if *flag {
		return satisfied, nil
	}
	return unsatisfied, nil
}

// evaluateGeographic checks the profile's county/state against the
// program's service scope. An empty scope serves everywhere: programs opt
// out of areas, they are not excluded by omission.
func (m *Matcher) evaluateGeographic(p *models.Program, profile *models.UserProfile) (float64, error) {
	if len(p.ServesCounties) == 0 && len(p.ServesStates) == 0 {
		return satisfied, nil
	}
	if profile.County == "" && profile.State == "" {
		return m.cfg.NeutralSatisfaction, nil
	}

	if len(p.ServesStates) > 0 {
		if profile.State == "" {
			return m.cfg.NeutralSatisfaction, nil
		}
		if !containsFold(p.ServesStates, profile.State) {
			return unsatisfied, nil
		}
	}
	if len(p.ServesCounties) > 0 {
		if profile.County == "" {
			return m.cfg.NeutralSatisfaction, nil
		}
		if !containsFold(p.ServesCounties, profile.County) {
			return unsatisfied, nil
		}
	}
	return satisfied, nil
}

func (m *Matcher) evaluateSituational(c models.EligibilityCriterion, profile *models.UserProfile) (float64, error) {
	var v situationalValue
	if err := json.Unmarshal(c.Value, &v); err != nil {
		return 0, fmt.Errorf("decode situational criterion: %w", err)
	}

	if profile.Situations == nil {
		// No situation data at all; an empty non-nil slice means the user
		// affirmatively reported no crisis.
		return m.cfg.NeutralSatisfaction, nil
	}
	for _, s := range v.Situations {
		if profile.HasSituation(s) {
			return satisfied, nil
		}
	}
	return unsatisfied, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}
