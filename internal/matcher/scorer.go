// internal/matcher/scorer.go
package matcher

import (
	"errors"
	"fmt"
	"time"

	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/models"
)

// errHardExcluded signals that a required criterion definitely failed.
// Exclusion and a low score are distinct outcomes: an excluded program is
// omitted from results entirely, never ranked last.
var errHardExcluded = errors.New("required criterion not met")

// Scoring category names used in breakdowns and reasons.
const (
	catIncome      = "income"
	catHousehold   = "household"
	catNeed        = "need"
	catSituational = "situational"
	catGeographic  = "geographic"
)

// scoreProgram combines the program's per-category criterion results into
// one weighted score. Criteria in the same bucket are peers and average
// together; a bucket with no criteria contributes its full weight, since
// the absence of a requirement is never a penalty. Categorical criteria
// (veteran, elderly, disabled, pregnant) score in the household bucket:
// they describe who lives in the household. The need category is a direct
// program-category-vs-requested-needs comparison with no partial credit.
func (m *Matcher) scoreProgram(p *models.Program, profile *models.UserProfile, snap *models.Snapshot, asOf time.Time) (*models.MatchResult, error) {
	breakdown := make(map[string]models.CategoryBreakdown, 5)
	var reasons []string

	criterionCategories := []struct {
		name   string
		types  []models.CriterionType
		weight float64
	}{
		{catIncome, []models.CriterionType{models.CriterionIncome}, m.cfg.Weights.Income},
		{catHousehold, []models.CriterionType{models.CriterionHousehold, models.CriterionCategorical}, m.cfg.Weights.Household},
		{catSituational, []models.CriterionType{models.CriterionSituational}, m.cfg.Weights.Situational},
		{catGeographic, []models.CriterionType{models.CriterionGeographic}, m.cfg.Weights.Geographic},
	}

	score := 0.0
	for _, cat := range criterionCategories {
		var crits []models.EligibilityCriterion
		for _, ctype := range cat.types {
			crits = append(crits, p.CriteriaOfType(ctype)...)
		}
		if len(crits) == 0 {
			breakdown[cat.name] = models.CategoryBreakdown{
				Weight:       cat.weight,
				Satisfaction: satisfied,
				Contribution: cat.weight,
				Evaluated:    false,
			}
			score += cat.weight
			continue
		}

		total := 0.0
		for _, c := range crits {
			sat, err := m.evaluateCriterion(c, p, profile, snap, asOf)
			if err != nil {
				var stdErr *apperrors.StandardError
				if errors.As(err, &stdErr) {
					return nil, err
				}
				return nil, apperrors.NewCriterionMalformedError(c.Name, err.Error())
			}
			if c.Required && sat == unsatisfied {
				// A definite miss on a required criterion; "unknown" never
				// hard-excludes.
				return nil, fmt.Errorf("%w: %s", errHardExcluded, c.Name)
			}
			total += sat
		}
		avg := total / float64(len(crits))
		breakdown[cat.name] = models.CategoryBreakdown{
			Weight:       cat.weight,
			Satisfaction: avg,
			Contribution: avg * cat.weight,
			Evaluated:    true,
		}
		score += avg * cat.weight
		reasons = append(reasons, categoryReason(cat.name, avg))
	}

	needSat := unsatisfied
	if profile.NeedsCategory(p.Category) {
		needSat = satisfied
		reasons = append(reasons, fmt.Sprintf("addresses your %s need", p.Category))
	}
	breakdown[catNeed] = models.CategoryBreakdown{
		Weight:       m.cfg.Weights.Need,
		Satisfaction: needSat,
		Contribution: needSat * m.cfg.Weights.Need,
		Evaluated:    true,
	}
	score += needSat * m.cfg.Weights.Need

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	if p.IsEmergency {
		reasons = append(reasons, "emergency assistance available")
	}

	return &models.MatchResult{
		ProgramID:   p.ID,
		ProgramName: p.Name,
		Category:    p.Category,
		Score:       score,
		Confidence:  p.Confidence,
		IsEmergency: p.IsEmergency,
		Breakdown:   breakdown,
		Reasons:     reasons,
	}, nil
}

func categoryReason(category string, satisfaction float64) string {
	switch {
	case satisfaction >= satisfied:
		return fmt.Sprintf("meets the program's %s requirements", category)
	case satisfaction > unsatisfied:
		return fmt.Sprintf("partially meets the program's %s requirements", category)
	default:
		return fmt.Sprintf("does not meet the program's %s requirements", category)
	}
}
