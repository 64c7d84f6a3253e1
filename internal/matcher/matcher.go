// Package matcher implements the eligibility matching engine: a pure
// function of (profile, catalog snapshot) producing ranked, scored program
// matches with benefit estimates. It holds no state across requests and
// never persists or logs user profile contents.
package matcher

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"community-assist/internal/benefits"
	"community-assist/internal/common/config"
	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/common/logger"
	"community-assist/internal/common/metrics"
	"community-assist/internal/models"
)

// Matcher scores catalog programs against a user profile.
type Matcher struct {
	cfg      config.MatcherConfig
	registry *benefits.Registry
	logger   logger.Logger
}

// New builds a Matcher. The registry may be nil when no benefit estimates
// are wanted.
func New(cfg config.MatcherConfig, registry *benefits.Registry, log logger.Logger) *Matcher {
	return &Matcher{
		cfg:      cfg,
		registry: registry,
		logger:   log.WithFields(map[string]interface{}{"component": "matcher"}),
	}
}

// Match scores every program in the snapshot against the profile and
// returns results sorted by score descending, then confidence descending,
// then program id ascending. Programs below the configured score floor and
// hard-excluded programs are omitted; programs with malformed catalog data
// are skipped with a recorded reason and never abort the batch.
//
// The snapshot is an immutable read-only view, so programs are scored
// concurrently with no synchronization beyond the final collection.
func (m *Matcher) Match(profile *models.UserProfile, snap *models.Snapshot, asOf time.Time) (*models.MatchOutput, error) {
	start := time.Now()

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()

	results := make([]*models.MatchResult, len(snap.Programs))
	skips := make([]*models.SkippedProgram, len(snap.Programs))

	var wg sync.WaitGroup
	for i := range snap.Programs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := &snap.Programs[i]
			res, err := m.scoreProgram(p, profile, snap, asOf)
			if err != nil {
				if errors.Is(err, errHardExcluded) {
					metrics.ProgramsExcluded.WithLabelValues("hard_gate").Inc()
					return
				}
				metrics.ProgramsExcluded.WithLabelValues("malformed").Inc()
				skips[i] = &models.SkippedProgram{
					ProgramID:   p.ID,
					ProgramName: p.Name,
					Reason:      err.Error(),
				}
				return
			}
			metrics.ProgramsScored.WithLabelValues(string(p.Category)).Inc()
			results[i] = res
		}(i)
	}
	wg.Wait()

	out := &models.MatchOutput{RequestID: requestID}
	for _, s := range skips {
		if s != nil {
			out.Skipped = append(out.Skipped, *s)
		}
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Score <= m.cfg.MinScore {
			metrics.ProgramsExcluded.WithLabelValues("below_threshold").Inc()
			continue
		}
		out.Results = append(out.Results, *r)
	}

	sort.SliceStable(out.Results, func(i, j int) bool {
		a, b := out.Results[i], out.Results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.ProgramID < b.ProgramID
	})

	m.attachEstimates(out, profile, snap)

	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	m.logger.Info("match completed", map[string]interface{}{
		"requestId": requestID,
		"programs":  len(snap.Programs),
		"matched":   len(out.Results),
		"skipped":   len(out.Skipped),
	})

	return out, nil
}

// attachEstimates runs the registered benefit calculator for every matched
// benefit-bearing program. No calculator or no reported income means no
// estimate, which is different from a zero benefit.
func (m *Matcher) attachEstimates(out *models.MatchOutput, profile *models.UserProfile, snap *models.Snapshot) {
	if m.registry == nil || profile.MonthlyIncome == nil {
		return
	}

	byID := make(map[string]*models.Program, len(snap.Programs))
	for i := range snap.Programs {
		byID[snap.Programs[i].ID] = &snap.Programs[i]
	}

	in := benefits.Input{
		HouseholdSize:     profile.HouseholdSize,
		GrossIncome:       *profile.MonthlyIncome,
		ElderlyOrDisabled: boolValue(profile.HasSenior) || boolValue(profile.HasDisabled),
	}
	if profile.MonthlyRent != nil {
		in.Rent = *profile.MonthlyRent
	}
	if profile.MonthlyUtilities != nil {
		in.Utilities = *profile.MonthlyUtilities
	}

	for i := range out.Results {
		p := byID[out.Results[i].ProgramID]
		if p == nil || p.BenefitFamily == "" || !m.registry.Has(p.BenefitFamily) {
			continue
		}
		est, err := m.registry.Estimate(p.BenefitFamily, in)
		if err != nil {
			m.logger.Warn("benefit estimate failed", map[string]interface{}{
				"programId": p.ID,
				"family":    p.BenefitFamily,
				"error":     err.Error(),
			})
			continue
		}
		metrics.EstimatesComputed.WithLabelValues(p.BenefitFamily, fmt.Sprintf("%t", est.Eligible)).Inc()
		out.Results[i].Estimate = est
	}
}

// validateProfile rejects invalid user input before matching begins.
// Invalid input is surfaced, never silently clamped.
func validateProfile(p *models.UserProfile) error {
	if p == nil {
		return apperrors.NewProfileInvalidError("profile is required")
	}
	if p.HouseholdSize < 1 {
		return apperrors.NewProfileInvalidError(fmt.Sprintf("household size must be at least 1, got %d", p.HouseholdSize))
	}
	if p.MonthlyIncome != nil && p.MonthlyIncome.IsNegative() {
		return apperrors.NewProfileInvalidError("monthly income cannot be negative")
	}
	if p.MonthlyRent != nil && p.MonthlyRent.IsNegative() {
		return apperrors.NewProfileInvalidError("monthly rent cannot be negative")
	}
	if p.MonthlyUtilities != nil && p.MonthlyUtilities.IsNegative() {
		return apperrors.NewProfileInvalidError("monthly utilities cannot be negative")
	}
	if p.State != "" && len(p.State) != 2 {
		return apperrors.NewProfileInvalidError(fmt.Sprintf("state must be a two-letter code, got %q", p.State))
	}
	for _, n := range p.Needs {
		if !models.IsValidCategory(string(n)) {
			return apperrors.NewProfileInvalidError(fmt.Sprintf("unknown need category %q", n))
		}
	}
	return nil
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
