// internal/models/match.go
package models

import "time"

// CategoryBreakdown is the weighted contribution of one scoring category.
type CategoryBreakdown struct {
	Weight       float64 `json:"weight"`
	Satisfaction float64 `json:"satisfaction"`
	Contribution float64 `json:"contribution"`
	Evaluated    bool    `json:"evaluated"`
}

// MatchResult is the derived outcome of scoring one program for one profile.
type MatchResult struct {
	ProgramID   string                       `json:"programId"`
	ProgramName string                       `json:"programName"`
	Category    Category                     `json:"category"`
	Score       float64                      `json:"score"`
	Confidence  float64                      `json:"confidenceScore"`
	IsEmergency bool                         `json:"isEmergency"`
	Breakdown   map[string]CategoryBreakdown `json:"breakdown"`
	Reasons     []string                     `json:"reasons,omitempty"`
	Estimate    *BenefitEstimate             `json:"estimate,omitempty"`
}

// BenefitEstimate is the uniform output of every benefit calculator.
// Amounts are strings of fixed-point decimals so JSON round-trips exactly.
type BenefitEstimate struct {
	Family           string            `json:"family"`
	Eligible         bool              `json:"eligible"`
	EstimatedMonthly string            `json:"estimatedMonthly,omitempty"`
	MaximumPossible  string            `json:"maximumPossible,omitempty"`
	Reason           string            `json:"reason,omitempty"`
	Details          map[string]string `json:"details,omitempty"`
	Disclaimer       string            `json:"disclaimer"`
}

// SkippedProgram records a program excluded for malformed catalog data.
// One bad program never aborts the batch.
type SkippedProgram struct {
	ProgramID   string `json:"programId"`
	ProgramName string `json:"programName"`
	Reason      string `json:"reason"`
}

// MatchOutput is the full response for one matching request.
type MatchOutput struct {
	RequestID string           `json:"requestId"`
	Results   []MatchResult    `json:"results"`
	Skipped   []SkippedProgram `json:"skipped,omitempty"`
}

// Snapshot is the immutable catalog view one matching request runs over.
// FPL tables are keyed by two-letter state code.
type Snapshot struct {
	Programs []Program            `json:"programs"`
	FPL      map[string]*FPLTable `json:"fpl"`
	LoadedAt time.Time            `json:"loadedAt"`
}

// FPLForState returns the state's FPL table, falling back to fallbackState.
func (s *Snapshot) FPLForState(state, fallbackState string) *FPLTable {
	if t, ok := s.FPL[state]; ok {
		return t
	}
	return s.FPL[fallbackState]
}
