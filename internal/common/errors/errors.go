// Package errors provides standardized error values for the matching engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Profile validation (rejected before matching starts).
	ErrCodeProfileInvalid ErrorCode = "PROFILE_INVALID"

	// Catalog data problems (exclude one program, never the batch).
	ErrCodeCriterionMalformed ErrorCode = "CRITERION_MALFORMED"
	ErrCodeLimitRowInvalid    ErrorCode = "INCOME_LIMIT_INVALID"

	// Benefit estimation.
	ErrCodeUnknownBenefitFamily ErrorCode = "UNKNOWN_BENEFIT_FAMILY"
	ErrCodeEstimateInputInvalid ErrorCode = "ESTIMATE_INPUT_INVALID"

	// Catalog snapshot loading.
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
)

// StandardError is a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewProfileInvalidError flags user input rejected by validation.
func NewProfileInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileInvalid,
		Message:   "User profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCriterionMalformedError flags a structurally invalid catalog criterion.
func NewCriterionMalformedError(criterionName, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCriterionMalformed,
		Message:   "Eligibility criterion is malformed",
		Details:   fmt.Sprintf("criterion: %s, %s", criterionName, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLimitRowInvalidError flags an unusable income limit row.
func NewLimitRowInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLimitRowInvalid,
		Message:   "Income limit row is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownBenefitFamilyError flags an estimate request for a family with
// no registered calculator.
func NewUnknownBenefitFamilyError(family string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownBenefitFamily,
		Message:   "No calculator registered for benefit family",
		Details:   fmt.Sprintf("family: %s", family),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEstimateInputInvalidError flags invalid calculator input.
func NewEstimateInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEstimateInputInvalid,
		Message:   "Benefit estimate input failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError flags a retryable snapshot load failure.
func NewCatalogLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Catalog snapshot load failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError flags a retryable program search failure.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Program search query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
