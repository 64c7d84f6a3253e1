// internal/models/document.go
package models

// DocumentType groups checklist entries for display.
type DocumentType string

const (
	DocumentIdentification DocumentType = "identification"
	DocumentIncome         DocumentType = "income"
	DocumentResidence      DocumentType = "residence"
	DocumentFinancial      DocumentType = "financial"
	DocumentLegal          DocumentType = "legal"
	DocumentMedical        DocumentType = "medical"
	DocumentOther          DocumentType = "other"
)

// DocumentDisplayOrder is the fixed order checklist groups are emitted in.
var DocumentDisplayOrder = []DocumentType{
	DocumentIdentification, DocumentIncome, DocumentResidence,
	DocumentFinancial, DocumentLegal, DocumentMedical, DocumentOther,
}

// DocumentCondition gates a document requirement on the match context.
// A zero condition is always active. A non-empty Need activates only when
// the user requested that category; a non-empty Situation only when the
// user declared that crisis situation.
type DocumentCondition struct {
	Need      Category `json:"need,omitempty"`
	Situation string   `json:"situation,omitempty"`
}

// IsZero reports whether the condition is unconditioned.
func (c DocumentCondition) IsZero() bool {
	return c.Need == "" && c.Situation == ""
}

// DocumentRequirement links a program to a catalog document. Identity is
// DocumentID, not the display name; the same document attached to several
// programs consolidates to one checklist entry.
type DocumentRequirement struct {
	DocumentID   string             `json:"documentId"`
	Name         string             `json:"name"`
	Type         DocumentType       `json:"type"`
	Required     bool               `json:"required"`
	Condition    *DocumentCondition `json:"condition,omitempty"`
	Alternatives []string           `json:"alternatives,omitempty"`
}
