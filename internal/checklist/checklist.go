// Package checklist consolidates the required documents of a set of
// matched programs into one deduplicated list grouped by document type.
package checklist

import (
	"sort"

	"community-assist/internal/models"
)

// Entry is one consolidated document with every program that asks for it.
type Entry struct {
	DocumentID   string              `json:"documentId"`
	Name         string              `json:"name"`
	Type         models.DocumentType `json:"type"`
	Required     bool                `json:"required"`
	RequiredBy   []string            `json:"requiredBy"`
	Alternatives []string            `json:"alternatives,omitempty"`
}

// Group holds the entries of one document type, in display order.
type Group struct {
	Type      models.DocumentType `json:"type"`
	Documents []Entry             `json:"documents"`
}

// Consolidate collects the document requirements of the matched programs,
// drops requirements whose activation condition the profile does not meet,
// and deduplicates by document identity. A document several programs ask
// for appears once, carrying the union of program names. Groups come out
// in the fixed display order; unknown types land in "other".
func Consolidate(matched []models.Program, profile *models.UserProfile) []Group {
	entries := make(map[string]*Entry)

	for _, p := range matched {
		for _, req := range p.Documents {
			if !conditionMet(req.Condition, profile) {
				// Unmet for this program; the same document may still
				// arrive via another matched program.
				continue
			}

			e, ok := entries[req.DocumentID]
			if !ok {
				e = &Entry{
					DocumentID:   req.DocumentID,
					Name:         req.Name,
					Type:         normalizeType(req.Type),
					Alternatives: req.Alternatives,
				}
				entries[req.DocumentID] = e
			}
			if req.Required {
				e.Required = true
			}
			e.RequiredBy = appendUnique(e.RequiredBy, p.Name)
		}
	}

	byType := make(map[models.DocumentType][]Entry)
	for _, e := range entries {
		sort.Strings(e.RequiredBy)
		byType[e.Type] = append(byType[e.Type], *e)
	}

	var groups []Group
	for _, t := range models.DocumentDisplayOrder {
		docs := byType[t]
		if len(docs) == 0 {
			continue
		}
		sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
		groups = append(groups, Group{Type: t, Documents: docs})
	}
	return groups
}

func conditionMet(c *models.DocumentCondition, profile *models.UserProfile) bool {
	if c == nil || c.IsZero() {
		return true
	}
	if profile == nil {
		return false
	}
	if c.Need != "" && !profile.NeedsCategory(c.Need) {
		return false
	}
	if c.Situation != "" && !profile.HasSituation(c.Situation) {
		return false
	}
	return true
}

func normalizeType(t models.DocumentType) models.DocumentType {
	for _, known := range models.DocumentDisplayOrder {
		if t == known {
			return t
		}
	}
	return models.DocumentOther
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
