// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/common/logger"
)

// ProgramHit is one free-text search result.
type ProgramHit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
}

// Search runs free-text program lookups against the search index the data
// pipeline maintains. It complements matching: browse by words, match by
// profile.
type Search struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

// NewSearch builds a Search over the given index.
func NewSearch(es *elasticsearch.Client, index string, log logger.Logger) *Search {
	return &Search{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "program-search"}),
	}
}

// SearchPrograms returns up to size active programs whose name or
// description matches the term.
func (s *Search) SearchPrograms(ctx context.Context, term string, size int) ([]ProgramHit, error) {
	if size <= 0 {
		size = 20
	}

	query := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  term,
						"fields": []string{"program_name^2", "description"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&body),
	)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source struct {
					ID          string `json:"id"`
					ProgramName string `json:"program_name"`
					Category    string `json:"category"`
					Description string `json:"description"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]ProgramHit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		hits = append(hits, ProgramHit{
			ID:          h.Source.ID,
			Name:        h.Source.ProgramName,
			Category:    h.Source.Category,
			Description: h.Source.Description,
			Score:       h.Score,
		})
	}
	return hits, nil
}
