// internal/catalog/search_test.go
package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/common/logger/loggertest"
)

// fixedTransport answers every request with one canned response.
type fixedTransport struct {
	status int
	body   string
}

func (t *fixedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body:    io.NopCloser(strings.NewReader(t.body)),
		Request: req,
	}, nil
}

func newStubSearch(t *testing.T, status int, body string) *Search {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: &fixedTransport{status: status, body: body},
	})
	require.NoError(t, err)
	return NewSearch(es, "programs", loggertest.New(t))
}

func TestSearchPrograms(t *testing.T) {
	body := `{
		"hits": {
			"hits": [
				{
					"_score": 4.2,
					"_source": {
						"id": "p1",
						"program_name": "Food Assistance",
						"category": "food",
						"description": "Monthly grocery benefit"
					}
				},
				{
					"_score": 1.1,
					"_source": {
						"id": "p2",
						"program_name": "Food Pantry",
						"category": "food"
					}
				}
			]
		}
	}`
	s := newStubSearch(t, http.StatusOK, body)

	hits, err := s.SearchPrograms(context.Background(), "food", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "p1", hits[0].ID)
	assert.Equal(t, "Food Assistance", hits[0].Name)
	assert.Equal(t, "food", hits[0].Category)
	assert.InDelta(t, 4.2, hits[0].Score, 1e-9)
	assert.Empty(t, hits[1].Description)
}

func TestSearchProgramsNoHits(t *testing.T) {
	s := newStubSearch(t, http.StatusOK, `{"hits": {"hits": []}}`)

	hits, err := s.SearchPrograms(context.Background(), "nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchProgramsServerError(t *testing.T) {
	s := newStubSearch(t, http.StatusInternalServerError, `{"error": "boom"}`)

	hits, err := s.SearchPrograms(context.Background(), "food", 10)
	require.Error(t, err)
	assert.Nil(t, hits)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeSearchQueryFailed, stdErr.Code)
}
