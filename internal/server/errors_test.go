package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-extractor/internal/fetch"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/pipeline"
	"github.com/jonathan/skill-extractor/internal/similarity"
	"github.com/jonathan/skill-extractor/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be a number"}
	assert.Equal(t, "validation error: limit - must be a number", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrAnalysisNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrAnalysisNotFound{ID: id}
	assert.Equal(t, "analysis not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	invalid := (&types.SimilarityRequest{}).Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validator errors", invalid, http.StatusBadRequest},
		{"missing source", pipeline.ErrMissingSource, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("read: %w", ingestion.ErrDocumentNotFound), http.StatusNotFound},
		{"unsupported type", ingestion.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{"no embedder", similarity.ErrNoEmbedder, http.StatusServiceUnavailable},
		{"no store", ErrNoStore, http.StatusServiceUnavailable},
		{"fetch", &fetch.Error{URL: "https://x.test", Message: "status 500"}, http.StatusBadGateway},
		{"deadline", fmt.Errorf("ingest: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := (&types.SimilarityRequest{ResumeSkills: []string{"Go"}, TopK: 50}).Validate()
	msg := ErrorMessage(err)
	assert.Contains(t, msg, "invalid request:")
	assert.Contains(t, msg, "JDSkills failed required")
	assert.Contains(t, msg, "TopK failed lte=20")

	assert.Equal(t, "boom", ErrorMessage(fmt.Errorf("boom")))
}
