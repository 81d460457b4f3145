package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/skill-extractor/internal/fetch"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/pipeline"
	"github.com/jonathan/skill-extractor/internal/similarity"
)

// ErrNoStore is returned by the /analyses endpoints when no database is configured.
var ErrNoStore = errors.New("analysis storage is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAnalysisNotFound indicates the analysis does not exist or belongs to someone else.
type ErrAnalysisNotFound struct {
	ID uuid.UUID
}

func (e *ErrAnalysisNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var notFound *ErrAnalysisNotFound
	var fetchErr *fetch.Error

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs),
		errors.Is(err, pipeline.ErrMissingSource):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, ingestion.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, similarity.ErrNoEmbedder), errors.Is(err, ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage renders err for a client. Validator errors become one line per field.
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return "invalid request: " + strings.Join(parts, "; ")
}
