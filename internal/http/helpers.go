package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
	"github.com/goliatone/go-wasteops/internal/reports"
	"github.com/goliatone/go-wasteops/internal/validation"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var containerNotFound *containers.NotFoundError
	if errors.As(err, &containerNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: containerNotFound.Error(),
		}
	}

	var complaintNotFound *complaints.NotFoundError
	if errors.As(err, &complaintNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: complaintNotFound.Error(),
		}
	}

	var collectionNotFound *collections.NotFoundError
	if errors.As(err, &collectionNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: collectionNotFound.Error(),
		}
	}

	var neighborhoodNotFound *neighborhoods.NotFoundError
	if errors.As(err, &neighborhoodNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: neighborhoodNotFound.Error(),
		}
	}

	if errors.Is(err, ingest.ErrSnapshotMissing) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, containers.ErrCodeExists) ||
		errors.Is(err, complaints.ErrStatusTransition) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, ingest.ErrSourceUnavailable) {
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_unavailable",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaInvalid) ||
		errors.Is(err, validation.ErrSchemaValidation) ||
		errors.Is(err, ingest.ErrPayloadInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	var fieldErrs ozzo.Errors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, containers.ErrCodeRequired) ||
		errors.Is(err, containers.ErrNeighborhoodRequired) ||
		errors.Is(err, containers.ErrTypeInvalid) ||
		errors.Is(err, containers.ErrCategoryInvalid) ||
		errors.Is(err, containers.ErrFillLevelOutOfRange) ||
		errors.Is(err, containers.ErrCoordinatesOutOfRange) ||
		errors.Is(err, containers.ErrStatusNotSupported) ||
		errors.Is(err, containers.ErrStatusInvalid) ||
		errors.Is(err, containers.ErrIDRequired) ||
		errors.Is(err, complaints.ErrNeighborhoodRequired) ||
		errors.Is(err, complaints.ErrTypeInvalid) ||
		errors.Is(err, complaints.ErrStatusInvalid) ||
		errors.Is(err, complaints.ErrIDRequired) ||
		errors.Is(err, collections.ErrDateRequired) ||
		errors.Is(err, collections.ErrCategoryInvalid) ||
		errors.Is(err, collections.ErrTonsNegative) ||
		errors.Is(err, collections.ErrWindowInvalid) ||
		errors.Is(err, neighborhoods.ErrNameRequired) ||
		errors.Is(err, neighborhoods.ErrKeyInvalid) ||
		errors.Is(err, reports.ErrLayerInvalid) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}
