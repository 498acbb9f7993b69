package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/domain"
)

type complaintReportPayload struct {
	Neighborhood  string     `json:"neighborhood"`
	Type          string     `json:"type"`
	Description   string     `json:"description,omitempty"`
	ContainerCode string     `json:"container_code,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

type complaintStatusPayload struct {
	Status string `json:"status"`
}

func (api *API) registerComplaintRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "complaints")
	mux.HandleFunc("GET "+root, api.handleComplaintList)
	mux.HandleFunc("POST "+root, api.handleComplaintReport)
	mux.HandleFunc("GET "+root+"/{id}", api.handleComplaintGet)
	mux.HandleFunc("PUT "+root+"/{id}/status", api.handleComplaintStatus)
	mux.HandleFunc("POST "+root+"/age", api.handleComplaintAge)
}

func (api *API) handleComplaintList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.complaints == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := complaints.ListQuery{
		NeighborhoodKey: strings.TrimSpace(r.URL.Query().Get("neighborhood")),
		Limit:           parseIntQuery(r.URL.Query().Get("limit"), 0),
	}
	for _, raw := range r.URL.Query()["status"] {
		trimmed := strings.ToLower(strings.TrimSpace(raw))
		if trimmed == "" {
			continue
		}
		query.Statuses = append(query.Statuses, domain.ComplaintStatus(trimmed))
	}
	list, err := api.complaints.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleComplaintGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.complaints == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.complaints.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleComplaintReport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.complaints == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload complaintReportPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := complaints.ReportComplaintRequest{
		Neighborhood:  payload.Neighborhood,
		Description:   payload.Description,
		ContainerCode: payload.ContainerCode,
		SubmittedAt:   payload.SubmittedAt,
	}
	if raw := strings.TrimSpace(payload.Type); raw != "" {
		kind, ok := domain.ParseComplaintType(raw)
		if !ok {
			writeError(w, complaints.ErrTypeInvalid)
			return
		}
		req.Type = kind
	}
	record, err := api.complaints.Report(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleComplaintStatus(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.complaints == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload complaintStatusPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	status := domain.ComplaintStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	record, err := api.complaints.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleComplaintAge(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.complaints == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	changed, err := api.complaints.AgeStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"changed": changed})
}
