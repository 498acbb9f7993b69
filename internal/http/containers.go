package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
)

type containerCreatePayload struct {
	Code          string     `json:"code"`
	Neighborhood  string     `json:"neighborhood"`
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
	Type          string     `json:"type"`
	WasteCategory string     `json:"waste_category"`
	FillLevel     int        `json:"fill_level"`
	Status        string     `json:"status,omitempty"`
	LastEmptiedAt *time.Time `json:"last_emptied_at,omitempty"`
}

type fillLevelPayload struct {
	FillLevel int `json:"fill_level"`
}

type containerStatusPayload struct {
	Status string `json:"status"`
}

type requestEmptyingPayload struct {
	RunAt *time.Time `json:"run_at,omitempty"`
}

func (api *API) registerContainerRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "containers")
	mux.HandleFunc("GET "+root, api.handleContainerList)
	mux.HandleFunc("POST "+root, api.handleContainerCreate)
	mux.HandleFunc("GET "+root+"/export", api.handleContainerExport)
	mux.HandleFunc("GET "+root+"/search", api.handleContainerSearch)
	mux.HandleFunc("GET "+root+"/high-fill", api.handleContainerHighFill)
	mux.HandleFunc("GET "+root+"/{id}", api.handleContainerGet)
	mux.HandleFunc("PUT "+root+"/{id}/fill-level", api.handleContainerFillLevel)
	mux.HandleFunc("PUT "+root+"/{id}/status", api.handleContainerStatus)
	mux.HandleFunc("POST "+root+"/{id}/empty", api.handleContainerEmpty)
	mux.HandleFunc("POST "+root+"/{id}/request-emptying", api.handleContainerRequestEmptying)
}

func (api *API) containerListQuery(r *http.Request) (containers.ListQuery, error) {
	query := containers.ListQuery{
		NeighborhoodKey: strings.TrimSpace(r.URL.Query().Get("neighborhood")),
		Limit:           parseIntQuery(r.URL.Query().Get("limit"), 0),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, ok := domain.ParseWasteCategory(raw)
		if !ok {
			return query, containers.ErrCategoryInvalid
		}
		query.WasteCategory = category
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		query.Sort = containers.SortOrder(raw)
	}
	return query, nil
}

func (api *API) handleContainerList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query, err := api.containerListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := api.containers.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleContainerGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.containers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleContainerCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload containerCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := containers.CreateContainerRequest{
		Code:          payload.Code,
		Neighborhood:  payload.Neighborhood,
		Lat:           payload.Lat,
		Lon:           payload.Lon,
		FillLevel:     payload.FillLevel,
		LastEmptiedAt: payload.LastEmptiedAt,
	}
	if raw := strings.TrimSpace(payload.Type); raw != "" {
		kind, ok := domain.ParseContainerType(raw)
		if !ok {
			writeError(w, containers.ErrTypeInvalid)
			return
		}
		req.Type = kind
	}
	if raw := strings.TrimSpace(payload.WasteCategory); raw != "" {
		category, ok := domain.ParseWasteCategory(raw)
		if !ok {
			writeError(w, containers.ErrCategoryInvalid)
			return
		}
		req.WasteCategory = category
	}
	if raw := strings.TrimSpace(payload.Status); raw != "" {
		req.Status = domain.ContainerStatus(strings.ToLower(raw))
	}
	record, err := api.containers.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleContainerSearch(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.containers.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleContainerHighFill(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	// Zero values defer to the service's configured dashboard defaults.
	threshold := parseIntQuery(r.URL.Query().Get("threshold"), 0)
	limit := parseIntQuery(r.URL.Query().Get("limit"), 0)
	list, err := api.containers.HighFill(r.Context(), threshold, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleContainerExport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query, err := api.containerListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := api.containers.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="containers.csv"`)
	w.WriteHeader(http.StatusOK)
	_ = containers.WriteCSV(w, list)
}

func (api *API) handleContainerFillLevel(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload fillLevelPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	record, err := api.containers.UpdateFillLevel(r.Context(), id, payload.FillLevel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleContainerStatus(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload containerStatusPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	status := domain.ContainerStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	record, err := api.containers.SetStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleContainerEmpty(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.containers == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.containers.MarkEmptied(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleContainerRequestEmptying(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.worker == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload requestEmptyingPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	runAt := time.Now()
	if payload.RunAt != nil {
		runAt = *payload.RunAt
	}
	job, err := api.worker.RequestEmptying(r.Context(), id, runAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}
