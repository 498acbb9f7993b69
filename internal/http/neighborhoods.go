package http

import (
	"errors"
	"io"
	"net/http"
)

type neighborhoodRegisterPayload struct {
	Name string `json:"name"`
}

func (api *API) registerNeighborhoodRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "neighborhoods")
	mux.HandleFunc("GET "+root, api.handleNeighborhoodList)
	mux.HandleFunc("POST "+root, api.handleNeighborhoodRegister)
	mux.HandleFunc("GET "+root+"/stats", api.handleNeighborhoodStats)
	mux.HandleFunc("GET "+root+"/top", api.handleNeighborhoodTop)
	mux.HandleFunc("GET "+root+"/{key}", api.handleNeighborhoodGet)
}

func (api *API) handleNeighborhoodList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.neighborhoods == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.neighborhoods.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleNeighborhoodGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.neighborhoods == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	record, err := api.neighborhoods.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleNeighborhoodRegister(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.neighborhoods == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload neighborhoodRegisterPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	record, err := api.neighborhoods.Register(r.Context(), payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleNeighborhoodTop(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.neighborhoods == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	limit := parseIntQuery(r.URL.Query().Get("limit"), 0)
	stats, err := api.neighborhoods.TopByContainers(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (api *API) handleNeighborhoodStats(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.neighborhoods == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	stats, err := api.neighborhoods.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
