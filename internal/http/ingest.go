package http

import (
	"net/http"

	"github.com/goliatone/go-wasteops/internal/ingest"
)

func (api *API) registerIngestRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "ingest")
	mux.HandleFunc("POST "+root+"/refresh", api.handleIngestRefresh)
	mux.HandleFunc("GET "+root+"/status", api.handleIngestStatus)
}

func (api *API) handleIngestRefresh(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.ingest == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	opts := ingest.RefreshOptions{
		Force: parseBoolQuery(r.URL.Query().Get("force"), false),
	}
	result, err := api.ingest.Refresh(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *API) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.ingest == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	status, err := api.ingest.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
