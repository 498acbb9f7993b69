package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/reports"
)

func (api *API) registerReportRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "reports")
	mux.HandleFunc("GET "+root+"/summary", api.handleReportSummary)
	mux.HandleFunc("GET "+root+"/fullness", api.handleReportFullness)
	mux.HandleFunc("GET "+root+"/map", api.handleReportMap)
}

func (api *API) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	summary, err := api.reports.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (api *API) handleReportFullness(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := reports.FullnessQuery{
		NeighborhoodKey: strings.TrimSpace(r.URL.Query().Get("neighborhood")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, ok := domain.ParseWasteCategory(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "unknown waste category"})
			return
		}
		query.WasteCategory = category
	}
	report, err := api.reports.Fullness(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (api *API) handleReportMap(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.reports == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := reports.MapQuery{
		Kind:            reports.LayerKind(strings.TrimSpace(r.URL.Query().Get("layer"))),
		NeighborhoodKey: strings.TrimSpace(r.URL.Query().Get("neighborhood")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, ok := domain.ParseWasteCategory(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "unknown waste category"})
			return
		}
		query.WasteCategory = category
	}
	document, err := api.reports.Map(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}
