package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/domain"
)

type collectionRecordPayload struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Tons     float64 `json:"tons"`
}

func (api *API) registerCollectionRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "collections")
	mux.HandleFunc("POST "+root, api.handleCollectionRecord)
	mux.HandleFunc("GET "+root+"/totals", api.handleCollectionTotals)
	mux.HandleFunc("GET "+root+"/trend", api.handleCollectionTrend)
	mux.HandleFunc("GET "+root+"/week-over-week", api.handleCollectionWeekOverWeek)
}

func (api *API) handleCollectionRecord(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.collections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload collectionRecordPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := collections.RecordCollectionRequest{Tons: payload.Tons}
	if raw := strings.TrimSpace(payload.Date); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "date must use YYYY-MM-DD"})
			return
		}
		req.Date = date
	}
	if raw := strings.TrimSpace(payload.Category); raw != "" {
		category, ok := domain.ParseWasteCategory(raw)
		if !ok {
			writeError(w, collections.ErrCategoryInvalid)
			return
		}
		req.Category = category
	}
	record, err := api.collections.Record(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleCollectionTotals(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.collections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	// Zero covers all recorded history, matching the dashboard's pie chart.
	days := parseIntQuery(r.URL.Query().Get("days"), 0)
	totals, err := api.collections.TotalsByCategory(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (api *API) handleCollectionTrend(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.collections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	// Zero defers to the service's configured trend window.
	days := parseIntQuery(r.URL.Query().Get("days"), 0)
	series, err := api.collections.Trend(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (api *API) handleCollectionWeekOverWeek(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.collections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	comparison, err := api.collections.WeekOverWeek(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
