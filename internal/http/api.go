package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/jobs"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
	"github.com/goliatone/go-wasteops/internal/reports"
)

// API registers the operational endpoints for containers, complaints,
// collections, neighborhoods, reporting, and dataset ingestion.
type API struct {
	basePath      string
	containers    containers.Service
	complaints    complaints.Service
	collections   collections.Service
	neighborhoods neighborhoods.Service
	reports       reports.Service
	ingest        ingest.Service
	worker        *jobs.Worker
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithContainerService wires the container service.
func WithContainerService(service containers.Service) Option {
	return func(api *API) {
		if api != nil {
			api.containers = service
		}
	}
}

// WithComplaintService wires the complaint service.
func WithComplaintService(service complaints.Service) Option {
	return func(api *API) {
		if api != nil {
			api.complaints = service
		}
	}
}

// WithCollectionService wires the tonnage service.
func WithCollectionService(service collections.Service) Option {
	return func(api *API) {
		if api != nil {
			api.collections = service
		}
	}
}

// WithNeighborhoodService wires the district service.
func WithNeighborhoodService(service neighborhoods.Service) Option {
	return func(api *API) {
		if api != nil {
			api.neighborhoods = service
		}
	}
}

// WithReportService wires the dashboard reporting service.
func WithReportService(service reports.Service) Option {
	return func(api *API) {
		if api != nil {
			api.reports = service
		}
	}
}

// WithIngestService wires the dataset ingestion service.
func WithIngestService(service ingest.Service) Option {
	return func(api *API) {
		if api != nil {
			api.ingest = service
		}
	}
}

// WithWorker wires the background worker used to schedule emptying runs.
func WithWorker(worker *jobs.Worker) Option {
	return func(api *API) {
		if api != nil {
			api.worker = worker
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerContainerRoutes(mux, base)
	api.registerComplaintRoutes(mux, base)
	api.registerCollectionRoutes(mux, base)
	api.registerNeighborhoodRoutes(mux, base)
	api.registerReportRoutes(mux, base)
	api.registerIngestRoutes(mux, base)

	return nil
}
