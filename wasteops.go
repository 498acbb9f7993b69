package wasteops

import (
	"net/http"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/di"
	wastehttp "github.com/goliatone/go-wasteops/internal/http"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/jobs"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
	"github.com/goliatone/go-wasteops/internal/reports"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

// ContainerService exports the container fleet service contract.
type ContainerService = containers.Service

// ComplaintService exports the resident complaint service contract.
type ComplaintService = complaints.Service

// CollectionService exports the tonnage tracking service contract.
type CollectionService = collections.Service

// NeighborhoodService exports the district service contract.
type NeighborhoodService = neighborhoods.Service

// ReportService exports the dashboard reporting service contract.
type ReportService = reports.Service

// IngestService exports the dataset ingestion service contract.
type IngestService = ingest.Service

// Scheduler exports the background job scheduler contract.
type Scheduler = interfaces.Scheduler

// Worker exports the background worker type.
type Worker = jobs.Worker

// Module represents the top level waste operations runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Containers returns the configured container service.
func (m *Module) Containers() ContainerService {
	return m.container.ContainerService()
}

// Complaints returns the configured complaint service.
func (m *Module) Complaints() ComplaintService {
	return m.container.ComplaintService()
}

// Collections returns the configured tonnage service.
func (m *Module) Collections() CollectionService {
	return m.container.CollectionService()
}

// Neighborhoods returns the configured district service.
func (m *Module) Neighborhoods() NeighborhoodService {
	return m.container.NeighborhoodService()
}

// Reports returns the configured reporting service.
func (m *Module) Reports() ReportService {
	return m.container.ReportService()
}

// Ingest returns the configured dataset ingestion service.
func (m *Module) Ingest() IngestService {
	return m.container.IngestService()
}

// Jobs returns the background worker bound to the scheduler.
func (m *Module) Jobs() *Worker {
	return m.container.Worker()
}

// Scheduler returns the scheduler used for emptying and refresh automation.
func (m *Module) Scheduler() Scheduler {
	return m.container.Scheduler()
}

// RegisterRoutes mounts the HTTP API on the provided mux using the
// configured base path.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	api := wastehttp.NewAPI(
		wastehttp.WithBasePath(m.container.Config.HTTP.BasePath),
		wastehttp.WithContainerService(m.container.ContainerService()),
		wastehttp.WithComplaintService(m.container.ComplaintService()),
		wastehttp.WithCollectionService(m.container.CollectionService()),
		wastehttp.WithNeighborhoodService(m.container.NeighborhoodService()),
		wastehttp.WithReportService(m.container.ReportService()),
		wastehttp.WithIngestService(m.container.IngestService()),
		wastehttp.WithWorker(m.container.Worker()),
	)
	return api.Register(mux)
}
