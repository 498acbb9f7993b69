package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-wasteops/internal/collections"
	opscmd "github.com/goliatone/go-wasteops/internal/commands/ops"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/jobs"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/internal/logging/console"
	"github.com/goliatone/go-wasteops/internal/logging/gologger"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
	"github.com/goliatone/go-wasteops/internal/reports"
	"github.com/goliatone/go-wasteops/internal/runtimeconfig"
	"github.com/goliatone/go-wasteops/internal/scheduler"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Memory-backed repositories are the
// default; WithBunDB swaps in persistent stores.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider

	containerRepo    containers.ContainerRepository
	complaintRepo    complaints.ComplaintRepository
	collectionRepo   collections.CollectionRecordRepository
	neighborhoodRepo neighborhoods.NeighborhoodRepository

	fetcher   ingest.Fetcher
	snapshot  *ingest.SnapshotStore
	scheduler interfaces.Scheduler

	containerSvc    containers.Service
	complaintSvc    complaints.Service
	collectionSvc   collections.Service
	neighborhoodSvc neighborhoods.Service
	reportSvc       reports.Service
	ingestSvc       ingest.Service
	worker          *jobs.Worker

	refreshHandler   *opscmd.RefreshDataHandler
	emptyingHandler  *opscmd.RequestEmptyingHandler
	complaintHandler *opscmd.ReportComplaintHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds repositories to the provided bun database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used by repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithFetcher overrides the dataset fetcher used by the ingest service.
func WithFetcher(fetcher ingest.Fetcher) Option {
	return func(c *Container) {
		c.fetcher = fetcher
	}
}

// WithScheduler overrides the default in-memory scheduler.
func WithScheduler(s interfaces.Scheduler) Option {
	return func(c *Container) {
		c.scheduler = s
	}
}

// WithContainerService overrides the default container service binding.
func WithContainerService(svc containers.Service) Option {
	return func(c *Container) {
		c.containerSvc = svc
	}
}

// WithComplaintService overrides the default complaint service binding.
func WithComplaintService(svc complaints.Service) Option {
	return func(c *Container) {
		c.complaintSvc = svc
	}
}

// WithCollectionService overrides the default tonnage service binding.
func WithCollectionService(svc collections.Service) Option {
	return func(c *Container) {
		c.collectionSvc = svc
	}
}

// WithNeighborhoodService overrides the default district service binding.
func WithNeighborhoodService(svc neighborhoods.Service) Option {
	return func(c *Container) {
		c.neighborhoodSvc = svc
	}
}

// WithReportService overrides the default reporting service binding.
func WithReportService(svc reports.Service) Option {
	return func(c *Container) {
		c.reportSvc = svc
	}
}

// WithIngestService overrides the default ingest service binding.
func WithIngestService(svc ingest.Service) Option {
	return func(c *Container) {
		c.ingestSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:           cfg,
		cacheTTL:         cacheTTL,
		containerRepo:    containers.NewMemoryContainerRepository(),
		complaintRepo:    complaints.NewMemoryComplaintRepository(),
		collectionRepo:   collections.NewMemoryCollectionRecordRepository(),
		neighborhoodRepo: neighborhoods.NewMemoryNeighborhoodRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureIngestAdapters()
	c.configureServices()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.containerRepo = containers.NewBunContainerRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.complaintRepo = complaints.NewBunComplaintRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.collectionRepo = collections.NewBunCollectionRecordRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.neighborhoodRepo = neighborhoods.NewBunNeighborhoodRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureIngestAdapters() {
	if c.snapshot == nil {
		path := strings.TrimSpace(c.Config.Ingest.Snapshot)
		if path == "" {
			path = "data/container_data.json"
		}
		c.snapshot = ingest.NewSnapshotStore(path)
	}
	if c.fetcher == nil {
		url := strings.TrimSpace(c.Config.Ingest.SourceURL)
		if url == "" {
			url = ingest.DefaultDatasetURL
		}
		c.fetcher = ingest.NewHTTPFetcher(url)
	}
	if c.scheduler == nil {
		if c.Config.Features.Scheduling {
			c.scheduler = scheduler.NewInMemory()
		} else {
			c.scheduler = scheduler.NewNoOp()
		}
	}
}

func (c *Container) configureServices() {
	if c.containerSvc == nil {
		containerOpts := []containers.ServiceOption{
			containers.WithLogger(logging.ContainersLogger(c.loggerProvider)),
		}
		if dash := c.Config.Dashboard; dash.HighFillThreshold > 0 || dash.HighFillLimit > 0 {
			containerOpts = append(containerOpts, containers.WithHighFillDefaults(dash.HighFillThreshold, dash.HighFillLimit))
		}
		c.containerSvc = containers.NewService(c.containerRepo, containerOpts...)
	}

	if c.complaintSvc == nil {
		c.complaintSvc = complaints.NewService(
			c.complaintRepo,
			complaints.WithLogger(logging.ComplaintsLogger(c.loggerProvider)),
		)
	}

	if c.collectionSvc == nil {
		collectionOpts := []collections.ServiceOption{
			collections.WithLogger(logging.CollectionsLogger(c.loggerProvider)),
		}
		if days := c.Config.Dashboard.TrendDays; days > 0 {
			collectionOpts = append(collectionOpts, collections.WithTrendWindow(days))
		}
		c.collectionSvc = collections.NewService(c.collectionRepo, collectionOpts...)
	}

	if c.neighborhoodSvc == nil {
		c.neighborhoodSvc = neighborhoods.NewService(
			c.neighborhoodRepo,
			c.containerSvc,
			c.complaintSvc,
			neighborhoods.WithLogger(logging.NeighborhoodsLogger(c.loggerProvider)),
		)
	}

	if c.reportSvc == nil {
		reportOpts := []reports.ServiceOption{
			reports.WithLogger(logging.ReportsLogger(c.loggerProvider)),
		}
		if days := c.Config.Dashboard.CollectionWindow; days > 0 {
			reportOpts = append(reportOpts, reports.WithCollectionWindow(days))
		}
		c.reportSvc = reports.NewService(c.containerSvc, c.complaintSvc, c.collectionSvc, reportOpts...)
	}

	if c.ingestSvc == nil {
		ingestOpts := []ingest.ServiceOption{
			ingest.WithLogger(logging.IngestLogger(c.loggerProvider)),
		}
		if ttl := c.Config.Ingest.SnapshotTTL; ttl > 0 {
			ingestOpts = append(ingestOpts, ingest.WithSnapshotTTL(ttl))
		}
		c.ingestSvc = ingest.NewService(c.fetcher, c.snapshot, c.containerSvc, ingestOpts...)
	}

	if c.worker == nil {
		workerOpts := []jobs.Option{
			jobs.WithLogger(logging.SchedulerLogger(c.loggerProvider)),
		}
		if c.Config.Jobs.RefreshInterval > 0 {
			workerOpts = append(workerOpts, jobs.WithRefreshInterval(c.Config.Jobs.RefreshInterval))
		}
		if c.Config.Jobs.AgingInterval > 0 {
			workerOpts = append(workerOpts, jobs.WithAgingInterval(c.Config.Jobs.AgingInterval))
		}
		if c.Config.Jobs.BatchSize > 0 {
			workerOpts = append(workerOpts, jobs.WithBatchSize(c.Config.Jobs.BatchSize))
		}
		c.worker = jobs.NewWorker(c.scheduler, c.containerSvc, c.complaintSvc, c.ingestSvc, workerOpts...)
	}

	commandLogger := logging.ModuleLogger(c.loggerProvider, "waste.commands")
	c.refreshHandler = opscmd.NewRefreshDataHandler(c.ingestSvc, commandLogger)
	c.emptyingHandler = opscmd.NewRequestEmptyingHandler(c.worker, commandLogger)
	c.complaintHandler = opscmd.NewReportComplaintHandler(c.complaintSvc, commandLogger)
}

// ContainerService returns the configured container service.
func (c *Container) ContainerService() containers.Service {
	return c.containerSvc
}

// ComplaintService returns the configured complaint service.
func (c *Container) ComplaintService() complaints.Service {
	return c.complaintSvc
}

// CollectionService returns the configured tonnage service.
func (c *Container) CollectionService() collections.Service {
	return c.collectionSvc
}

// NeighborhoodService returns the configured district service.
func (c *Container) NeighborhoodService() neighborhoods.Service {
	return c.neighborhoodSvc
}

// ReportService returns the configured reporting service.
func (c *Container) ReportService() reports.Service {
	return c.reportSvc
}

// IngestService returns the configured ingest service.
func (c *Container) IngestService() ingest.Service {
	return c.ingestSvc
}

// Scheduler exposes the configured job scheduler.
func (c *Container) Scheduler() interfaces.Scheduler {
	return c.scheduler
}

// Worker returns the background worker bound to the scheduler.
func (c *Container) Worker() *jobs.Worker {
	return c.worker
}

// RefreshDataHandler returns the command handler that triggers dataset refreshes.
func (c *Container) RefreshDataHandler() *opscmd.RefreshDataHandler {
	return c.refreshHandler
}

// RequestEmptyingHandler returns the command handler that schedules emptying runs.
func (c *Container) RequestEmptyingHandler() *opscmd.RequestEmptyingHandler {
	return c.emptyingHandler
}

// ReportComplaintHandler returns the command handler that records resident complaints.
func (c *Container) ReportComplaintHandler() *opscmd.ReportComplaintHandler {
	return c.complaintHandler
}

// LoggerProvider exposes the configured logger provider, which is nil when
// the logger feature is disabled and no override was supplied.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}
