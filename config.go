package wasteops

import "github.com/goliatone/go-wasteops/internal/runtimeconfig"

var (
	ErrIngestSourceRequired              = runtimeconfig.ErrIngestSourceRequired
	ErrIngestSnapshotPathRequired        = runtimeconfig.ErrIngestSnapshotPathRequired
	ErrIngestSnapshotTTLInvalid          = runtimeconfig.ErrIngestSnapshotTTLInvalid
	ErrSchedulingRequiredForAutoRefresh  = runtimeconfig.ErrSchedulingRequiredForAutoRefresh
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrHighFillThresholdInvalid          = runtimeconfig.ErrHighFillThresholdInvalid
	ErrTrendWindowInvalid                = runtimeconfig.ErrTrendWindowInvalid
	ErrJobIntervalInvalid                = runtimeconfig.ErrJobIntervalInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	IngestConfig    = runtimeconfig.IngestConfig
	DashboardConfig = runtimeconfig.DashboardConfig
	JobsConfig      = runtimeconfig.JobsConfig
	HTTPConfig      = runtimeconfig.HTTPConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
