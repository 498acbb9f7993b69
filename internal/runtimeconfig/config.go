package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrIngestSourceRequired indicates the refresh pipeline has nowhere to pull from.
var ErrIngestSourceRequired = errors.New("waste config: ingest source URL is required when ingest is enabled")

// ErrIngestSnapshotPathRequired ensures refreshed datasets always land somewhere.
var ErrIngestSnapshotPathRequired = errors.New("waste config: ingest snapshot path is required when ingest is enabled")
var ErrIngestSnapshotTTLInvalid = errors.New("waste config: ingest snapshot TTL must be zero or positive")
var ErrSchedulingRequiredForAutoRefresh = errors.New("waste config: automatic refresh requires scheduling to be enabled")
var ErrAdvancedCacheRequiresEnabledCache = errors.New("waste config: advanced cache feature requires cache to be enabled")
var ErrHighFillThresholdInvalid = errors.New("waste config: high fill threshold must be between 0 and 100")
var ErrTrendWindowInvalid = errors.New("waste config: trend window must cover at least one day")
var ErrJobIntervalInvalid = errors.New("waste config: job intervals must be positive")
var ErrLoggingProviderRequired = errors.New("waste config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("waste config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("waste config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("waste config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the waste module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool            `yaml:"enabled"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Jobs      JobsConfig      `yaml:"jobs"`
	HTTP      HTTPConfig      `yaml:"http"`
	Features  Features        `yaml:"features"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// IngestConfig wires the municipal dataset refresh pipeline.
type IngestConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SourceURL   string        `yaml:"source_url"`
	Snapshot    string        `yaml:"snapshot"`
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
	AutoRefresh bool          `yaml:"auto_refresh"`
}

// DashboardConfig tunes the rollups served to operators.
type DashboardConfig struct {
	HighFillThreshold int `yaml:"high_fill_threshold"`
	HighFillLimit     int `yaml:"high_fill_limit"`
	TrendDays         int `yaml:"trend_days"`
	CollectionWindow  int `yaml:"collection_window"`
}

// JobsConfig captures background worker behaviour.
type JobsConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	AgingInterval   time.Duration `yaml:"aging_interval"`
	BatchSize       int           `yaml:"batch_size"`
}

// HTTPConfig captures the optional HTTP adapter mount point.
type HTTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BasePath string `yaml:"base_path"`
}

// Features toggles module functionality.
type Features struct {
	Scheduling    bool `yaml:"scheduling"`
	AdvancedCache bool `yaml:"advanced_cache"`
	Logger        bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults for a single-city deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Ingest: IngestConfig{
			Snapshot:    "data/container_data.json",
			SnapshotTTL: 24 * time.Hour,
		},
		Dashboard: DashboardConfig{
			HighFillThreshold: 80,
			HighFillLimit:     5,
			TrendDays:         10,
			CollectionWindow:  30,
		},
		Jobs: JobsConfig{
			RefreshInterval: 24 * time.Hour,
			AgingInterval:   time.Hour,
			BatchSize:       50,
		},
		HTTP: HTTPConfig{
			BasePath: "/api",
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate checks cross-field consistency before the module boots.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Ingest.Enabled {
		if strings.TrimSpace(cfg.Ingest.SourceURL) == "" {
			return ErrIngestSourceRequired
		}
		if strings.TrimSpace(cfg.Ingest.Snapshot) == "" {
			return ErrIngestSnapshotPathRequired
		}
	}
	if cfg.Ingest.SnapshotTTL < 0 {
		return ErrIngestSnapshotTTLInvalid
	}
	if cfg.Ingest.AutoRefresh && !cfg.Features.Scheduling {
		return ErrSchedulingRequiredForAutoRefresh
	}
	if cfg.Dashboard.HighFillThreshold < 0 || cfg.Dashboard.HighFillThreshold > 100 {
		return ErrHighFillThresholdInvalid
	}
	if cfg.Dashboard.TrendDays < 1 {
		return ErrTrendWindowInvalid
	}
	if cfg.Dashboard.CollectionWindow < 1 {
		return fmt.Errorf("%w: collection window", ErrTrendWindowInvalid)
	}
	if cfg.Features.Scheduling {
		if cfg.Jobs.RefreshInterval <= 0 || cfg.Jobs.AgingInterval <= 0 {
			return ErrJobIntervalInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
