package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

const (
	rootModule          = "waste"
	containersModule    = "waste.containers"
	complaintsModule    = "waste.complaints"
	collectionsModule   = "waste.collections"
	neighborhoodsModule = "waste.neighborhoods"
	reportsModule       = "waste.reports"
	ingestModule        = "waste.ingest"
	schedulerModule     = "waste.scheduler"
	httpModule          = "waste.http"
)

const (
	fieldIngestSource   = "source"
	fieldIngestSnapshot = "snapshot_path"
	fieldIngestAction   = "ingest_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContainersLogger returns the logger namespace reserved for the container fleet service.
func ContainersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, containersModule)
}

// ComplaintsLogger returns the logger namespace reserved for the complaints service.
func ComplaintsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, complaintsModule)
}

// CollectionsLogger returns the logger namespace reserved for collection tonnage services.
func CollectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, collectionsModule)
}

// NeighborhoodsLogger returns the logger namespace reserved for neighborhood statistics.
func NeighborhoodsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, neighborhoodsModule)
}

// ReportsLogger returns the logger namespace reserved for dashboard aggregation.
func ReportsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, reportsModule)
}

// IngestLogger returns the logger namespace reserved for dataset ingestion.
func IngestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ingestModule)
}

// SchedulerLogger returns the logger namespace reserved for scheduler workers.
func SchedulerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, schedulerModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithIngestContext enriches the provided logger with common ingestion fields
// such as the source endpoint, snapshot path and action. Empty values are ignored.
func WithIngestContext(logger interfaces.Logger, source, snapshotPath, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldIngestSource] = trimmed
	}
	if trimmed := strings.TrimSpace(snapshotPath); trimmed != "" {
		fields[fieldIngestSnapshot] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldIngestAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
