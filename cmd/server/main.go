package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	wasteops "github.com/goliatone/go-wasteops"
	"github.com/goliatone/go-wasteops/internal/di"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address for the HTTP API")
		dsn        = flag.String("dsn", "file:wasteops.db?_fk=1", "sqlite DSN for persistent storage")
		configFile = flag.String("config", "", "path to a YAML config file with module overrides")
		logLevel   = flag.String("log-level", "info", "minimum log level")
		seed       = flag.Bool("seed", false, "populate the database with demo data on boot")
		refresh    = flag.Bool("refresh", false, "schedule automatic dataset refreshes")
	)
	flag.Parse()

	if err := run(*addr, *dsn, *configFile, *logLevel, *seed, *refresh); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(addr, dsn, configFile, logLevel string, seed, refresh bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Features.Logger = true
	cfg.Features.Scheduling = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = logLevel
	if refresh {
		cfg.Ingest.Enabled = true
		cfg.Ingest.SourceURL = envOr("WASTEOPS_DATASET_URL", defaultDatasetURL)
		cfg.Ingest.AutoRefresh = true
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	defer bunDB.Close()

	if err := applyMigrations(ctx, bunDB); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	module, err := wasteops.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		return fmt.Errorf("initialise module: %w", err)
	}

	if _, err := module.Neighborhoods().EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed neighborhoods: %w", err)
	}
	if seed {
		summary, err := module.SeedSampleData(ctx)
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		log.Printf("seeded %d containers, %d collection records, %d complaints",
			summary.Containers, summary.CollectionRecords, summary.Complaints)
	}

	if err := module.Jobs().ScheduleRecurring(ctx); err != nil {
		return fmt.Errorf("schedule recurring jobs: %w", err)
	}
	go runWorker(ctx, module)

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runWorker(ctx context.Context, module *wasteops.Module) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := module.Jobs().Process(ctx); err != nil {
				log.Printf("process jobs: %v", err)
			}
		}
	}
}

func applyMigrations(ctx context.Context, db *bun.DB) error {
	migrations := wasteops.GetMigrationsFS()
	entries, err := fs.Glob(migrations, "data/sql/migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := fs.ReadFile(migrations, name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func loadConfig(path string) (wasteops.Config, error) {
	cfg := wasteops.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

const defaultDatasetURL = "https://api.data.amsterdam.nl/v1/huishoudelijkafval/container/"
