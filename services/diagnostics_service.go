package services

import (
	"context"
	"fmt"

	"storefront-service/common/logger"

	"go.uber.org/zap"
)

const maxListedCollections = 10

// Prober is the part of *database.Store used for diagnostics.
type Prober interface {
	Connected() bool
	Name() string
	Ping(ctx context.Context) error
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// CacheProber is the part of *cache.ProductCache used for diagnostics.
type CacheProber interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// DiagnosticsReport is the body of GET /test.
type DiagnosticsReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Cache            string   `json:"cache"`
}

// DiagnosticsService probes the storage and cache side channels. It never
// fails: errors are reported as text inside the report.
type DiagnosticsService interface {
	Report(ctx context.Context) DiagnosticsReport
}

type diagnosticsServiceImpl struct {
	store          Prober
	cache          CacheProber
	databaseURLSet bool
	logger         *zap.Logger
}

func NewDiagnosticsService(store Prober, cacheProber CacheProber, databaseURLSet bool, logger *zap.Logger) DiagnosticsService {
	return &diagnosticsServiceImpl{
		store:          store,
		cache:          cacheProber,
		databaseURLSet: databaseURLSet,
		logger:         logger,
	}
}

func (s *diagnosticsServiceImpl) Report(ctx context.Context) DiagnosticsReport {
	report := DiagnosticsReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Cache:            s.cacheStatus(ctx),
	}

	if s.store == nil || !s.store.Connected() {
		return report
	}

	report.Database = "✅ Available"
	urlStatus := "❌ Not Set"
	if s.databaseURLSet {
		urlStatus = "✅ Set"
	}
	report.DatabaseURL = &urlStatus
	name := s.store.Name()
	report.DatabaseName = &name
	report.ConnectionStatus = "Connected"

	if err := s.store.Ping(ctx); err != nil {
		s.log(ctx).Warn("Database ping failed", zap.Error(err))
		report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		return report
	}

	names, err := s.store.ListCollectionNames(ctx)
	if err != nil {
		s.log(ctx).Warn("Listing collections failed", zap.Error(err))
		report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		return report
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	if names != nil {
		report.Collections = names
	}
	report.Database = "✅ Connected & Working"
	return report
}

func (s *diagnosticsServiceImpl) cacheStatus(ctx context.Context) string {
	if s.cache == nil || !s.cache.Enabled() {
		return "disabled"
	}
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Sprintf("⚠️  Error: %s", truncate(err.Error(), 50))
	}
	return "✅ Connected"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (s *diagnosticsServiceImpl) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}
