package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-attackboard/config"
	"go-attackboard/db"
	"go-attackboard/geocode"
	"go-attackboard/loader"
	"go-attackboard/metrics"
	"go-attackboard/types"
	"go-attackboard/views"

	"go.uber.org/zap"
)

// LoadRecords reads the configured source and, when enabled, backfills missing
// coordinates. Any failure here is fatal for the process.
func LoadRecords(ctx context.Context, cfg config.AttackboardConfig, logger *zap.Logger) ([]types.AttackRecord, error) {
	var records []types.AttackRecord

	switch strings.ToLower(cfg.Source.Kind) {
	case "firestore":
		client, err := db.InitFirestore(ctx, cfg.Source.FirebaseCredentials)
		if err != nil {
			return nil, fmt.Errorf("connecting to Firestore: %w", err)
		}
		records, err = db.GetAttackRecords(ctx, client, cfg.Source.Collection)
		if err != nil {
			return nil, fmt.Errorf("loading attack records from %s: %w", cfg.Source.Collection, err)
		}
		logger.Info("Loaded attack records",
			zap.String("source", "firestore"),
			zap.String("collection", cfg.Source.Collection),
			zap.Int("rows", len(records)))
	default:
		var err error
		records, _, err = loader.LoadCSV(ctx, cfg.Source.Path, cfg.Source.Timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("loading attack records: %w", err)
		}
	}

	if !cfg.Geocode.Enabled {
		return records, nil
	}
	client, err := geocode.NewMapsClient(cfg.Geocode.APIKey)
	if err != nil {
		logger.Warn("Skipping geocode backfill", zap.Error(err))
		return records, nil
	}
	records, _ = geocode.Backfill(ctx, client, records, logger)
	return records, nil
}

// LoadDashboard loads the records and derives every view from them.
func LoadDashboard(ctx context.Context, cfg config.AttackboardConfig, logger *zap.Logger, m *metrics.Metrics) (*views.Dashboard, error) {
	start := time.Now()

	records, err := LoadRecords(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dashboard := BuildDashboard(records, cfg.Dashboard)
	took := time.Since(start)

	if m != nil {
		m.ObserveDataset(dashboard.Summary.TotalAttacks, dashboard.Summary.TotalCasualties, len(dashboard.Map.Markers), took)
	}
	logger.Info("Dashboard built",
		zap.Int("attacks", dashboard.Summary.TotalAttacks),
		zap.Int("casualties", dashboard.Summary.TotalCasualties),
		zap.Int("markers", len(dashboard.Map.Markers)),
		zap.Int("mergedEvents", dashboard.MergedEvents),
		zap.Duration("took", took))
	if dashboard.MergedEvents > 0 {
		logger.Warn("Map events merged from duplicate rows; casualties were summed",
			zap.Int("events", dashboard.MergedEvents))
	}
	return dashboard, nil
}

// BuildDashboard maps dashboard config onto view options.
func BuildDashboard(records []types.AttackRecord, cfg config.DashboardConfig) *views.Dashboard {
	return views.Build(records, views.Options{
		Title:     cfg.Title,
		Subtitle:  cfg.Subtitle,
		PageSize:  cfg.PageSize,
		MapCenter: cfg.MapCenter,
		MapZoom:   cfg.MapZoom,
	})
}
