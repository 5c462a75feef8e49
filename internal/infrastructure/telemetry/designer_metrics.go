package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// MeterName is the meter name for designer metrics
const MeterName = "voucher-designer"

// DesignerMetrics tracks designer health signals. The persistence-violation
// counter is the alerting channel behind the layout persistence guard: any
// non-zero value means a latent data-corruption bug, so it should be paged
// on, not merely graphed.
type DesignerMetrics struct {
	logger *zap.Logger

	persistenceViolations metric.Int64Counter
	layoutsSaved          metric.Int64Counter
}

// NewDesignerMetrics creates the designer metric set on the global meter
// provider
func NewDesignerMetrics(logger *zap.Logger) (*DesignerMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	meter := otel.GetMeterProvider().Meter(MeterName)

	violations, err := meter.Int64Counter(
		"designer_persistence_violations_total",
		metric.WithDescription("Layout-shaped objects rejected by the persistence guard"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create violation counter: %w", err)
	}
	saved, err := meter.Int64Counter(
		"designer_layouts_saved_total",
		metric.WithDescription("Voucher layout reconciliations persisted"),
		metric.WithUnit("{save}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create save counter: %w", err)
	}

	return &DesignerMetrics{
		logger:                logger,
		persistenceViolations: violations,
		layoutsSaved:          saved,
	}, nil
}

// RecordPersistenceViolation implements designer.ViolationMonitor
func (m *DesignerMetrics) RecordPersistenceViolation(ctx context.Context, guardContext string, reasons []string) {
	m.persistenceViolations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("guard_context", guardContext),
	))
	m.logger.Error("persistence guard violation recorded",
		zap.String("guard_context", guardContext),
		zap.Strings("reasons", reasons),
	)
}

// RecordLayoutSaved counts a persisted reconciliation
func (m *DesignerMetrics) RecordLayoutSaved(ctx context.Context, voucherCode string) {
	m.layoutsSaved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("voucher_code", voucherCode),
	))
}
