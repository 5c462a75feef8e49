package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mahmudadem/ERP03-sub002/internal/domain/designer"
)

func TestNewDesignerMetrics(t *testing.T) {
	t.Run("creates counters on the global meter", func(t *testing.T) {
		metrics, err := NewDesignerMetrics(zap.NewNop())
		require.NoError(t, err)
		require.NotNil(t, metrics)
	})

	t.Run("accepts a nil logger", func(t *testing.T) {
		metrics, err := NewDesignerMetrics(nil)
		require.NoError(t, err)
		require.NotNil(t, metrics)
	})

	t.Run("satisfies the violation monitor contract", func(t *testing.T) {
		metrics, err := NewDesignerMetrics(zap.NewNop())
		require.NoError(t, err)
		var _ designer.ViolationMonitor = metrics
	})
}

func TestRecordPersistenceViolation(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	metrics, err := NewDesignerMetrics(zap.New(core))
	require.NoError(t, err)

	metrics.RecordPersistenceViolation(context.Background(), "pre-save", []string{
		"object carries the layout marker",
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "persistence guard violation recorded", entry.Message)
	assert.Equal(t, "pre-save", entry.ContextMap()["guard_context"])
}

func TestRecordLayoutSaved(t *testing.T) {
	metrics, err := NewDesignerMetrics(zap.NewNop())
	require.NoError(t, err)

	// No meter provider installed: the counter is a no-op and must not panic.
	metrics.RecordLayoutSaved(context.Background(), "PAYMENT")
}

func TestStartServiceSpan(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "voucher_designer", "load")
	require.NotNil(t, span)
	defer span.End()

	assert.NotNil(t, trace.SpanFromContext(ctx))
	SetAttributes(span, "voucher_code", "PAYMENT", "body_fields", 6)
	RecordError(span, errors.New("boom"))
}
