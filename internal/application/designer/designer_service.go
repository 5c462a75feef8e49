// Package designer contains the application-level lifecycle controller for
// the voucher layout designer: load, edit, validate, save, discard.
package designer

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahmudadem/ERP03-sub002/internal/domain/designer"
	"github.com/mahmudadem/ERP03-sub002/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SessionState tracks where a designer edit session is in its lifecycle
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionLoading SessionState = "loading"
	SessionLoaded  SessionState = "loaded"
	SessionEditing SessionState = "editing"
	SessionSaving  SessionState = "saving"
)

// DesignerService orchestrates one voucher layout edit session. It holds two
// slots: the canonical definition captured at load time and the ephemeral
// layout derived from it. Only one layout exists per service instance;
// reconciliation is always computed against the load-time original, never a
// re-fetched copy.
type DesignerService struct {
	repo     designer.DefinitionRepository
	registry *designer.Registry
	logger   *zap.Logger
	monitor  designer.ViolationMonitor

	companyID uuid.UUID
	code      designer.VoucherCode
	mode      designer.DisplayMode

	state             SessionState
	originalCanonical *designer.VoucherTypeDefinition
	layout            *designer.VoucherLayoutV2
}

// NewDesignerService creates a designer lifecycle controller. The monitor
// may be nil; persistence-guard violations are then only logged.
func NewDesignerService(
	repo designer.DefinitionRepository,
	registry *designer.Registry,
	logger *zap.Logger,
	monitor designer.ViolationMonitor,
) *DesignerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesignerService{
		repo:     repo,
		registry: registry,
		logger:   logger,
		monitor:  monitor,
		state:    SessionIdle,
	}
}

// State returns the current session state
func (s *DesignerService) State() SessionState {
	return s.state
}

// Layout returns the current ephemeral layout, nil outside an edit session
func (s *DesignerService) Layout() *designer.VoucherLayoutV2 {
	return s.layout
}

// Original returns the canonical definition captured at load time
func (s *DesignerService) Original() *designer.VoucherTypeDefinition {
	return s.originalCanonical
}

// Load fetches the canonical definition for a voucher code and derives a
// fresh layout from it. A definition that is not schema V2 fails the load
// entirely; no partial session state is kept.
func (s *DesignerService) Load(ctx context.Context, companyID uuid.UUID, code designer.VoucherCode, mode designer.DisplayMode) (*designer.VoucherLayoutV2, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher_designer", "load")
	defer span.End()
	telemetry.SetAttributes(span,
		"company_id", companyID.String(),
		"voucher_code", code.String(),
	)

	prevState := s.state
	s.state = SessionLoading

	def, err := s.repo.Get(ctx, companyID, code)
	if err != nil {
		telemetry.RecordError(span, err)
		s.state = prevState
		return nil, err
	}
	if def.SchemaVersion != designer.SchemaVersionV2 {
		err := &designer.SchemaVersionError{Version: def.SchemaVersion}
		telemetry.RecordError(span, err)
		s.state = prevState
		return nil, err
	}

	layout, err := designer.CanonicalToLayout(def, mode, s.registry)
	if err != nil {
		telemetry.RecordError(span, err)
		s.state = prevState
		return nil, err
	}

	// Session identity moves together with the session slots: a failed load
	// must leave the previous session fully intact, scope included, or a
	// later Save would reconcile onto the wrong voucher type.
	s.companyID = companyID
	s.code = code
	s.mode = mode
	s.originalCanonical = def
	s.layout = layout
	s.state = SessionLoaded

	s.logger.Info("designer session loaded",
		zap.String("voucher_code", code.String()),
		zap.String("company_id", companyID.String()),
		zap.Int("body_fields", len(layout.Body.Fields)),
	)
	return layout, nil
}

// UpdateLayout replaces the in-memory layout with the edited one. No I/O
// happens here; edits only become durable through Save.
func (s *DesignerService) UpdateLayout(edited *designer.VoucherLayoutV2) error {
	if s.originalCanonical == nil || s.layout == nil {
		return &designer.PreconditionError{Message: "no designer session loaded"}
	}
	if edited == nil {
		return &designer.PreconditionError{Message: "edited layout is nil"}
	}
	s.layout = edited
	s.state = SessionEditing
	return nil
}

// Save reconciles the edited layout into the canonical definition, runs the
// forbidden-change validator and the persistence guard, persists the result,
// and reloads a fresh session.
//
// A failure before the repository call preserves the in-memory layout so the
// user can correct and retry. Once a save attempt has reached the
// repository, the layout is discarded unconditionally: a layout that has
// been turned into a save attempt must never be reused. A failed persist
// therefore ends the session entirely; the next edit starts with a fresh
// Load.
func (s *DesignerService) Save(ctx context.Context) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher_designer", "save")
	defer span.End()

	if s.originalCanonical == nil || s.layout == nil {
		err := &designer.PreconditionError{Message: "save requires a loaded canonical definition and an edited layout"}
		telemetry.RecordError(span, err)
		return err
	}

	telemetry.SetAttributes(span,
		"company_id", s.companyID.String(),
		"voucher_code", s.code.String(),
	)

	prevState := s.state
	s.state = SessionSaving

	updated, err := designer.ApplyLayoutToCanonical(s.originalCanonical, s.layout)
	if err != nil {
		telemetry.RecordError(span, err)
		s.state = prevState
		return err
	}

	if err := designer.ValidateNoForbiddenChanges(s.originalCanonical, updated); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("reconciliation produced forbidden changes",
			zap.String("voucher_code", s.code.String()),
			zap.Error(err),
		)
		s.state = prevState
		return err
	}

	if err := designer.AssertNotLayout(updated, "pre-save"); err != nil {
		telemetry.RecordError(span, err)
		s.reportViolation(ctx, err)
		s.state = prevState
		return err
	}

	if updated.SchemaVersion != designer.SchemaVersionV2 {
		err := &designer.SchemaVersionError{Version: updated.SchemaVersion}
		telemetry.RecordError(span, err)
		s.state = prevState
		return err
	}

	persistErr := s.repo.Update(ctx, updated)
	s.layout = nil
	if persistErr != nil {
		telemetry.RecordError(span, persistErr)
		// The session ends here: keeping the canonical slot without a layout
		// would leave a state no operation can act on. The user starts over
		// with a fresh Load.
		s.originalCanonical = nil
		s.state = SessionIdle
		return persistErr
	}

	s.logger.Info("voucher layout saved",
		zap.String("voucher_code", s.code.String()),
		zap.String("company_id", s.companyID.String()),
	)
	if m, ok := s.monitor.(interface {
		RecordLayoutSaved(ctx context.Context, voucherCode string)
	}); ok {
		m.RecordLayoutSaved(ctx, s.code.String())
	}

	// Regenerate a fresh layout from the now-authoritative saved canonical.
	if _, err := s.Load(ctx, s.companyID, s.code, s.mode); err != nil {
		s.state = SessionIdle
		return err
	}
	return nil
}

// Discard abandons the edit session without saving. Nothing was mutated in
// place, so no rollback is needed.
func (s *DesignerService) Discard() {
	s.layout = nil
	s.originalCanonical = nil
	s.state = SessionIdle
}

func (s *DesignerService) reportViolation(ctx context.Context, err error) {
	violation, ok := err.(*designer.PersistenceViolationError)
	if !ok {
		return
	}
	s.logger.Error("persistence guard rejected a layout-shaped object",
		zap.String("guard_context", violation.Context),
		zap.Strings("reasons", violation.Reasons),
		zap.String("voucher_code", s.code.String()),
	)
	if s.monitor != nil {
		s.monitor.RecordPersistenceViolation(ctx, violation.Context, violation.Reasons)
	}
}
