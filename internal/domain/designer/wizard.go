package designer

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mahmudadem/ERP03-sub002/internal/domain/shared"
)

// WizardStep identifies one step of the voucher configuration wizard
type WizardStep string

const (
	StepSelectType     WizardStep = "SELECT_TYPE"
	StepFieldSelection WizardStep = "FIELD_SELECTION"
	StepLineConfig     WizardStep = "LINE_CONFIG"
	StepLayoutEditor   WizardStep = "LAYOUT_EDITOR"
	StepValidation     WizardStep = "VALIDATION"
	StepReview         WizardStep = "REVIEW"
)

// wizardSteps is the fixed step order; navigation moves one position at a
// time and out-of-range moves are no-ops.
var wizardSteps = []WizardStep{
	StepSelectType,
	StepFieldSelection,
	StepLineConfig,
	StepLayoutEditor,
	StepValidation,
	StepReview,
}

// FieldOverlay is a partial field customization: only the properties the
// user changed relative to the registry default. Computed by diffing, never
// stored wholesale, which keeps the overlay minimal and makes reset-to-
// default a matter of deleting the entry.
type FieldOverlay struct {
	Label       *string     `json:"label,omitempty"`
	Width       *FieldWidth `json:"width,omitempty"`
	Style       *string     `json:"style,omitempty"`
	Placeholder *string     `json:"placeholder,omitempty"`
}

// IsEmpty reports whether the overlay changes nothing
func (o FieldOverlay) IsEmpty() bool {
	return o.Label == nil && o.Width == nil && o.Style == nil && o.Placeholder == nil
}

// ValidationIssue is an advisory finding from the wizard's validation step
type ValidationIssue struct {
	Severity string `json:"severity"` // error, warning
	Message  string `json:"message"`
}

// WizardSummary is the review-step digest of the configured voucher type
type WizardSummary struct {
	VoucherType        VoucherCode `json:"voucher_type"`
	CoreFieldCount     int         `json:"core_field_count"`
	SharedFieldCount   int         `json:"shared_field_count"`
	PersonalFieldCount int         `json:"personal_field_count"`
	CustomizedFieldIDs []string    `json:"customized_field_ids"`
	LineColumnIDs      []string    `json:"line_column_ids"`
}

// Wizard drives the multi-step voucher type configuration flow. Each
// instance owns its own selection and overlay state; nothing is shared
// across concurrent wizard runs.
type Wizard struct {
	id       uuid.UUID
	registry *Registry

	stepIdx          int
	voucherType      VoucherCode
	selectedFieldIDs []string
	fields           []FieldDefinitionV2
	lineColumnIDs    []string
	overlay          map[string]FieldOverlay
	personal         map[string]FieldDefinitionV2
}

// NewWizard creates a wizard positioned on the type-selection step
func NewWizard(registry *Registry) *Wizard {
	return &Wizard{
		id:       uuid.New(),
		registry: registry,
		overlay:  make(map[string]FieldOverlay),
		personal: make(map[string]FieldDefinitionV2),
	}
}

// ID returns the wizard session id
func (w *Wizard) ID() uuid.UUID {
	return w.id
}

// CurrentStep returns the step the wizard is on
func (w *Wizard) CurrentStep() WizardStep {
	return wizardSteps[w.stepIdx]
}

// VoucherType returns the chosen voucher code, empty until selected
func (w *Wizard) VoucherType() VoucherCode {
	return w.voucherType
}

// CanProceed reports whether forward navigation past the given step is
// allowed. The validation step is advisory and always passable; the
// save-time forbidden-change validator remains the enforced backstop.
func (w *Wizard) CanProceed(step WizardStep) bool {
	switch step {
	case StepSelectType:
		return w.voucherType != ""
	case StepFieldSelection:
		if w.voucherType == "" {
			return false
		}
		check, err := w.registry.ValidateCoreFieldsPresent(w.voucherType, w.selectedFieldIDs)
		return err == nil && check.Valid
	case StepLayoutEditor:
		return len(w.selectedFieldIDs) > 0
	default:
		return true
	}
}

// NextStep advances one step when the current step's gate passes. Returns
// false, without moving, when the gate fails or the wizard is on the last
// step.
func (w *Wizard) NextStep() bool {
	if w.stepIdx >= len(wizardSteps)-1 {
		return false
	}
	if !w.CanProceed(w.CurrentStep()) {
		return false
	}
	w.stepIdx++
	return true
}

// PrevStep moves one step back; a no-op on the first step
func (w *Wizard) PrevStep() bool {
	if w.stepIdx == 0 {
		return false
	}
	w.stepIdx--
	return true
}

// SelectVoucherType chooses the voucher type and seeds the field selection
// with that type's CORE field ids. Seeding is a union: previously selected
// ids are never removed, and re-selecting the same type is idempotent. Line
// columns are seeded with the essential set for table-based vouchers.
func (w *Wizard) SelectVoucherType(code VoucherCode) error {
	reg, err := w.registry.VoucherType(code)
	if err != nil {
		return err
	}
	w.voucherType = code
	for _, id := range reg.CoreFieldIDs() {
		w.selectField(id)
	}
	if code.UsesLineTable() && len(w.lineColumnIDs) == 0 {
		for _, col := range w.registry.EssentialLineColumns() {
			w.lineColumnIDs = append(w.lineColumnIDs, col.ID)
		}
	}
	return nil
}

func (w *Wizard) selectField(id string) {
	for _, existing := range w.selectedFieldIDs {
		if existing == id {
			return
		}
	}
	w.selectedFieldIDs = append(w.selectedFieldIDs, id)
}

// SelectField adds a field id to the selection; duplicates are ignored
func (w *Wizard) SelectField(id string) {
	w.selectField(id)
}

// DeselectField removes a field id from the selection. Removing a CORE id
// is not an error here; it simply blocks the field-selection gate until the
// id is added back.
func (w *Wizard) DeselectField(id string) {
	for i, existing := range w.selectedFieldIDs {
		if existing == id {
			w.selectedFieldIDs = append(w.selectedFieldIDs[:i], w.selectedFieldIDs[i+1:]...)
			return
		}
	}
}

// SelectedFieldIDs returns the current selection in order
func (w *Wizard) SelectedFieldIDs() []string {
	out := make([]string, len(w.selectedFieldIDs))
	copy(out, w.selectedFieldIDs)
	return out
}

// UpdateFields records the editor's current field list and recomputes the
// customization overlay. CORE and SHARED fields are diffed against their
// registry default and only the changed presentation properties are kept;
// an empty diff deletes the overlay entry. PERSONAL fields have no registry
// default and are stored whole. The update is all-or-nothing: a rejected
// field leaves the wizard exactly as it was.
func (w *Wizard) UpdateFields(fields []FieldDefinitionV2) error {
	if w.voucherType == "" {
		return &PreconditionError{Message: "no voucher type selected"}
	}
	reg, err := w.registry.VoucherType(w.voucherType)
	if err != nil {
		return err
	}

	next := make([]FieldDefinitionV2, len(fields))
	overlay := make(map[string]FieldOverlay, len(w.overlay))
	for k, v := range w.overlay {
		overlay[k] = v
	}
	personal := make(map[string]FieldDefinitionV2, len(w.personal))
	for k, v := range w.personal {
		personal[k] = v
	}

	for i, f := range fields {
		next[i] = f.Clone()

		if f.Category == CategoryPersonal {
			personal[f.ID] = f.Clone()
			continue
		}
		def := reg.FieldByID(f.ID)
		if def == nil {
			return shared.NewDomainError("UNKNOWN_SYSTEM_FIELD", fmt.Sprintf("Field %s has category %s but no registry default", f.ID, f.Category))
		}
		o := diffFieldOverlay(f, *def)
		if o.IsEmpty() {
			delete(overlay, f.ID)
		} else {
			overlay[f.ID] = o
		}
	}

	w.fields = next
	w.overlay = overlay
	w.personal = personal
	return nil
}

// diffFieldOverlay computes the partial customization of a field relative to
// its registry default. Only presentation properties participate.
func diffFieldOverlay(current, def FieldDefinitionV2) FieldOverlay {
	var o FieldOverlay
	if current.Label != def.Label {
		v := current.Label
		o.Label = &v
	}
	if current.Width != def.Width {
		v := current.Width
		o.Width = &v
	}
	if current.Style != def.Style {
		v := current.Style
		o.Style = &v
	}
	if current.Placeholder != def.Placeholder {
		v := current.Placeholder
		o.Placeholder = &v
	}
	return o
}

// Overlay returns a copy of the customization overlay keyed by field id
func (w *Wizard) Overlay() map[string]FieldOverlay {
	out := make(map[string]FieldOverlay, len(w.overlay))
	for k, v := range w.overlay {
		out[k] = v
	}
	return out
}

// OverlayFor returns the overlay entry for a field, if any
func (w *Wizard) OverlayFor(fieldID string) (FieldOverlay, bool) {
	o, ok := w.overlay[fieldID]
	return o, ok
}

// ResetField drops a field's customization, restoring the registry default
func (w *Wizard) ResetField(fieldID string) {
	delete(w.overlay, fieldID)
}

// AddLineColumn adds an optional line column to the configuration
func (w *Wizard) AddLineColumn(id string) error {
	if w.registry.LineColumnByID(id) == nil {
		return shared.NewDomainError("UNKNOWN_LINE_COLUMN", fmt.Sprintf("Line column %s is not defined by the system", id))
	}
	for _, existing := range w.lineColumnIDs {
		if existing == id {
			return nil
		}
	}
	w.lineColumnIDs = append(w.lineColumnIDs, id)
	return nil
}

// RemoveLineColumn removes a line column. Essential columns (account, debit,
// credit) can never be removed.
func (w *Wizard) RemoveLineColumn(id string) error {
	if w.registry.IsEssentialColumn(id) {
		return shared.NewDomainError("ESSENTIAL_COLUMN", fmt.Sprintf("Line column %s is essential and cannot be removed", id))
	}
	for i, existing := range w.lineColumnIDs {
		if existing == id {
			w.lineColumnIDs = append(w.lineColumnIDs[:i], w.lineColumnIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

// LineColumnIDs returns the configured line columns in order
func (w *Wizard) LineColumnIDs() []string {
	out := make([]string, len(w.lineColumnIDs))
	copy(out, w.lineColumnIDs)
	return out
}

// Validate computes the advisory findings shown on the validation step. A
// failing validation does not block navigation.
func (w *Wizard) Validate() []ValidationIssue {
	var issues []ValidationIssue
	if w.voucherType == "" {
		issues = append(issues, ValidationIssue{Severity: "error", Message: "No voucher type selected"})
		return issues
	}
	check, err := w.registry.ValidateCoreFieldsPresent(w.voucherType, w.selectedFieldIDs)
	if err == nil && !check.Valid {
		for _, id := range check.MissingFields {
			issues = append(issues, ValidationIssue{Severity: "error", Message: fmt.Sprintf("Required field %s is missing from the selection", id)})
		}
	}
	if len(w.selectedFieldIDs) == 0 {
		issues = append(issues, ValidationIssue{Severity: "error", Message: "The voucher has no fields"})
	}
	if w.voucherType.UsesLineTable() {
		for _, col := range w.registry.EssentialLineColumns() {
			found := false
			for _, id := range w.lineColumnIDs {
				if id == col.ID {
					found = true
					break
				}
			}
			if !found {
				issues = append(issues, ValidationIssue{Severity: "error", Message: fmt.Sprintf("Essential line column %s is missing", col.ID)})
			}
		}
	}
	if len(w.overlay) > len(w.selectedFieldIDs) {
		issues = append(issues, ValidationIssue{Severity: "warning", Message: "Customizations exist for fields no longer selected"})
	}
	return issues
}

// Summary builds the review-step digest
func (w *Wizard) Summary() WizardSummary {
	s := WizardSummary{
		VoucherType:   w.voucherType,
		LineColumnIDs: w.LineColumnIDs(),
	}
	for _, f := range w.fields {
		switch f.Category {
		case CategoryCore:
			s.CoreFieldCount++
		case CategoryShared:
			s.SharedFieldCount++
		case CategoryPersonal:
			s.PersonalFieldCount++
		}
	}
	for id := range w.overlay {
		s.CustomizedFieldIDs = append(s.CustomizedFieldIDs, id)
	}
	sort.Strings(s.CustomizedFieldIDs)
	return s
}

// Reset returns the wizard to the type-selection step and clears all state
func (w *Wizard) Reset() {
	w.stepIdx = 0
	w.voucherType = ""
	w.selectedFieldIDs = nil
	w.fields = nil
	w.lineColumnIDs = nil
	w.overlay = make(map[string]FieldOverlay)
	w.personal = make(map[string]FieldDefinitionV2)
}

// PersonalFields returns the user-private fields stored whole
func (w *Wizard) PersonalFields() []FieldDefinitionV2 {
	out := make([]FieldDefinitionV2, 0, len(w.personal))
	for _, f := range w.personal {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
