package designer

import "fmt"

// LineColumn is a system-defined voucher line-table column
type LineColumn struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Type      FieldType  `json:"type"`
	Width     FieldWidth `json:"width"`
	Essential bool       `json:"essential"`
}

// VoucherTypeRegistry is the system field catalog for one voucher code: the
// backend's contractual CORE field set plus the optional SHARED fields.
type VoucherTypeRegistry struct {
	Code         VoucherCode
	CoreFields   []FieldDefinitionV2
	SharedFields []FieldDefinitionV2
}

// CoreFieldIDs returns the ids of all CORE fields
func (r VoucherTypeRegistry) CoreFieldIDs() []string {
	ids := make([]string, 0, len(r.CoreFields))
	for _, f := range r.CoreFields {
		ids = append(ids, f.ID)
	}
	return ids
}

// FieldByID returns the registry-default field with the given id, or nil
func (r VoucherTypeRegistry) FieldByID(id string) *FieldDefinitionV2 {
	for i := range r.CoreFields {
		if r.CoreFields[i].ID == id {
			return &r.CoreFields[i]
		}
	}
	for i := range r.SharedFields {
		if r.SharedFields[i].ID == id {
			return &r.SharedFields[i]
		}
	}
	return nil
}

// CoreFieldCheck is the result of a core-field presence check
type CoreFieldCheck struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Registry is the system field registry for all voucher types. It is
// constructed once at startup and passed by reference into the converters and
// the lifecycle controller, so tests can substitute fixture registries
// without module-global mutation.
type Registry struct {
	types         map[VoucherCode]VoucherTypeRegistry
	essentialCols []LineColumn
	optionalCols  []LineColumn
}

// VoucherType returns the field catalog for one of the four voucher codes
func (r *Registry) VoucherType(code VoucherCode) (VoucherTypeRegistry, error) {
	reg, ok := r.types[code]
	if !ok {
		return VoucherTypeRegistry{}, &UnknownVoucherTypeError{Code: string(code)}
	}
	return reg, nil
}

// ValidateCoreFieldsPresent checks that every CORE field id of the given
// voucher type appears in the user's current field selection. It is the gate
// used by the wizard's field-selection step.
func (r *Registry) ValidateCoreFieldsPresent(code VoucherCode, userFieldIDs []string) (CoreFieldCheck, error) {
	reg, err := r.VoucherType(code)
	if err != nil {
		return CoreFieldCheck{}, err
	}
	selected := make(map[string]struct{}, len(userFieldIDs))
	for _, id := range userFieldIDs {
		selected[id] = struct{}{}
	}
	check := CoreFieldCheck{Valid: true}
	for _, f := range reg.CoreFields {
		if _, ok := selected[f.ID]; !ok {
			check.Valid = false
			check.MissingFields = append(check.MissingFields, f.ID)
		}
	}
	return check, nil
}

// EssentialLineColumns returns the columns that can never be removed or
// reordered out of the line table
func (r *Registry) EssentialLineColumns() []LineColumn {
	out := make([]LineColumn, len(r.essentialCols))
	copy(out, r.essentialCols)
	return out
}

// OptionalLineColumns returns the columns that may be freely added, removed
// and reordered
func (r *Registry) OptionalLineColumns() []LineColumn {
	out := make([]LineColumn, len(r.optionalCols))
	copy(out, r.optionalCols)
	return out
}

// IsEssentialColumn is the single predicate consulted before any
// column-removal action is permitted
func (r *Registry) IsEssentialColumn(id string) bool {
	for _, c := range r.essentialCols {
		if c.ID == id {
			return true
		}
	}
	return false
}

// LineColumnByID returns the system column definition for an id, or nil
func (r *Registry) LineColumnByID(id string) *LineColumn {
	for i := range r.essentialCols {
		if r.essentialCols[i].ID == id {
			return &r.essentialCols[i]
		}
	}
	for i := range r.optionalCols {
		if r.optionalCols[i].ID == id {
			return &r.optionalCols[i]
		}
	}
	return nil
}

// ValidateFieldRegistry checks the structural invariants of one voucher
// type's catalog and returns the list of violations. This is a registry
// self-test run at startup, not a runtime guard, so it reports rather than
// throws.
func ValidateFieldRegistry(reg VoucherTypeRegistry) []string {
	var violations []string
	seen := make(map[string]struct{})
	for _, f := range reg.CoreFields {
		if f.Category != CategoryCore {
			violations = append(violations, fmt.Sprintf("%s: core field %s has category %s", reg.Code, f.ID, f.Category))
		}
		if f.CanRemove {
			violations = append(violations, fmt.Sprintf("%s: core field %s is removable", reg.Code, f.ID))
		}
		if f.CanHide {
			violations = append(violations, fmt.Sprintf("%s: core field %s is hideable", reg.Code, f.ID))
		}
		if f.StoredIn != StorageVoucher {
			violations = append(violations, fmt.Sprintf("%s: core field %s stored in %s", reg.Code, f.ID, f.StoredIn))
		}
		if !f.Type.IsValid() {
			violations = append(violations, fmt.Sprintf("%s: core field %s has invalid type %s", reg.Code, f.ID, f.Type))
		}
		if _, dup := seen[f.ID]; dup {
			violations = append(violations, fmt.Sprintf("%s: duplicate field id %s", reg.Code, f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	for _, f := range reg.SharedFields {
		if f.Category != CategoryShared {
			violations = append(violations, fmt.Sprintf("%s: shared field %s has category %s", reg.Code, f.ID, f.Category))
		}
		if f.CanRemove {
			violations = append(violations, fmt.Sprintf("%s: shared field %s is removable", reg.Code, f.ID))
		}
		if !f.CanHide {
			violations = append(violations, fmt.Sprintf("%s: shared field %s is not hideable", reg.Code, f.ID))
		}
		if f.StoredIn != StorageVoucher {
			violations = append(violations, fmt.Sprintf("%s: shared field %s stored in %s", reg.Code, f.ID, f.StoredIn))
		}
		if _, dup := seen[f.ID]; dup {
			violations = append(violations, fmt.Sprintf("%s: duplicate field id %s", reg.Code, f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	return violations
}

// SelfTest validates every registered voucher type catalog plus the line
// column split and returns all violations found
func (r *Registry) SelfTest() []string {
	var violations []string
	for _, code := range []VoucherCode{VoucherCodePayment, VoucherCodeReceipt, VoucherCodeJournalEntry, VoucherCodeOpeningBalance} {
		reg, ok := r.types[code]
		if !ok {
			violations = append(violations, fmt.Sprintf("voucher type %s is not registered", code))
			continue
		}
		violations = append(violations, ValidateFieldRegistry(reg)...)
	}
	seen := make(map[string]struct{})
	for _, c := range append(r.EssentialLineColumns(), r.OptionalLineColumns()...) {
		if _, dup := seen[c.ID]; dup {
			violations = append(violations, fmt.Sprintf("duplicate line column id %s", c.ID))
		}
		seen[c.ID] = struct{}{}
	}
	for _, c := range r.essentialCols {
		if !c.Essential {
			violations = append(violations, fmt.Sprintf("essential column %s is not flagged essential", c.ID))
		}
	}
	return violations
}
