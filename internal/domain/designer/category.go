// Package designer implements the voucher layout projection and reconciliation
// engine. It derives an ephemeral, rendering-oriented layout from a persisted
// canonical voucher type definition, merges UI-permitted edits back into the
// canonical definition, and guards the save path against accounting-semantic
// corruption. The package has no network or storage code of its own.
package designer

// FieldCategory classifies a voucher field into one of three enforcement tiers
type FieldCategory string

const (
	// CategoryCore marks backend-required fields; cannot be removed or hidden
	CategoryCore FieldCategory = "CORE"
	// CategoryShared marks optional system-defined fields; can be hidden but not removed
	CategoryShared FieldCategory = "SHARED"
	// CategoryPersonal marks user-private free-form fields; never appear in
	// shared views, reports, or exports
	CategoryPersonal FieldCategory = "PERSONAL"
)

// IsValid checks if the category is one of the three tiers
func (c FieldCategory) IsValid() bool {
	switch c {
	case CategoryCore, CategoryShared, CategoryPersonal:
		return true
	}
	return false
}

// String returns the string representation of FieldCategory
func (c FieldCategory) String() string {
	return string(c)
}

// FieldStorage identifies where a field's values are persisted
type FieldStorage string

const (
	// StorageVoucher stores values on the voucher record (CORE and SHARED fields)
	StorageVoucher FieldStorage = "voucher"
	// StorageUserPreferences keeps PERSONAL field values in per-user
	// preferences; they are never written to the voucher
	StorageUserPreferences FieldStorage = "userPreferences"
)

// FieldAction is a modification a user may attempt on a field
type FieldAction string

const (
	ActionRemove     FieldAction = "remove"
	ActionHide       FieldAction = "hide"
	ActionRename     FieldAction = "rename"
	ActionChangeType FieldAction = "changeType"
)

// FieldConfig carries the semantic content callers supply when constructing a
// FieldDefinitionV2. Enforcement flags are never supplied by callers; the
// category constructor populates them.
type FieldConfig struct {
	ID              string
	DataKey         string
	Label           string
	Type            FieldType
	Required        bool
	ReadOnly        bool
	Width           FieldWidth
	ValidationRules *ValidationRules
	VisibilityRules []VisibilityRule
	DefaultValue    string
	Placeholder     string
	Style           string
	SemanticMeaning string
}

func baseFieldV2(cfg FieldConfig) FieldDefinitionV2 {
	width := cfg.Width
	if width == "" {
		width = WidthHalf
	}
	dataKey := cfg.DataKey
	if dataKey == "" {
		dataKey = cfg.ID
	}
	return FieldDefinitionV2{
		ID:              cfg.ID,
		DataKey:         dataKey,
		Label:           cfg.Label,
		Type:            cfg.Type,
		Required:        cfg.Required,
		ReadOnly:        cfg.ReadOnly,
		Width:           width,
		ValidationRules: cfg.ValidationRules,
		VisibilityRules: cfg.VisibilityRules,
		DefaultValue:    cfg.DefaultValue,
		Placeholder:     cfg.Placeholder,
		Style:           cfg.Style,
		SemanticMeaning: cfg.SemanticMeaning,
	}
}

// NewCoreField creates a CORE field. Core fields are contractual with the
// backend: they cannot be removed or hidden and their data key and type are
// locked. Labels stay renamable because labels are presentation-only for every
// category.
func NewCoreField(cfg FieldConfig) FieldDefinitionV2 {
	f := baseFieldV2(cfg)
	f.Category = CategoryCore
	f.StoredIn = StorageVoucher
	f.CanRemove = false
	f.CanHide = false
	f.CanRenameLabel = true
	f.CanChangeDataKey = false
	f.CanChangeType = false
	f.ShowInJournal = true
	f.ShowInReports = true
	f.ShowInSearch = true
	f.AllowExport = true
	f.VisibleToManagement = true
	return f
}

// NewSharedField creates a SHARED field: system-defined, optional, can be
// hidden but never removed.
func NewSharedField(cfg FieldConfig) FieldDefinitionV2 {
	f := baseFieldV2(cfg)
	f.Category = CategoryShared
	f.StoredIn = StorageVoucher
	f.CanRemove = false
	f.CanHide = true
	f.CanRenameLabel = true
	f.CanChangeDataKey = false
	f.CanChangeType = false
	f.ShowInJournal = true
	f.ShowInReports = true
	f.ShowInSearch = true
	f.AllowExport = true
	f.VisibleToManagement = true
	return f
}

// NewPersonalField creates a PERSONAL field: user-private and fully free-form.
// Personal fields never appear in journals, reports, search, or exports, and
// their values are never written to the voucher record.
func NewPersonalField(cfg FieldConfig) FieldDefinitionV2 {
	f := baseFieldV2(cfg)
	f.Category = CategoryPersonal
	f.StoredIn = StorageUserPreferences
	f.CanRemove = true
	f.CanHide = true
	f.CanRenameLabel = true
	f.CanChangeDataKey = true
	f.CanChangeType = true
	f.ShowInJournal = false
	f.ShowInReports = false
	f.ShowInSearch = false
	f.AllowExport = false
	f.VisibleToManagement = false
	return f
}

// IsFieldModifiable answers whether an action is permitted for a field. It
// reads the precomputed enforcement flags rather than re-deriving from the
// category, keeping the constructors the single source of truth.
func IsFieldModifiable(field FieldDefinitionV2, action FieldAction) bool {
	switch action {
	case ActionRemove:
		return field.CanRemove
	case ActionHide:
		return field.CanHide
	case ActionRename:
		return field.CanRenameLabel
	case ActionChangeType:
		return field.CanChangeType
	}
	return false
}
