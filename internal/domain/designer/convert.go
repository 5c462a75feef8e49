package designer

import (
	"strings"
	"unicode"
)

// CanonicalToLayout derives the ephemeral layout view model from a canonical
// definition. This is a one-way projection: the accounting-only properties
// (IsPosting, PostingRole, schema version) are deliberately absent from the
// output, so the UI layer is structurally incapable of seeing them.
//
// The definition must be schema V2; any other version is a hard
// incompatibility and fails with SchemaVersionError before any layout object
// is produced.
func CanonicalToLayout(def *VoucherTypeDefinition, mode DisplayMode, registry *Registry) (*VoucherLayoutV2, error) {
	if def.SchemaVersion != SchemaVersionV2 {
		return nil, &SchemaVersionError{Version: def.SchemaVersion}
	}
	if !mode.IsValid() {
		mode = DisplayModeClassic
	}

	var reg VoucherTypeRegistry
	if registry != nil {
		r, err := registry.VoucherType(def.Code)
		if err != nil {
			// Degrading here would silently reclassify every system field as
			// PERSONAL, stripping enforcement. Fail instead.
			return nil, err
		}
		reg = r
	}

	layout := &VoucherLayoutV2{
		Marker:      layoutMarkerValue,
		VoucherType: def.Code,
		DisplayMode: mode,
		Header:      defaultHeaderArea(),
		Actions:     defaultActions(def.Code),
	}

	columns, gap := gridDefaults(mode)
	if def.Layout.GridColumns > 0 {
		columns = def.Layout.GridColumns
	}
	if def.Layout.Gap > 0 {
		gap = def.Layout.Gap
	}

	layout.Body = BodyArea{
		Fields:  make([]FieldDefinitionV2, 0, len(def.HeaderFields)),
		Columns: columns,
		Gap:     gap,
	}
	for _, f := range def.HeaderFields {
		layout.Body.Fields = append(layout.Body.Fields, projectField(f, reg))
	}

	layout.Lines = buildLinesArea(def, reg)

	return layout, nil
}

// projectField maps a canonical field to its UI view. The category is taken
// from the system registry (unknown ids are user-created and therefore
// PERSONAL); the category constructor guarantees a consistent enforcement
// flag set.
func projectField(f FieldDefinition, reg VoucherTypeRegistry) FieldDefinitionV2 {
	cfg := FieldConfig{
		ID:              f.ID,
		DataKey:         f.DataKey,
		Label:           f.Label,
		Type:            f.Type,
		Required:        f.Required,
		ReadOnly:        f.ReadOnly,
		Width:           f.Width,
		ValidationRules: f.ValidationRules.Clone(),
		DefaultValue:    f.DefaultValue,
	}
	if f.VisibilityRules != nil {
		cfg.VisibilityRules = make([]VisibilityRule, len(f.VisibilityRules))
		copy(cfg.VisibilityRules, f.VisibilityRules)
	}

	sys := reg.FieldByID(f.ID)
	if sys != nil {
		cfg.SemanticMeaning = sys.SemanticMeaning
	}
	switch {
	case sys == nil:
		return NewPersonalField(cfg)
	case sys.Category == CategoryCore:
		return NewCoreField(cfg)
	default:
		return NewSharedField(cfg)
	}
}

func buildLinesArea(def *VoucherTypeDefinition, reg VoucherTypeRegistry) LinesArea {
	area := LinesArea{
		MinLines:      1,
		ShowAddButton: true,
	}
	if def.Code.UsesLineTable() {
		area.Type = LinesTypeTable
		area.MinLines = 2
		area.MaxLines = 200
		area.ShowTotals = true
	} else {
		area.Type = LinesTypeSingleLine
		area.MaxLines = 1
		area.ShowAddButton = false
	}

	area.Columns = make([]FieldDefinitionV2, 0, len(def.TableColumns))
	for _, col := range def.TableColumns {
		area.Columns = append(area.Columns, projectLineColumn(col))
	}
	return area
}

// projectLineColumn builds the UI view of a line column. Canonical table
// columns carry only an id and width, so the type is inferred from the id's
// lexical pattern and the label derived by splitting camelCase.
func projectLineColumn(col TableColumn) FieldDefinitionV2 {
	return NewSharedField(FieldConfig{
		ID:    col.FieldID,
		Label: humanizeFieldID(col.FieldID),
		Type:  inferColumnType(col.FieldID),
		Width: col.Width,
	})
}

func inferColumnType(id string) FieldType {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "account"):
		return FieldTypeRelation
	case lower == "amount" || lower == "debit" || lower == "credit":
		return FieldTypeNumber
	case strings.Contains(lower, "date"):
		return FieldTypeDate
	default:
		return FieldTypeText
	}
}

// humanizeFieldID turns a camelCase field id into a display label,
// e.g. "cashAccountId" becomes "Cash Account Id".
func humanizeFieldID(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(id)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func gridDefaults(mode DisplayMode) (columns, gap int) {
	if mode == DisplayModeWindows {
		return 3, 8
	}
	return 2, 16
}

// defaultHeaderArea returns the locked metadata fields shown above every
// voucher. These are fixed and never taken from canonical data.
func defaultHeaderArea() HeaderArea {
	return HeaderArea{
		Fields: []HeaderField{
			{ID: "voucherNumber", Label: "Voucher No.", Type: FieldTypeText},
			{ID: "status", Label: "Status", Type: FieldTypeSelect},
			{ID: "createdDate", Label: "Created", Type: FieldTypeDate},
		},
	}
}

func defaultActions(code VoucherCode) []ActionDescriptor {
	actions := []ActionDescriptor{
		{ID: "save", Label: "Save Draft", Variant: "secondary", Kind: ActionKindSave},
		{ID: "submit", Label: "Submit", Variant: "primary", Kind: ActionKindSubmit},
		{ID: "cancel", Label: "Cancel", Variant: "ghost", Kind: ActionKindCancel},
		{ID: "print", Label: "Print", Variant: "secondary", Kind: ActionKindPrint},
	}
	if code == VoucherCodeJournalEntry {
		actions = append(actions, ActionDescriptor{
			ID: "checkBalance", Label: "Check Balance", Variant: "secondary", Kind: ActionKindCheckBalance,
		})
	}
	return actions
}

// ApplyLayoutToCanonical merges the UI-permitted edits from a layout back
// into the canonical definition. Reconciliation is always computed against
// the original loaded before editing, never a re-fetched copy; the result is
// a fresh object and the original is left untouched.
//
// Only an explicit allow-list of presentation properties is copied per
// header field (label, required, read-only, validation/visibility rules,
// default value) and only the width per table column. Identity fields and
// posting semantics are carried verbatim from the original, and re-asserted
// after the merge to keep the guarantee independent of copy ordering.
func ApplyLayoutToCanonical(original *VoucherTypeDefinition, layout *VoucherLayoutV2) (*VoucherTypeDefinition, error) {
	if original.SchemaVersion != SchemaVersionV2 {
		return nil, &SchemaVersionError{Version: original.SchemaVersion}
	}
	if layout.VoucherType != original.Code {
		return nil, &VoucherTypeMismatchError{Expected: original.Code, Actual: layout.VoucherType}
	}

	updated := original.Clone()
	updated.SchemaVersion = SchemaVersionV2

	for i := range updated.HeaderFields {
		field := &updated.HeaderFields[i]
		edited := layout.BodyFieldByID(field.ID)
		if edited == nil {
			// Absent from the layout: the original field stays untouched.
			continue
		}
		field.Label = edited.Label
		field.Required = edited.Required
		field.ReadOnly = edited.ReadOnly
		if edited.Width.IsValid() {
			field.Width = edited.Width
		}
		field.ValidationRules = edited.ValidationRules.Clone()
		if edited.VisibilityRules != nil {
			field.VisibilityRules = make([]VisibilityRule, len(edited.VisibilityRules))
			copy(field.VisibilityRules, edited.VisibilityRules)
		} else {
			field.VisibilityRules = nil
		}
		field.DefaultValue = edited.DefaultValue

		// Re-assert posting semantics from the original field. The layout
		// cannot carry these, but a refactor of the copy block above must
		// not be able to change that silently.
		if o := original.HeaderFieldByID(field.ID); o != nil {
			field.IsPosting = o.IsPosting
			field.PostingRole = o.PostingRole
			field.DataKey = o.DataKey
			field.Type = o.Type
			field.ID = o.ID
		}
	}

	for i := range updated.TableColumns {
		col := &updated.TableColumns[i]
		for j := range layout.Lines.Columns {
			if layout.Lines.Columns[j].ID == col.FieldID {
				if w := layout.Lines.Columns[j].Width; w.IsValid() {
					col.Width = w
				}
				break
			}
		}
	}

	// Layout-only structure becomes display hints on the canonical object.
	// Hints are not business fields and are outside the forbidden-change
	// check.
	updated.Layout.GridColumns = layout.Body.Columns
	updated.Layout.Gap = layout.Body.Gap
	updated.Layout.HeaderLayout = string(layout.DisplayMode)

	updated.ID = original.ID
	updated.CompanyID = original.CompanyID
	updated.Code = original.Code
	updated.Module = original.Module
	if original.RequiredPostingRoles != nil {
		updated.RequiredPostingRoles = make([]PostingRole, len(original.RequiredPostingRoles))
		copy(updated.RequiredPostingRoles, original.RequiredPostingRoles)
	}

	return updated, nil
}
