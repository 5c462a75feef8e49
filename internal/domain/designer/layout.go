package designer

// layoutMarkerValue is the runtime marker the forward converter stamps on
// every layout it produces. The persistence guard treats its presence as a
// positive layout signal in addition to shape sniffing.
const layoutMarkerValue = "designer/layout-v2"

// DisplayMode selects the rendering density of the derived layout
type DisplayMode string

const (
	DisplayModeClassic DisplayMode = "classic"
	DisplayModeWindows DisplayMode = "windows"
)

// IsValid checks if the display mode is known
func (m DisplayMode) IsValid() bool {
	return m == DisplayModeClassic || m == DisplayModeWindows
}

// LinesType describes how the voucher line area renders
type LinesType string

const (
	LinesTypeTable      LinesType = "table"
	LinesTypeSingleLine LinesType = "single-line"
	LinesTypePreview    LinesType = "preview"
)

// ActionKind classifies what an action button does
type ActionKind string

const (
	ActionKindSave         ActionKind = "save"
	ActionKindSubmit       ActionKind = "submit"
	ActionKindCancel       ActionKind = "cancel"
	ActionKindPrint        ActionKind = "print"
	ActionKindCheckBalance ActionKind = "check-balance"
)

// ActionDescriptor is an ordered button descriptor in the layout action area
type ActionDescriptor struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Variant string     `json:"variant"` // primary, secondary, danger, ghost
	Kind    ActionKind `json:"kind"`
}

// HeaderField is a locked, read-only metadata field in the layout header
// area. Header fields are a fixed set (voucher number, status, created date)
// and are never derived from the canonical header fields.
type HeaderField struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// HeaderArea is the locked metadata strip at the top of the layout
type HeaderArea struct {
	Fields []HeaderField `json:"fields"`
}

// BodyArea is the customizable field area of the layout
type BodyArea struct {
	Fields  []FieldDefinitionV2 `json:"fields"`
	Columns int                 `json:"columns"`
	Gap     int                 `json:"gap"`
}

// LinesArea describes the voucher line section. Type is derived
// deterministically from the voucher code, never chosen by the user.
type LinesArea struct {
	Type          LinesType           `json:"type"`
	Columns       []FieldDefinitionV2 `json:"columns,omitempty"`
	MinLines      int                 `json:"min_lines"`
	MaxLines      int                 `json:"max_lines"`
	ShowTotals    bool                `json:"show_totals"`
	ShowAddButton bool                `json:"show_add_button"`
}

// VoucherLayoutV2 is the ephemeral, rendering-oriented projection of a
// canonical definition. It exists only for the duration of one edit session
// and must never be written to durable storage; AssertNotLayout enforces that
// at every save path. It deliberately carries none of the accounting-only
// canonical properties (posting flags, posting roles, schema version).
type VoucherLayoutV2 struct {
	Marker      string             `json:"__layout_marker"`
	VoucherType VoucherCode        `json:"voucher_type"`
	DisplayMode DisplayMode        `json:"display_mode"`
	Header      HeaderArea         `json:"header"`
	Body        BodyArea           `json:"body"`
	Lines       LinesArea          `json:"lines"`
	Actions     []ActionDescriptor `json:"actions"`
}

// BodyFieldByID returns the body field with the given id, or nil
func (l *VoucherLayoutV2) BodyFieldByID(id string) *FieldDefinitionV2 {
	for i := range l.Body.Fields {
		if l.Body.Fields[i].ID == id {
			return &l.Body.Fields[i]
		}
	}
	return nil
}

// FieldDefinitionV2 is the UI-facing field model: the canonical field's
// presentation content extended with its category, enforcement flags and
// storage target. It structurally omits IsPosting, PostingRole and the schema
// version, so the UI layer is incapable of seeing them rather than merely
// instructed to ignore them. Instances must be built through NewCoreField,
// NewSharedField or NewPersonalField; no code path may hand-assemble an
// inconsistent flag set.
type FieldDefinitionV2 struct {
	ID              string           `json:"id"`
	DataKey         string           `json:"data_key"`
	Label           string           `json:"label"`
	Type            FieldType        `json:"type"`
	Required        bool             `json:"required"`
	ReadOnly        bool             `json:"read_only"`
	Width           FieldWidth       `json:"width"`
	ValidationRules *ValidationRules `json:"validation_rules,omitempty"`
	VisibilityRules []VisibilityRule `json:"visibility_rules,omitempty"`
	DefaultValue    string           `json:"default_value,omitempty"`
	Placeholder     string           `json:"placeholder,omitempty"`
	Style           string           `json:"style,omitempty"`

	Category        FieldCategory `json:"category"`
	SemanticMeaning string        `json:"semantic_meaning,omitempty"`
	StoredIn        FieldStorage  `json:"stored_in"`

	CanRemove        bool `json:"can_remove"`
	CanHide          bool `json:"can_hide"`
	CanRenameLabel   bool `json:"can_rename_label"`
	CanChangeDataKey bool `json:"can_change_data_key"`
	CanChangeType    bool `json:"can_change_type"`

	ShowInJournal       bool `json:"show_in_journal"`
	ShowInReports       bool `json:"show_in_reports"`
	ShowInSearch        bool `json:"show_in_search"`
	AllowExport         bool `json:"allow_export"`
	VisibleToManagement bool `json:"visible_to_management"`
}

// Clone returns a deep copy of the field
func (f FieldDefinitionV2) Clone() FieldDefinitionV2 {
	out := f
	out.ValidationRules = f.ValidationRules.Clone()
	if f.VisibilityRules != nil {
		out.VisibilityRules = make([]VisibilityRule, len(f.VisibilityRules))
		copy(out.VisibilityRules, f.VisibilityRules)
	}
	return out
}
