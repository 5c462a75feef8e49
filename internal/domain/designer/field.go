package designer

import (
	"github.com/shopspring/decimal"
)

// FieldType represents the data type of a voucher field
type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeTextarea FieldType = "TEXTAREA"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeRelation FieldType = "RELATION"
	FieldTypeCheckbox FieldType = "CHECKBOX"
	FieldTypeUpload   FieldType = "UPLOAD"
)

// IsValid checks if the field type is one of the closed set
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeSelect, FieldTypeRelation, FieldTypeCheckbox, FieldTypeUpload:
		return true
	}
	return false
}

// String returns the string representation of FieldType
func (t FieldType) String() string {
	return string(t)
}

// FieldWidth represents the horizontal span of a field in the layout grid
type FieldWidth string

const (
	WidthQuarter      FieldWidth = "1/4"
	WidthThird        FieldWidth = "1/3"
	WidthHalf         FieldWidth = "1/2"
	WidthTwoThirds    FieldWidth = "2/3"
	WidthThreeQuarter FieldWidth = "3/4"
	WidthFull         FieldWidth = "full"
)

// IsValid checks if the width is a known grid span
func (w FieldWidth) IsValid() bool {
	switch w {
	case WidthQuarter, WidthThird, WidthHalf, WidthTwoThirds, WidthThreeQuarter, WidthFull:
		return true
	}
	return false
}

// PostingRole identifies the accounting role a field plays when the voucher is
// posted to the ledger. It is never exposed to the UI layer.
type PostingRole string

const (
	PostingRoleNone          PostingRole = ""
	PostingRoleAmount        PostingRole = "AMOUNT"
	PostingRoleDate          PostingRole = "POSTING_DATE"
	PostingRoleDebitAccount  PostingRole = "DEBIT_ACCOUNT"
	PostingRoleCreditAccount PostingRole = "CREDIT_ACCOUNT"
	PostingRoleCurrency      PostingRole = "CURRENCY"
)

// ValidationRules constrains the values a field accepts. Amount bounds use
// decimal to avoid float drift on money values.
type ValidationRules struct {
	MinLength *int             `json:"min_length,omitempty"`
	MaxLength *int             `json:"max_length,omitempty"`
	Pattern   string           `json:"pattern,omitempty"`
	MinValue  *decimal.Decimal `json:"min_value,omitempty"`
	MaxValue  *decimal.Decimal `json:"max_value,omitempty"`
}

// Clone returns a deep copy of the rules
func (r *ValidationRules) Clone() *ValidationRules {
	if r == nil {
		return nil
	}
	out := &ValidationRules{Pattern: r.Pattern}
	if r.MinLength != nil {
		v := *r.MinLength
		out.MinLength = &v
	}
	if r.MaxLength != nil {
		v := *r.MaxLength
		out.MaxLength = &v
	}
	if r.MinValue != nil {
		v := r.MinValue.Copy()
		out.MinValue = &v
	}
	if r.MaxValue != nil {
		v := r.MaxValue.Copy()
		out.MaxValue = &v
	}
	return out
}

// VisibilityRule shows or hides a field depending on another field's value
type VisibilityRule struct {
	FieldID  string `json:"field_id"`
	Operator string `json:"operator"` // equals, not_equals, empty, not_empty
	Value    string `json:"value,omitempty"`
}

// FieldDefinition is a canonical voucher field as persisted on the
// VoucherTypeDefinition. It carries the accounting-only properties IsPosting
// and PostingRole, which are never exposed to or mutated by the UI layer; the
// only write path is the reconciliation converter.
type FieldDefinition struct {
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
	IsPosting       bool             `json:"is_posting"`
	PostingRole     PostingRole      `json:"posting_role,omitempty"`
}

// Clone returns a deep copy of the field definition
func (f FieldDefinition) Clone() FieldDefinition {
	out := f
	out.ValidationRules = f.ValidationRules.Clone()
	if f.VisibilityRules != nil {
		out.VisibilityRules = make([]VisibilityRule, len(f.VisibilityRules))
		copy(out.VisibilityRules, f.VisibilityRules)
	}
	return out
}
