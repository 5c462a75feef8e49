package designer

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersionV2 is the only canonical schema version this engine operates
// on. Any other version is a hard incompatibility.
const SchemaVersionV2 = 2

// VoucherCode identifies one of the four voucher types the designer supports
type VoucherCode string

const (
	VoucherCodePayment        VoucherCode = "PAYMENT"
	VoucherCodeReceipt        VoucherCode = "RECEIPT"
	VoucherCodeJournalEntry   VoucherCode = "JOURNAL_ENTRY"
	VoucherCodeOpeningBalance VoucherCode = "OPENING_BALANCE"
)

// IsValid checks if the voucher code is one of the supported types
func (c VoucherCode) IsValid() bool {
	switch c {
	case VoucherCodePayment, VoucherCodeReceipt, VoucherCodeJournalEntry, VoucherCodeOpeningBalance:
		return true
	}
	return false
}

// String returns the string representation of VoucherCode
func (c VoucherCode) String() string {
	return string(c)
}

// UsesLineTable reports whether vouchers of this code carry a multi-line
// entry table rather than a single counterpart line
func (c VoucherCode) UsesLineTable() bool {
	return c == VoucherCodeJournalEntry || c == VoucherCodeOpeningBalance
}

// TableColumn is a canonical line-table column reference. Only the width is
// UI-customizable; identity and ordering of essential columns are fixed.
type TableColumn struct {
	FieldID string     `json:"field_id"`
	Width   FieldWidth `json:"width"`
}

// LayoutHints are display-only grid hints persisted on the canonical
// definition. They affect rendering, never posting semantics, and are
// therefore outside the forbidden-change check.
type LayoutHints struct {
	GridColumns  int    `json:"grid_columns,omitempty"`
	Gap          int    `json:"gap,omitempty"`
	HeaderLayout string `json:"header_layout,omitempty"`
}

// VoucherTypeDefinition is the persisted, backend-authoritative voucher
// schema record. It is read by the forward converter and mutated only through
// the reconciliation converter plus repository path, never directly by UI
// code. ID, CompanyID, Code, Module and SchemaVersion are immutable: they
// must be identical before and after any reconciliation.
type VoucherTypeDefinition struct {
	ID                   uuid.UUID         `json:"id"`
	CompanyID            uuid.UUID         `json:"company_id"`
	Code                 VoucherCode       `json:"code"`
	Module               string            `json:"module"`
	SchemaVersion        int               `json:"schema_version"`
	RequiredPostingRoles []PostingRole     `json:"required_posting_roles,omitempty"`
	HeaderFields         []FieldDefinition `json:"header_fields"`
	TableColumns         []TableColumn     `json:"table_columns"`
	Layout               LayoutHints       `json:"layout"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// Clone returns a deep copy of the definition. Reconciliation always starts
// from a clone so the load-time original is never mutated in place.
func (d *VoucherTypeDefinition) Clone() *VoucherTypeDefinition {
	out := *d
	if d.RequiredPostingRoles != nil {
		out.RequiredPostingRoles = make([]PostingRole, len(d.RequiredPostingRoles))
		copy(out.RequiredPostingRoles, d.RequiredPostingRoles)
	}
	if d.HeaderFields != nil {
		out.HeaderFields = make([]FieldDefinition, len(d.HeaderFields))
		for i, f := range d.HeaderFields {
			out.HeaderFields[i] = f.Clone()
		}
	}
	if d.TableColumns != nil {
		out.TableColumns = make([]TableColumn, len(d.TableColumns))
		copy(out.TableColumns, d.TableColumns)
	}
	return &out
}

// HeaderFieldByID returns the header field with the given id, or nil
func (d *VoucherTypeDefinition) HeaderFieldByID(id string) *FieldDefinition {
	for i := range d.HeaderFields {
		if d.HeaderFields[i].ID == id {
			return &d.HeaderFields[i]
		}
	}
	return nil
}
