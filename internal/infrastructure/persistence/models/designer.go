// Package models contains the GORM persistence models for the designer.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmudadem/ERP03-sub002/internal/domain/designer"
)

// VoucherTypeDefinitionModel is the persistence model for the canonical
// VoucherTypeDefinition. Field and column collections are stored as jsonb;
// the ephemeral layout view model has no persistence model on purpose.
type VoucherTypeDefinitionModel struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_voucher_def_company_code,priority:1"`
	Code                     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_voucher_def_company_code,priority:2"`
	Module                   string    `gorm:"type:varchar(50);not null"`
	SchemaVersion            int       `gorm:"not null"`
	RequiredPostingRolesJSON string    `gorm:"column:required_posting_roles;type:jsonb;default:'[]'"`
	HeaderFieldsJSON         string    `gorm:"column:header_fields;type:jsonb;not null"`
	TableColumnsJSON         string    `gorm:"column:table_columns;type:jsonb;default:'[]'"`
	LayoutJSON               string    `gorm:"column:layout;type:jsonb;default:'{}'"`
	CreatedAt                time.Time `gorm:"not null"`
	UpdatedAt                time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoucherTypeDefinitionModel) TableName() string {
	return "voucher_type_definitions"
}

// ToDomain converts the persistence model to the canonical domain object
func (m *VoucherTypeDefinitionModel) ToDomain() (*designer.VoucherTypeDefinition, error) {
	def := &designer.VoucherTypeDefinition{
		ID:            m.ID,
		CompanyID:     m.CompanyID,
		Code:          designer.VoucherCode(m.Code),
		Module:        m.Module,
		SchemaVersion: m.SchemaVersion,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.RequiredPostingRolesJSON != "" {
		if err := json.Unmarshal([]byte(m.RequiredPostingRolesJSON), &def.RequiredPostingRoles); err != nil {
			return nil, fmt.Errorf("invalid required_posting_roles for %s: %w", m.Code, err)
		}
	}
	if m.HeaderFieldsJSON != "" {
		if err := json.Unmarshal([]byte(m.HeaderFieldsJSON), &def.HeaderFields); err != nil {
			return nil, fmt.Errorf("invalid header_fields for %s: %w", m.Code, err)
		}
	}
	if m.TableColumnsJSON != "" {
		if err := json.Unmarshal([]byte(m.TableColumnsJSON), &def.TableColumns); err != nil {
			return nil, fmt.Errorf("invalid table_columns for %s: %w", m.Code, err)
		}
	}
	if m.LayoutJSON != "" {
		if err := json.Unmarshal([]byte(m.LayoutJSON), &def.Layout); err != nil {
			return nil, fmt.Errorf("invalid layout hints for %s: %w", m.Code, err)
		}
	}
	return def, nil
}

// FromDomain converts a canonical domain object into the persistence model
func FromDomain(def *designer.VoucherTypeDefinition) (*VoucherTypeDefinitionModel, error) {
	roles, err := json.Marshal(def.RequiredPostingRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal required posting roles: %w", err)
	}
	fields, err := json.Marshal(def.HeaderFields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal header fields: %w", err)
	}
	columns, err := json.Marshal(def.TableColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table columns: %w", err)
	}
	layout, err := json.Marshal(def.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout hints: %w", err)
	}

	return &VoucherTypeDefinitionModel{
		ID:                       def.ID,
		CompanyID:                def.CompanyID,
		Code:                     string(def.Code),
		Module:                   def.Module,
		SchemaVersion:            def.SchemaVersion,
		RequiredPostingRolesJSON: string(roles),
		HeaderFieldsJSON:         string(fields),
		TableColumnsJSON:         string(columns),
		LayoutJSON:               string(layout),
		CreatedAt:                def.CreatedAt,
		UpdatedAt:                def.UpdatedAt,
	}, nil
}
