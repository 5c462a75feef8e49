package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mahmudadem/ERP03-sub002/internal/domain/designer"
	"github.com/mahmudadem/ERP03-sub002/internal/domain/shared"
	"github.com/mahmudadem/ERP03-sub002/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVoucherTypeDefinitionRepository implements designer.DefinitionRepository
// using GORM
type GormVoucherTypeDefinitionRepository struct {
	db *gorm.DB
}

// NewGormVoucherTypeDefinitionRepository creates a new repository
func NewGormVoucherTypeDefinitionRepository(db *gorm.DB) *GormVoucherTypeDefinitionRepository {
	return &GormVoucherTypeDefinitionRepository{db: db}
}

// Get loads the canonical definition for a voucher code within a company. A
// stored definition that is not schema V2 is a hard incompatibility and
// surfaces as SchemaVersionError.
func (r *GormVoucherTypeDefinitionRepository) Get(ctx context.Context, companyID uuid.UUID, code designer.VoucherCode) (*designer.VoucherTypeDefinition, error) {
	var model models.VoucherTypeDefinitionModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, string(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	def, err := model.ToDomain()
	if err != nil {
		return nil, err
	}
	if def.SchemaVersion != designer.SchemaVersionV2 {
		return nil, &designer.SchemaVersionError{Version: def.SchemaVersion}
	}
	return def, nil
}

// Update persists a reconciled canonical definition. The layout shape check
// runs here as well as on the caller side: a repository must reject a
// layout-shaped object even if a future caller forgets the guard.
func (r *GormVoucherTypeDefinitionRepository) Update(ctx context.Context, def *designer.VoucherTypeDefinition) error {
	if err := designer.AssertNotLayout(def, "repository-update"); err != nil {
		return err
	}
	if def.SchemaVersion != designer.SchemaVersionV2 {
		return &designer.SchemaVersionError{Version: def.SchemaVersion}
	}

	def.UpdatedAt = time.Now()
	model, err := models.FromDomain(def)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", model.CompanyID, model.Code).
		Select("module", "schema_version", "required_posting_roles", "header_fields", "table_columns", "layout", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Create inserts a new canonical definition, used by seeding and tests
func (r *GormVoucherTypeDefinitionRepository) Create(ctx context.Context, def *designer.VoucherTypeDefinition) error {
	if err := designer.AssertNotLayout(def, "repository-create"); err != nil {
		return err
	}
	now := time.Now()
	if def.CreatedAt.IsZero() {
		def.CreatedAt = now
	}
	def.UpdatedAt = now
	model, err := models.FromDomain(def)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Migrate creates or updates the designer tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.VoucherTypeDefinitionModel{})
}
