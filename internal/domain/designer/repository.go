package designer

import (
	"context"

	"github.com/google/uuid"
)

// DefinitionRepository is the persistence collaborator contract. The engine
// never talks to storage directly; it only requires that Get returns a
// schema V2 definition and that Update receives a canonical-shaped object
// (the caller runs AssertNotLayout before every Update, so implementations
// may rely on the canonical shape).
type DefinitionRepository interface {
	// Get loads the canonical definition for a voucher code within a company
	Get(ctx context.Context, companyID uuid.UUID, code VoucherCode) (*VoucherTypeDefinition, error)

	// Update persists a reconciled canonical definition
	Update(ctx context.Context, def *VoucherTypeDefinition) error
}
