package designer

import (
	"fmt"
	"strings"
)

// SchemaVersionError indicates a canonical definition that is not schema V2.
// The designer cannot operate on any other version; this is fatal, not recoverable.
type SchemaVersionError struct {
	Version int
}

// Error implements the error interface
func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("voucher definition has schema version %d, designer requires version %d", e.Version, SchemaVersionV2)
}

// VoucherTypeMismatchError indicates a layout attached to the wrong canonical
// definition. This is a programming error, never a user-correctable condition.
type VoucherTypeMismatchError struct {
	Expected VoucherCode
	Actual   VoucherCode
}

// Error implements the error interface
func (e *VoucherTypeMismatchError) Error() string {
	return fmt.Sprintf("layout voucher type %s does not match canonical code %s", e.Actual, e.Expected)
}

// PreconditionError indicates an operation attempted without its required state,
// such as saving before a definition has been loaded.
type PreconditionError struct {
	Message string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	return e.Message
}

// ForbiddenChangeError carries every immutable-property violation detected in a
// single reconciliation. Violations are always aggregated so callers never have
// to run validation twice to discover a second problem.
type ForbiddenChangeError struct {
	Violations []string
}

// Error implements the error interface
func (e *ForbiddenChangeError) Error() string {
	return fmt.Sprintf("forbidden changes detected: %s", strings.Join(e.Violations, "; "))
}

// PersistenceViolationError indicates a layout-shaped object reached a save
// path. This is a latent data-corruption defect, not a user error; in
// production it should never trigger.
type PersistenceViolationError struct {
	Context string
	Reasons []string
}

// Error implements the error interface
func (e *PersistenceViolationError) Error() string {
	return fmt.Sprintf("layout-shaped object reached persistence path (%s): %s", e.Context, strings.Join(e.Reasons, "; "))
}

// UnknownVoucherTypeError indicates a voucher code the system field registry
// does not know about.
type UnknownVoucherTypeError struct {
	Code string
}

// Error implements the error interface
func (e *UnknownVoucherTypeError) Error() string {
	return fmt.Sprintf("unknown voucher type %q", e.Code)
}
