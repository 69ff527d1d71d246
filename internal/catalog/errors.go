package catalog

import "errors"

// Error kinds shared across the catalog. Callers match with errors.Is;
// call sites wrap with fmt.Errorf("...: %w", Err...) to add detail.
var (
	ErrValidation    = errors.New("validation failed")
	ErrDuplicateName = errors.New("duplicate name")
	ErrCrossSupplier = errors.New("cross-supplier operation")
	ErrNotFound      = errors.New("not found")
)
