/*
Package errors provides semantic error types for the columnorm library.

The package defines the failure taxonomy of the row and collection layers with
specific types that can be checked using the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("not found")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrDataIntegrity = errors.New("data integrity violation")
	    ErrUnsupported   = errors.New("operation not supported")
	)

Usage:

	activities, err := account.Activities.Values(ctx)
	if err != nil {
	    if errors.IsDataIntegrity(err) {
	        // a foreign key points at a row that is gone
	        return nil, err
	    }
	    // storage failures are returned unchanged by the collection layer
	    return nil, err
	}

	// Create typed errors
	err := errors.NewValidationError("key", "must not be nil")
	err := errors.NewDataIntegrityError("Account{id=7}", "Activity", "a-3")
	err := errors.NewUnsupportedError("full row scan")

DataIntegrityError is always fatal to a collection load; it is never skipped
because skipping would change the cardinality of the relation.
*/
package errors
