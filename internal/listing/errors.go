package listing

import "errors"

var (
	// ErrNotFound means the listing does not exist
	ErrNotFound = errors.New("listing not found")
	// ErrForbidden means the caller lacks rights on an existing listing
	ErrForbidden = errors.New("not authorized for this listing")
	// ErrInvalidStatus means a moderation action named an unknown status
	ErrInvalidStatus = errors.New("invalid status")
	// ErrConflict means a status transition lost a concurrent update
	ErrConflict = errors.New("listing was modified concurrently")
)
