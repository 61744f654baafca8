package repo

import "errors"

// Domain errors surfaced by repositories. Uniqueness violations are detected
// at the storage layer (unique constraints), not by check-then-act queries,
// so concurrent registrations cannot create duplicate identities.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
