package rules

import "github.com/cockroachdb/errors"

var (
	// ErrExists is returned when an item with the same key is already stored.
	ErrExists = errors.New("already exists")
	// ErrMultiplePrimary is returned when a rule declares a second primary attribute.
	ErrMultiplePrimary = errors.New("multiple primary attributes")
	// ErrInheritConflict is returned when an inherited attribute is also
	// primary, unique, or required.
	ErrInheritConflict = errors.New("inherited attribute cannot be primary, unique, or required")
	// ErrInvalidAction is returned for an action upsert that can neither
	// update nor create an entry.
	ErrInvalidAction = errors.New("invalid action")
	// ErrDuplicateRule is returned when the catalog already has a rule of the same type.
	ErrDuplicateRule = errors.New("duplicate resource type")
	// ErrReservedType is returned for the reserved resource type name.
	ErrReservedType = errors.New("reserved resource type")
)
