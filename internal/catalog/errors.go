package catalog

import "errors"

// ErrNameConflict is returned when a user-visible database, table, or
// column name collides with a reserved or already-registered name
// within its parent scope.
var ErrNameConflict = errors.New("catalog: name conflict")

// ErrInvalidName is returned when a name fails the catalog's basic
// identifier shape rule: it must be non-empty once surrounding
// whitespace is trimmed.
var ErrInvalidName = errors.New("catalog: invalid name")

// ErrInvalidObjectType is returned when an ObjectType value falls
// outside the closed enumeration.
var ErrInvalidObjectType = errors.New("catalog: invalid object type")
