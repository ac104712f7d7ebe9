package catalog

import "fmt"

// ObjectType is the closed enumeration of database object kinds that
// permissions and projections can refer to.
type ObjectType int

const (
	NoObject ObjectType = iota
	Instance
	Database
	Table
	Column
	Index
	Constraint
	Trigger
	Procedure
	Function
	User
	UserAccessKey
	UserToken

	// maxObjectType must stay last; values above it are rejected.
	maxObjectType
)

var objectTypeNames = [...]string{
	NoObject:      "NoObject",
	Instance:      "Instance",
	Database:      "Database",
	Table:         "Table",
	Column:        "Column",
	Index:         "Index",
	Constraint:    "Constraint",
	Trigger:       "Trigger",
	Procedure:     "Procedure",
	Function:      "Function",
	User:          "User",
	UserAccessKey: "UserAccessKey",
	UserToken:     "UserToken",
}

// String returns the object type's name, or a diagnostic placeholder for
// a value outside the enumeration.
func (t ObjectType) String() string {
	if t < NoObject || t >= maxObjectType {
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
	return objectTypeNames[t]
}

// Valid reports whether t is one of the named enumerators.
func (t ObjectType) Valid() bool {
	return t >= NoObject && t < maxObjectType
}
