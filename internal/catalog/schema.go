package catalog

import "nexusdb/internal/variant"

// ColumnDataType enumerates the column storage types the catalog
// persists, built directly on the Variant type tag set so that a
// column's declared type and an evaluated expression's result type
// share one vocabulary.
type ColumnDataType = variant.Type

// ColumnState and ConstraintState are small fixed state enumerations
// for catalog objects that can be disabled without being dropped.
type ColumnState int

const (
	ColumnStateActive ColumnState = iota
	ColumnStateDisabled
)

type ConstraintState int

const (
	ConstraintStateActive ConstraintState = iota
	ConstraintStateInactive
)

// TableType distinguishes ordinary user tables from the fixed system
// catalog tables every instance carries.
type TableType int

const (
	TableTypeUser TableType = iota
	TableTypeSystem
)

// Database is one top-level namespace of tables, keyed by a
// deterministically derived UUID (see ComputeDatabaseUUID: an
// MD5(name||createTimestamp) hash, computed once and stored here rather
// than recomputed on every access).
type Database struct {
	ID          ObjectID
	Name        string
	UUID        [16]byte
	CipherID    string
	Key         []byte
	Description string
}

// Table belongs to exactly one Database and owns a CurrentColumnSetID
// pointing at its active ColumnSet.
type Table struct {
	ID                 ObjectID
	DatabaseID         ObjectID
	Name               string
	Type               TableType
	CurrentColumnSetID ObjectID
	FirstUserTRID       uint64
	Description        string
}

// Column belongs to exactly one Table.
type Column struct {
	ID                ObjectID
	TableID           ObjectID
	Name              string
	DataType          ColumnDataType
	State             ColumnState
	BlockDataAreaSize uint64
	Description       string
}

// ColumnSet is a versioned collection of ColumnDefs bound to a table;
// a table's CurrentColumnSetID always names one of these.
type ColumnSet struct {
	ID           ObjectID
	TableID      ObjectID
	ColumnDefIDs []ObjectID
}

// ColumnDef couples one Column to the set of ConstraintDefs it carries
// in a particular ColumnSet.
type ColumnDef struct {
	ID            ObjectID
	ColumnID      ObjectID
	ConstraintIDs []ObjectID
}

// ConstraintType enumerates the kinds of constraint definitions the
// catalog records. NotNull is synthesized automatically for every
// system table column (see NotNullConstraintDescription); the others
// are user-declared.
type ConstraintType int

const (
	ConstraintNotNull ConstraintType = iota
	ConstraintUnique
	ConstraintCheck
	ConstraintReference
)

// ConstraintDef is a reusable (type, expression) template; expr holds
// the serialized form of an internal/expr.Node tree, opaque at this
// layer to avoid a dependency cycle between catalog and expr.
type ConstraintDef struct {
	ID   ObjectID
	Type ConstraintType
	Expr string
}

// Constraint attaches one ConstraintDef to a table or a specific column
// within it, under a name unique within the table.
type Constraint struct {
	ID          ObjectID
	Name        string
	State       ConstraintState
	TableID     ObjectID
	ColumnID    ObjectID // InvalidObjectID when table-scoped rather than column-scoped.
	DefID       ObjectID
	Description string
}

// IsColumnScoped reports whether the constraint is bound to one column
// rather than the whole table.
func (c Constraint) IsColumnScoped() bool { return c.ColumnID != InvalidObjectID }

// IndexColumn is one column participating in an Index, in declared
// order, with its own ascending/descending sort flag.
type IndexColumn struct {
	ColumnDefID ObjectID
	Descending  bool
}

// Index belongs to exactly one Table.
type Index struct {
	ID           ObjectID
	Name         string
	Type         string
	Unique       bool
	TableID      ObjectID
	Columns      []IndexColumn
	DataFileSize uint64
	Description  string
}

// UserState mirrors ColumnState's "active vs disabled" shape for user
// accounts.
type UserState int

const (
	UserStateActive UserState = iota
	UserStateDisabled
)

// User is a database principal independent of any one Database.
type User struct {
	ID          ObjectID
	Name        string
	RealName    string
	State       UserState
	Description string
}

// AccessKeyState mirrors UserState.
type AccessKeyState int

const (
	AccessKeyStateActive AccessKeyState = iota
	AccessKeyStateDisabled
)

// AccessKey is a named credential belonging to a User.
type AccessKey struct {
	ID          ObjectID
	UserID      ObjectID
	Name        string
	Text        string
	State       AccessKeyState
	Description string
}

// Token is a named, expiring authentication credential belonging to a
// User, distinct from an AccessKey in that it carries an expiration
// timestamp rather than an enable/disable state.
type Token struct {
	ID          ObjectID
	UserID      ObjectID
	Name        string
	Value       string
	Expiration  int64 // Unix seconds.
	Description string
}

// PermissionType is a bitmask of the operations a Permission grants.
type PermissionType uint64

const (
	PermissionSelect PermissionType = 1 << iota
	PermissionInsert
	PermissionUpdate
	PermissionDelete
	PermissionCreate
	PermissionDrop
	PermissionAlter
	PermissionShow
	PermissionSelectSystem
)

// Permission associates (user, database, objectType, objectId) with a
// granted-operations bitmask and a grant-options bitmask (the subset of
// PermissionType the user may, in turn, re-grant to others).
type Permission struct {
	ID           ObjectID
	UserID       ObjectID
	DatabaseID   ObjectID
	ObjectType   ObjectType
	ObjectID     ObjectID
	Permissions  PermissionType
	GrantOptions PermissionType
}

// MasterColumnRecord is the implicit per-row record every table
// maintains: the TRID value, the DML class that produced it, and a
// pointer to where the row's payload columns live.
type MasterColumnRecord struct {
	TRID        uint64
	Operation   DmlOperationType
	BlockID     uint64
	BlockOffset uint32
}
