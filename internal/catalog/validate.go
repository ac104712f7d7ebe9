// Validation in this package uses a small-composable-function shape:
// one function per concern, each returning a wrapped sentinel error,
// rather than one monolithic validator.
package catalog

import (
	"fmt"
	"strings"
)

// CanonicalName upper-cases name the way every catalog object name is
// stored and compared: case-insensitively, canonicalized to uppercase
// ASCII.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ValidateName checks that name is non-empty and does not collide
// (case-insensitively) with any name already present in existing, or
// with a reserved identifier.
func ValidateName(name string, existing map[string]struct{}) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if trimmed == ReservedAllName {
		return fmt.Errorf("%w: %q is reserved", ErrNameConflict, name)
	}
	canonical := CanonicalName(trimmed)
	if _, ok := existing[canonical]; ok {
		return fmt.Errorf("%w: %q already exists in this scope", ErrNameConflict, name)
	}
	return nil
}

// ValidateDatabaseName checks a prospective database name against the
// reserved system database name and a set of already-registered
// database names.
func ValidateDatabaseName(name string, existingDatabases map[string]struct{}) error {
	if CanonicalName(name) == SystemDatabaseName {
		return fmt.Errorf("%w: %q is the reserved system database name", ErrNameConflict, name)
	}
	return ValidateName(name, existingDatabases)
}

// ValidateTableName checks a prospective table name within a database
// against the fixed system table names (every database logically shares
// the same SYS_* namespace reservation, so a user table named like a
// system table is rejected in any database) and the database's
// already-registered table names.
func ValidateTableName(name string, existingTables map[string]struct{}) error {
	canonical := CanonicalName(name)
	systemNames := SystemTableNames()
	if _, reserved := systemNames[canonical]; reserved {
		return fmt.Errorf("%w: %q collides with a system table name", ErrNameConflict, name)
	}
	return ValidateName(name, existingTables)
}

// ValidateColumnName checks a prospective column name within a table
// against the master column name and the table's already-registered
// column names.
func ValidateColumnName(name string, existingColumns map[string]struct{}) error {
	if CanonicalName(name) == MasterColumnName {
		return fmt.Errorf("%w: %q collides with the master column name", ErrNameConflict, name)
	}
	return ValidateName(name, existingColumns)
}

// ValidateConstraintName checks a prospective constraint name within a
// table against the table's already-registered constraint names.
func ValidateConstraintName(name string, existingConstraints map[string]struct{}) error {
	return ValidateName(name, existingConstraints)
}

// ValidateIndexName checks a prospective index name within a table
// against the table's already-registered index names.
func ValidateIndexName(name string, existingIndexes map[string]struct{}) error {
	return ValidateName(name, existingIndexes)
}

// ValidateObjectType rejects any ObjectType value above Max: the type
// enumeration is closed.
func ValidateObjectType(t ObjectType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidObjectType, int(t))
	}
	return nil
}

// ValidateTableParentage checks the invariant that every table belongs
// to exactly one database: tbl.DatabaseID must name a real database id
// drawn from knownDatabases.
func ValidateTableParentage(tbl Table, knownDatabases map[ObjectID]struct{}) error {
	if _, ok := knownDatabases[tbl.DatabaseID]; !ok {
		return fmt.Errorf("catalog: table %q has no owning database (id %d)", tbl.Name, tbl.DatabaseID)
	}
	return nil
}

// ValidateColumnParentage checks the invariant that every column
// belongs to exactly one table.
func ValidateColumnParentage(col Column, knownTables map[ObjectID]struct{}) error {
	if _, ok := knownTables[col.TableID]; !ok {
		return fmt.Errorf("catalog: column %q has no owning table (id %d)", col.Name, col.TableID)
	}
	return nil
}

// ValidateIndexParentage checks the invariant that every index belongs
// to exactly one table.
func ValidateIndexParentage(idx Index, knownTables map[ObjectID]struct{}) error {
	if _, ok := knownTables[idx.TableID]; !ok {
		return fmt.Errorf("catalog: index %q has no owning table (id %d)", idx.Name, idx.TableID)
	}
	return nil
}

// ValidateMasterColumnUniqueness checks the invariant that a table's
// master-column record for a given TRID value is unique within the
// table, given the TRIDs already assigned.
func ValidateMasterColumnUniqueness(trid uint64, existingTRIDs map[uint64]struct{}) error {
	if _, ok := existingTRIDs[trid]; ok {
		return fmt.Errorf("catalog: duplicate TRID %d", trid)
	}
	return nil
}
