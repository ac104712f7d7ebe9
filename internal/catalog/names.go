// Package catalog defines the fixed system catalog schema — the SYS
// database and its frozen set of system tables — plus the validators
// that keep user-created catalog objects consistent with it. All names
// here are the literal uppercase identifiers the engine recognizes; they
// are frozen, not configurable.
package catalog

// MasterColumnName is the name every table's master (row identifier)
// column carries.
const MasterColumnName = "TRID"

// MasterColumnDescription is the frozen description of every table's
// master column.
const MasterColumnDescription = "Unique row identifier"

// NotNullConstraintDescription is the frozen description attached to the
// implicit NOT NULL constraint every system table column carries.
const NotNullConstraintDescription = "Forces non-null values on the column"

// SystemDatabaseName is the name of the always-present system database.
const SystemDatabaseName = "SYS"

// SystemDatabaseDescription is the frozen description of the system
// database.
const SystemDatabaseDescription = "Stores information about other known databases, users and their permissions."

// ReservedAllName is the reserved identifier denoting "all objects" or
// "all columns" in permission grants and SELECT projections.
const ReservedAllName = "*"

// AllObjectsName and AllColumnsName are the two contexts ReservedAllName
// is recognized in: a permission grant naming every object of a kind,
// and a SELECT projection naming every column of a dataset.
const (
	AllObjectsName = ReservedAllName
	AllColumnsName = ReservedAllName
)

// ColumnDef describes one fixed column of a system table.
type ColumnDef struct {
	Name        string
	Description string
}

// TableDef describes one fixed system table.
type TableDef struct {
	Name        string
	Description string
	Columns     []ColumnDef
}

func col(name, description string) ColumnDef {
	return ColumnDef{Name: name, Description: description}
}

// SystemTables is the exact, frozen set of system catalog tables. Every
// table implicitly also carries a master column named MasterColumnName.
var SystemTables = []TableDef{
	{
		Name:        "SYS_DATABASES",
		Description: "Stores information about known databases",
		Columns: []ColumnDef{
			col("NAME", "Database name"),
			col("UUID", "Database UUID"),
			col("CIPHER_ID", "Cipher identifier"),
			col("DESCRIPTION", "Database description"),
		},
	},
	{
		Name:        "SYS_TABLES",
		Description: "Stores information about known tables",
		Columns: []ColumnDef{
			col("TYPE", "Table storage type"),
			col("NAME", "Table name"),
			col("FIRST_USER_TRID", "First user record row identifier"),
			col("CURRENT_COLUMN_SET_ID", "Current column set"),
			col("DESCRIPTION", "Table description"),
		},
	},
	{
		Name:        "SYS_DUMMY",
		Description: "Helper table for computing constant expressions",
		Columns: []ColumnDef{
			col("DUMMY", "Dummy column"),
		},
	},
	{
		Name:        "SYS_COLUMN_SETS",
		Description: "Stores information about column sets",
		Columns: []ColumnDef{
			col("TABLE_ID", "Table identifier"),
			col("COLUMN_COUNT", "Number of columns in this column set"),
		},
	},
	{
		Name:        "SYS_COLUMNS",
		Description: "Stores information about table columns",
		Columns: []ColumnDef{
			col("TABLE_ID", "Table identifier"),
			col("DATA_TYPE", "Column data type"),
			col("NAME", "Column name"),
			col("STATE", "Column state"),
			col("BLOCK_DATA_AREA_SIZE", "Data area size in the block file"),
			col("DESCRIPTION", "Column description"),
		},
	},
	{
		Name:        "SYS_COLUMN_DEFS",
		Description: "Stores information about column definitions",
		Columns: []ColumnDef{
			col("COLUMN_ID", "Column identifier"),
			col("CONSTRAINT_COUNT", "Number of constraints associated with this column definition"),
		},
	},
	{
		Name:        "SYS_COLUMN_SET_COLUMNS",
		Description: "Stores information about inclusion of column definitions into column sets",
		Columns: []ColumnDef{
			col("COLUMN_SET_ID", "Column set identifier"),
			col("COLUMN_DEF_ID", "Associated column definition identifier"),
		},
	},
	{
		Name:        "SYS_CONSTRAINT_DEFS",
		Description: "Stores information about unique constraint definitions",
		Columns: []ColumnDef{
			col("TYPE", "Constraint type"),
			col("EXPR", "Constraint expression"),
		},
	},
	{
		Name:        "SYS_CONSTRAINTS",
		Description: "Stores information about constraints",
		Columns: []ColumnDef{
			col("NAME", "Constraint name"),
			col("STATE", "Constraint state"),
			col("TABLE_ID", "Table identifier, to which this constraint belongs"),
			col("COLUMN_ID", "Column identifier, to which this constraint belongs"),
			col("DEF_ID", "Constraint definition identifier"),
			col("DESCRIPTION", "Constraint description"),
		},
	},
	{
		Name:        "SYS_COLUMN_DEF_CONSTRAINTS",
		Description: "Stores information about constraints associated with column definitions",
		Columns: []ColumnDef{
			col("COLUMN_DEF_ID", "Column definition identifier"),
			col("CONSTRAINT_ID", "Associated constraint identifier"),
		},
	},
	{
		Name:        "SYS_INDICES",
		Description: "Stores information about indices",
		Columns: []ColumnDef{
			col("TYPE", "Index type"),
			col("UNIQUE", "Indication that index is unique"),
			col("NAME", "Index name"),
			col("TABLE_ID", "Table identifier, to which index applies"),
			col("DATA_FILE_SIZE", "Data file size"),
			col("DESCRIPTION", "Index description"),
		},
	},
	{
		Name:        "SYS_INDEX_COLUMNS",
		Description: "Stores information about indexed columns",
		Columns: []ColumnDef{
			col("INDEX_ID", "Index identifier"),
			col("COLUMN_DEF_ID", "Associated column defintion identifier"),
			col("SORT_DESC", "Indication of descending sort order by this column"),
		},
	},
	{
		Name:        "SYS_USERS",
		Description: "Stores information about users",
		Columns: []ColumnDef{
			col("NAME", "User name"),
			col("REAL_NAME", "User's real name"),
			col("STATE", "User state"),
			col("DESCRIPTION", "User description"),
		},
	},
	{
		Name:        "SYS_USER_ACCESS_KEYS",
		Description: "Stores information about user's access keys",
		Columns: []ColumnDef{
			col("USER_ID", "User identifier"),
			col("NAME", "Access key name"),
			col("TEXT", "Access key text"),
			col("STATE", "Access key state"),
			col("DESCRIPTION", "Access key description"),
		},
	},
	{
		Name:        "SYS_USER_TOKENS",
		Description: "Stores authentication tokens",
		Columns: []ColumnDef{
			col("USER_ID", "User identifier"),
			col("NAME", "Token name"),
			col("VALUE", "Token value"),
			col("EXPIRATION_TIMESTAMP", "Token expiration timestamp"),
			col("DESCRIPTION", "Token description"),
		},
	},
	{
		Name:        "SYS_USER_PERMISSIONS",
		Description: "Stores information about user permissions",
		Columns: []ColumnDef{
			col("USER_ID", "User identifier"),
			col("DATABASE_ID", "Database identifier"),
			col("OBJECT_TYPE", "Database object type"),
			col("OBJECT_ID", "Database object identifier"),
			col("PERMISSIONS", "Permission mask"),
			col("GRANT_OPTIONS", "Grant option mask"),
		},
	},
}

// SystemTableNames returns the set of reserved system table names.
func SystemTableNames() map[string]struct{} {
	names := make(map[string]struct{}, len(SystemTables))
	for _, t := range SystemTables {
		names[t.Name] = struct{}{}
	}
	return names
}

// LookupSystemTable returns the TableDef for name, if it names a system
// table.
func LookupSystemTable(name string) (TableDef, bool) {
	for _, t := range SystemTables {
		if t.Name == name {
			return t, true
		}
	}
	return TableDef{}, false
}
