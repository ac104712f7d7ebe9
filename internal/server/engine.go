// Package server wires the system catalog, the SQL command dispatcher,
// and the rowset writers together into the request-handling core both
// the native wire protocol listener and the REST front end drive.
// Query planning and execution over user data are out of scope; this
// is the bounded, end-to-end collaborator that exercises the catalog
// and rowset layers as glue, without owning any of those layers itself.
package server

import (
	"fmt"
	"sort"
	"sync"

	"nexusdb/internal/catalog"
	"nexusdb/internal/rowset"
	"nexusdb/internal/sqlcmd"
	"nexusdb/internal/variant"
)

// Engine holds the in-memory bootstrap of the system catalog plus the
// command dispatcher every connection shares. It is safe for concurrent
// use: the catalog is read-mostly (system tables are frozen) and the
// handful of DDL operations it does accept are serialized by a mutex.
type Engine struct {
	mu         sync.Mutex
	database   catalog.Database
	tables     map[string]catalog.Table
	columns    map[catalog.ObjectID][]catalog.Column
	dispatcher *sqlcmd.Dispatcher
	nextID     catalog.ObjectID
}

// New bootstraps an Engine with the frozen SYS database and its system
// tables populated from internal/catalog.SystemTables.
func New() *Engine {
	e := &Engine{
		tables:     make(map[string]catalog.Table),
		columns:    make(map[catalog.ObjectID][]catalog.Column),
		dispatcher: sqlcmd.NewDispatcher(),
		nextID:     1,
	}
	e.database = catalog.Database{
		ID:          e.allocID(),
		Name:        catalog.SystemDatabaseName,
		UUID:        catalog.ComputeDatabaseUUID(catalog.SystemDatabaseName, catalog.SystemDatabaseCreateTimestamp),
		Description: catalog.SystemDatabaseDescription,
	}
	for _, def := range catalog.SystemTables {
		e.addTable(def.Name, def.Description, catalog.TableTypeSystem, columnsFromDefs(def.Columns))
	}
	return e
}

func columnsFromDefs(defs []catalog.ColumnDef) []namedColumn {
	cols := make([]namedColumn, 0, len(defs))
	for _, d := range defs {
		cols = append(cols, namedColumn{name: d.Name, description: d.Description})
	}
	return cols
}

type namedColumn struct {
	name        string
	description string
}

func (e *Engine) allocID() catalog.ObjectID {
	id := e.nextID
	e.nextID++
	return id
}

func (e *Engine) addTable(name, description string, typ catalog.TableType, cols []namedColumn) catalog.Table {
	tbl := catalog.Table{
		ID:          e.allocID(),
		DatabaseID:  e.database.ID,
		Name:        name,
		Type:        typ,
		Description: description,
	}
	e.tables[catalog.CanonicalName(name)] = tbl

	columns := make([]catalog.Column, 0, len(cols)+1)
	columns = append(columns, catalog.Column{
		ID:          e.allocID(),
		TableID:     tbl.ID,
		Name:        catalog.MasterColumnName,
		DataType:    variant.TypeUInt64,
		Description: catalog.MasterColumnDescription,
	})
	for _, c := range cols {
		columns = append(columns, catalog.Column{
			ID:          e.allocID(),
			TableID:     tbl.ID,
			Name:        c.name,
			DataType:    variant.TypeString,
			Description: c.description,
		})
	}
	e.columns[tbl.ID] = columns
	return tbl
}

// HandleCommand parses text as exactly one SQL statement and writes its
// result through w: a catalog listing for SELECT, the new table's
// columns for CREATE TABLE, and a one-row acknowledgement for every
// other supported kind.
func (e *Engine) HandleCommand(text string, w rowset.Writer) error {
	cmd, err := e.dispatcher.ParseOne(text)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	switch cmd.Kind {
	case sqlcmd.KindSelect:
		return e.writeTableList(w)
	case sqlcmd.KindCreateTable:
		return e.handleCreateTable(cmd, w)
	case sqlcmd.KindInsert, sqlcmd.KindUpdate, sqlcmd.KindDelete,
		sqlcmd.KindCreateDatabase, sqlcmd.KindDropTable, sqlcmd.KindDropDatabase:
		return writeAck(w, cmd.Kind.String())
	default:
		return fmt.Errorf("server: %w: %s", sqlcmd.ErrUnsupportedStatement, cmd.Kind)
	}
}

// writeTableList is the bounded SELECT behavior: a listing of every
// table currently known to the catalog, standing in for the full query
// planner/executor this engine does not implement.
func (e *Engine) writeTableList(w rowset.Writer) error {
	e.mu.Lock()
	names := make([]string, 0, len(e.tables))
	descriptions := make(map[string]string, len(e.tables))
	for _, tbl := range e.tables {
		names = append(names, tbl.Name)
		descriptions[tbl.Name] = tbl.Description
	}
	e.mu.Unlock()

	sort.Strings(names)

	columns := []rowset.ColumnMeta{
		{Name: "NAME", Type: variant.TypeString},
		{Name: "DESCRIPTION", Type: variant.TypeString},
	}
	if err := w.BeginRowset(columns, len(names) > 0); err != nil {
		return err
	}
	mask := make([]byte, rowset.NullMaskSize(len(columns)))
	for _, name := range names {
		row := []variant.Variant{variant.FromString(name), variant.FromString(descriptions[name])}
		if err := w.WriteRow(row, mask); err != nil {
			return err
		}
	}
	return w.EndRowset()
}

func (e *Engine) handleCreateTable(cmd sqlcmd.Command, w rowset.Writer) error {
	e.mu.Lock()
	if _, exists := e.tables[catalog.CanonicalName(cmd.Table)]; exists {
		e.mu.Unlock()
		return fmt.Errorf("server: table %q already exists", cmd.Table)
	}
	cols := make([]namedColumn, 0, len(cmd.Columns))
	for _, name := range cmd.Columns {
		cols = append(cols, namedColumn{name: name})
	}
	e.addTable(cmd.Table, "", catalog.TableTypeUser, cols)
	e.mu.Unlock()

	columns := []rowset.ColumnMeta{{Name: "COLUMN", Type: variant.TypeString}}
	if err := w.BeginRowset(columns, len(cmd.Columns) > 0); err != nil {
		return err
	}
	mask := make([]byte, rowset.NullMaskSize(len(columns)))
	for _, name := range cmd.Columns {
		if err := w.WriteRow([]variant.Variant{variant.FromString(name)}, mask); err != nil {
			return err
		}
	}
	return w.EndRowset()
}

func writeAck(w rowset.Writer, kind string) error {
	columns := []rowset.ColumnMeta{{Name: "STATUS", Type: variant.TypeString}}
	if err := w.BeginRowset(columns, true); err != nil {
		return err
	}
	mask := make([]byte, rowset.NullMaskSize(len(columns)))
	if err := w.WriteRow([]variant.Variant{variant.FromString("OK: " + kind)}, mask); err != nil {
		return err
	}
	return w.EndRowset()
}
