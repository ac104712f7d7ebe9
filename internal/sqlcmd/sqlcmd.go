// Package sqlcmd is the native-protocol command dispatcher's bounded SQL
// front end: it uses pingcap/tidb/pkg/parser to tokenize and validate
// incoming command text and classify it into the handful of statement
// kinds the IO Manager's request handler dispatches on. It is
// deliberately not a full SQL grammar or planner — per the engine's
// scope, query planning and expression-tree construction belong to
// internal/catalog and internal/expr, fed by the minimal extraction this
// package performs (statement kind, target table, column list for
// CREATE TABLE).
//
// CREATE TABLE is handled by walking its *ast.CreateTableStmt directly;
// every other statement kind classifies by a plain Go type switch,
// restoring the statement's own source text via format.RestoreCtx
// rather than drilling into each statement's internal field layout.
package sqlcmd

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// Kind classifies a parsed statement into the bounded set of commands
// the request handler understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	KindCreateTable
	KindCreateDatabase
	KindDropTable
	KindDropDatabase
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	case KindCreateTable:
		return "CREATE TABLE"
	case KindCreateDatabase:
		return "CREATE DATABASE"
	case KindDropTable:
		return "DROP TABLE"
	case KindDropDatabase:
		return "DROP DATABASE"
	default:
		return "UNKNOWN"
	}
}

// Command is the bounded extraction this package performs from one
// parsed statement: its kind, the table it creates (only populated for
// CREATE TABLE, where the column list is also extracted), and the
// statement's own restored source text for anything downstream needs
// to re-parse with a fuller grammar.
type Command struct {
	Kind    Kind
	Table   string
	Columns []string
	Text    string
}

// ErrUnsupportedStatement is returned for syntactically valid SQL this
// engine's request handler has no dispatch target for (e.g. ALTER TABLE).
var ErrUnsupportedStatement = fmt.Errorf("sqlcmd: unsupported statement kind")

// Dispatcher tokenizes and classifies command text. It wraps one
// *parser.Parser per instance and is not safe for concurrent use by
// multiple goroutines without external synchronization.
type Dispatcher struct {
	p *parser.Parser
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{p: parser.New()}
}

// Parse tokenizes text (one or more semicolon-separated statements) and
// classifies each into a Command, in order.
func (d *Dispatcher) Parse(text string) ([]Command, error) {
	stmtNodes, _, err := d.p.Parse(text, "", "")
	if err != nil {
		return nil, fmt.Errorf("sqlcmd: parse: %w", err)
	}

	cmds := make([]Command, 0, len(stmtNodes))
	for _, stmt := range stmtNodes {
		cmd, err := classify(stmt)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// ParseOne tokenizes text expecting exactly one statement, the shape
// the native wire protocol's single-command request carries.
func (d *Dispatcher) ParseOne(text string) (Command, error) {
	cmds, err := d.Parse(text)
	if err != nil {
		return Command{}, err
	}
	if len(cmds) != 1 {
		return Command{}, fmt.Errorf("sqlcmd: expected exactly one statement, got %d", len(cmds))
	}
	return cmds[0], nil
}

func classify(stmt ast.StmtNode) (Command, error) {
	kind, err := kindOf(stmt)
	if err != nil {
		return Command{}, err
	}

	cmd := Command{Kind: kind, Text: restore(stmt)}
	if create, ok := stmt.(*ast.CreateTableStmt); ok {
		cmd.Table = create.Table.Name.O
		cmd.Columns = createColumnNames(create)
	}
	return cmd, nil
}

func kindOf(stmt ast.StmtNode) (Kind, error) {
	switch stmt.(type) {
	case *ast.SelectStmt:
		return KindSelect, nil
	case *ast.InsertStmt:
		return KindInsert, nil
	case *ast.UpdateStmt:
		return KindUpdate, nil
	case *ast.DeleteStmt:
		return KindDelete, nil
	case *ast.CreateTableStmt:
		return KindCreateTable, nil
	case *ast.CreateDatabaseStmt:
		return KindCreateDatabase, nil
	case *ast.DropTableStmt:
		return KindDropTable, nil
	case *ast.DropDatabaseStmt:
		return KindDropDatabase, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %T", ErrUnsupportedStatement, stmt)
	}
}

func createColumnNames(s *ast.CreateTableStmt) []string {
	names := make([]string, 0, len(s.Cols))
	for _, c := range s.Cols {
		names = append(names, c.Name.Name.O)
	}
	return names
}

// restore renders stmt back to SQL text via format.RestoreCtx.
func restore(stmt ast.StmtNode) string {
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := stmt.Restore(ctx); err != nil {
		return ""
	}
	return strings.TrimSpace(sb.String())
}
