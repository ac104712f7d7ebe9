// Package expr implements the expression evaluation core: a tree of
// typed operator nodes evaluated against a multi-dataset context, with
// SQL three-valued logic and numeric type promotion delegated to
// internal/variant.
//
// Rather than a class hierarchy with one virtual-method override per
// operator, every node here implements the same Node interface
// directly; the recursion a base class would otherwise supply is
// instead duplicated (briefly) in each node's Evaluate/ResultType/
// Validate/Clone.
package expr

import (
	"fmt"

	"nexusdb/internal/variant"
)

// Dataset exposes one row-producing source a ColumnRef can resolve
// against: a table, a derived rowset, or a single-row constant source
// like SYS_DUMMY.
type Dataset interface {
	Name() string
	Alias() string
	ColumnCount() int
	ColumnName(i int) string
	ColumnValue(i int) (variant.Variant, error)
	ColumnDataType(i int) variant.Type
}

// Context is the evaluation context a tree of expression Nodes is
// evaluated against: an ordered collection of Datasets plus a
// precomputed name-or-alias -> dataset-index map. Collisions between two
// datasets' names/aliases keep the first-seen mapping.
type Context struct {
	datasets []Dataset
	byName   map[string]int
}

// NewContext builds a Context over datasets, precomputing the name/alias
// index.
func NewContext(datasets ...Dataset) *Context {
	ctx := &Context{datasets: datasets, byName: make(map[string]int, len(datasets)*2)}
	for i, ds := range datasets {
		if ds.Name() != "" {
			if _, exists := ctx.byName[ds.Name()]; !exists {
				ctx.byName[ds.Name()] = i
			}
		}
		if ds.Alias() != "" {
			if _, exists := ctx.byName[ds.Alias()]; !exists {
				ctx.byName[ds.Alias()] = i
			}
		}
	}
	return ctx
}

// Dataset returns the i'th dataset, panicking-free via an ok flag since
// this is consulted at evaluation time on caller-trusted indices that
// were already validated against the tree.
func (c *Context) Dataset(i int) (Dataset, bool) {
	if i < 0 || i >= len(c.datasets) {
		return nil, false
	}
	return c.datasets[i], true
}

// ResolveDataset returns the index of the dataset known by name (its own
// name or its alias), or false if none matches.
func (c *Context) ResolveDataset(name string) (int, bool) {
	i, ok := c.byName[name]
	return i, ok
}

// ErrColumnRef is returned when a ColumnRef node's (DatasetIndex,
// ColumnIndex) pair does not resolve against the context.
var ErrColumnRef = fmt.Errorf("expr: unresolvable column reference")
