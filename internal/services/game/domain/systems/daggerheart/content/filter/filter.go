// Package filter compiles AIP-160 filter expressions over content fields.
//
//	domain = "blade" AND level <= 3
//	NOT type = "spell" OR recall_cost > 1
//
// String comparisons ignore case and surrounding space.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
)

// Fields defines filterable fields and their types.
type Fields map[string]FieldType

// Resolver returns a value for a field name.
type Resolver func(name string) (any, bool)

// Program is a compiled filter. The zero value and a nil Program match
// everything.
type Program struct {
	source string
	root   *expr.Expr
}

// Compile parses filter against the declared fields. A blank filter yields a
// program that matches everything.
func Compile(filter string, fields Fields) (*Program, error) {
	if strings.TrimSpace(filter) == "" {
		return &Program{}, nil
	}
	decls, err := declarations(fields)
	if err != nil {
		return nil, err
	}
	parsed, err := filtering.ParseFilterString(filter, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	return &Program{source: filter, root: parsed.CheckedExpr.GetExpr()}, nil
}

// String returns the source filter.
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Match evaluates the program against one record.
func (p *Program) Match(resolve Resolver) (bool, error) {
	if p == nil || p.root == nil {
		return true, nil
	}
	return evaluate(p.root, resolve)
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, name := range names {
		switch fields[name] {
		case FieldString:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeInt))
		default:
			return nil, fmt.Errorf("unsupported field type for %s", name)
		}
	}
	return filtering.NewDeclarations(decls...)
}
