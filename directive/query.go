package directive

import (
	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
)

// The query AST parser and elaborator are external collaborators (they
// consume the schema through ast.NamedType/ast.Type/IsSubtype/
// UnderlyingField, not through this package): this module owns the
// directive-placement rules, not query syntax. The types below are the
// minimal shape a caller's query representation needs to expose for
// ValidateForQuery to run the location/repetition/argument checks of
// §4.E against it; a real parser's richer node types only need to
// produce this view.

// OperationKind identifies which of the three root operation types a
// query document's operation targets.
type OperationKind int

const (
	OpQuery OperationKind = iota
	OpMutation
	OpSubscription
)

func (k OperationKind) location() ast.DirectiveLocation {
	switch k {
	case OpMutation:
		return ast.LocMutation
	case OpSubscription:
		return ast.LocSubscription
	default:
		return ast.LocQuery
	}
}

// VariableDefinition is one `$name: Type = default` entry of an
// operation's variable list.
type VariableDefinition struct {
	Name       string
	Directives ast.DirectiveList
}

// SelectionField is one selected field, carrying whatever nested
// selections and fragment spreads it contains so the traversal can
// recurse.
type SelectionField struct {
	Name            string
	Directives      ast.DirectiveList
	Selections      []Selection
}

// FragmentSpread is a `...Name` reference inside a selection set.
type FragmentSpread struct {
	FragmentName string
	Directives   ast.DirectiveList
}

// InlineFragment is a `... on Type { ... }` selection.
type InlineFragment struct {
	Directives ast.DirectiveList
	Selections []Selection
}

// Selection is any one of the three selection-set entry kinds; exactly
// one field should be non-nil.
type Selection struct {
	Field          *SelectionField
	FragmentSpread *FragmentSpread
	InlineFragment *InlineFragment
}

// FragmentDefinition is a top-level `fragment Name on Type { ... }`.
type FragmentDefinition struct {
	Name       string
	Directives ast.DirectiveList
	Selections []Selection
}

// OperationDefinition is a top-level query/mutation/subscription.
type OperationDefinition struct {
	Kind        OperationKind
	Directives  ast.DirectiveList
	Variables   []VariableDefinition
	Selections  []Selection
}

// Document groups everything ValidateForQuery needs to traverse: the
// operation being validated plus every fragment it might spread.
type Document struct {
	Operation *OperationDefinition
	Fragments map[string]*FragmentDefinition
}

// ValidateForQuery runs §4.E's per-site checks over every directive
// application reachable from doc.Operation — the operation itself, its
// variable definitions, and every field, fragment spread and inline
// fragment in its selection tree (including through spread fragments).
// Every argument value is first substituted against vars (so a query
// directive like `@skip(if: $cond)` is checked against the bound value
// of $cond, not rejected as an unresolved variable reference) before the
// occurrence and argument-coercion checks of ValidateSites run.
func ValidateForQuery(defs map[string]*ast.DirectiveDef, doc *Document, vars map[string]ast.Value) errors.Problems {
	var sites []Site
	var problems errors.Problems

	addSite := func(dirs ast.DirectiveList, loc ast.DirectiveLocation, label string) {
		elaborated, err := elaborateArgs(dirs, vars)
		if err != nil {
			problems = append(problems, err)
			return
		}
		sites = append(sites, Site{Directives: elaborated, Location: loc, Label: label})
	}

	collectOperationSites(doc.Operation, addSite)
	visited := map[string]bool{}
	collectSelectionSites(doc.Operation.Selections, doc.Fragments, visited, addSite)

	problems = append(problems, ValidateSites(sites, defs)...)
	return problems
}

// elaborateArgs substitutes vars into every directive application's
// argument values, without consulting any directive definition — it is
// a plain AST-level substitution, independent of the occurrence and
// coercion checks that follow in ValidateSites.
func elaborateArgs(dirs ast.DirectiveList, vars map[string]ast.Value) (ast.DirectiveList, *errors.Problem) {
	if len(dirs) == 0 {
		return dirs, nil
	}
	out := make(ast.DirectiveList, len(dirs))
	for i, d := range dirs {
		args := make([]ast.Binding, len(d.Args))
		for j, arg := range d.Args {
			elaborated, err := ast.ElaborateValue(arg.Value, vars)
			if err != nil {
				return nil, err
			}
			args[j] = ast.Binding{Name: arg.Name, Value: elaborated}
		}
		out[i] = &ast.Directive{Name: d.Name, Args: args, Pos: d.Pos}
	}
	return out, nil
}

func collectOperationSites(op *OperationDefinition, addSite func(ast.DirectiveList, ast.DirectiveLocation, string)) {
	loc := op.Kind.location()
	addSite(op.Directives, loc, "the operation")
	for _, v := range op.Variables {
		addSite(v.Directives, ast.LocVariableDefinition, "variable \"$"+v.Name+"\"")
	}
}

func collectSelectionSites(sels []Selection, fragments map[string]*FragmentDefinition, visited map[string]bool, addSite func(ast.DirectiveList, ast.DirectiveLocation, string)) {
	for _, sel := range sels {
		switch {
		case sel.Field != nil:
			f := sel.Field
			addSite(f.Directives, ast.LocField, "field \""+f.Name+"\"")
			collectSelectionSites(f.Selections, fragments, visited, addSite)
		case sel.FragmentSpread != nil:
			fs := sel.FragmentSpread
			addSite(fs.Directives, ast.LocFragmentSpread, "fragment spread \"..."+fs.FragmentName+"\"")
			if visited[fs.FragmentName] {
				continue
			}
			visited[fs.FragmentName] = true
			if def, ok := fragments[fs.FragmentName]; ok {
				addSite(def.Directives, ast.LocFragmentDefinition, "fragment \""+def.Name+"\"")
				collectSelectionSites(def.Selections, fragments, visited, addSite)
			}
		case sel.InlineFragment != nil:
			inf := sel.InlineFragment
			addSite(inf.Directives, ast.LocInlineFragment, "inline fragment")
			collectSelectionSites(inf.Selections, fragments, visited, addSite)
		}
	}
}
