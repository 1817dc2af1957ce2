// Package directive implements directive-application validation: the
// per-site checks of undefined directive, illegal location, illegal
// repetition and unknown argument (schema.Validate runs this against the
// whole schema at seal time; ValidateForQuery runs it against a query
// tree), plus the argument-coercion/elaboration step that rewrites a
// ast.DirectiveList's literal arguments into resolved ast.Bindings.
//
// Grounded on internal/validation/validation.go's validateDirectives.
package directive

import (
	"fmt"
	"sort"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
	"github.com/gqlcore/schemacore/internal/coerce"
)

// Site is one place in a schema or query where a DirectiveList was
// applied, identified for error messages and for looking up which
// location legality rules apply.
type Site struct {
	Directives ast.DirectiveList
	Location   ast.DirectiveLocation
	Label      string // e.g. `field "User.name"`, used in Problem messages
}

// ValidateSites runs the per-site occurrence and argument checks (§4.E)
// against every site, given the full set of directive definitions in
// scope. Occurrence problems (undefined directive, illegal location,
// illegal repetition) are reported before argument problems for every
// site, matching the ordering spec.md §4.E and §8 require.
func ValidateSites(sites []Site, defs map[string]*ast.DirectiveDef) errors.Problems {
	var occurrence, argument errors.Problems
	for _, site := range sites {
		occ, arg := validateSite(site, defs)
		occurrence = append(occurrence, occ...)
		argument = append(argument, arg...)
	}
	return append(occurrence, argument...)
}

func validateSite(site Site, defs map[string]*ast.DirectiveDef) (occurrence, argument errors.Problems) {
	for _, d := range site.Directives {
		def, ok := defs[d.Name]
		if !ok {
			occurrence = append(occurrence, errors.Errorf("Undefined directive %q in %s.", d.Name, site.Label))
			continue
		}
		if !def.AllowedAt(site.Location) {
			occurrence = append(occurrence, errors.Errorf("Directive %q may not be used on %s (in %s).", d.Name, site.Location, site.Label))
		}
	}

	// Repetition problems are reported in document order, one per
	// repeated name, at its first re-encounter — ranging a map of counts
	// would report them in a randomized order whenever a site carries
	// more than one duplicated name.
	occurrences := map[string]int{}
	for _, d := range site.Directives {
		occurrences[d.Name]++
		if occurrences[d.Name] != 2 {
			continue
		}
		if def, ok := defs[d.Name]; ok && def.IsRepeatable {
			continue
		}
		occurrence = append(occurrence, errors.Errorf("The directive %q can only be used once at this location in %s.", d.Name, site.Label))
	}

	for _, d := range site.Directives {
		def, ok := defs[d.Name]
		if !ok {
			continue
		}
		for _, arg := range d.Args {
			if def.Args.Get(arg.Name) == nil {
				argument = append(argument, errors.Errorf("Unknown argument %q for directive %q in %s.", arg.Name, d.Name, site.Label))
			}
		}
		for _, argDef := range def.Args {
			var (
				val     ast.Value
				present bool
			)
			for _, arg := range d.Args {
				if arg.Name == argDef.Name {
					val, present = arg.Value, true
					break
				}
			}
			label := fmt.Sprintf("directive %q in %s", d.Name, site.Label)
			if _, err := coerce.Literal(argDef, val, present, label); err != nil {
				argument = append(argument, err)
			}
		}
	}

	return occurrence, argument
}

// Elaborate runs steps 4-5 of §4.E successfully and returns dirs with
// every applied directive's arguments rewritten to fully-resolved
// Bindings, substituting vars and coercing each through component D. It
// assumes ValidateSites has already been run and reported no Problems
// for this site — Elaborate itself stops at the first coercion failure.
func Elaborate(dirs ast.DirectiveList, defs map[string]*ast.DirectiveDef, vars map[string]ast.Value, label string) (ast.DirectiveList, *errors.Problem) {
	out := make(ast.DirectiveList, len(dirs))
	for i, d := range dirs {
		def, ok := defs[d.Name]
		if !ok {
			out[i] = d
			continue
		}

		bindings := make([]ast.Binding, 0, len(def.Args))
		for _, argDef := range def.Args {
			var (
				val     ast.Value
				present bool
			)
			for _, arg := range d.Args {
				if arg.Name == argDef.Name {
					val, present = arg.Value, true
					break
				}
			}
			if present && val != nil {
				elaborated, err := ast.ElaborateValue(val, vars)
				if err != nil {
					return nil, err
				}
				val = elaborated
			}
			coerced, err := coerce.Literal(argDef, val, present, fmt.Sprintf("directive %q in %s", d.Name, label))
			if err != nil {
				return nil, err
			}
			if coerced.Kind() == ast.KindAbsent {
				continue
			}
			bindings = append(bindings, ast.Binding{Name: argDef.Name, Value: coerced})
		}
		out[i] = &ast.Directive{Name: d.Name, Args: bindings, Pos: d.Pos}
	}
	return out, nil
}

// SortedDefNames returns defs's keys in lexical order, for callers (the
// renderer, in particular) that need a deterministic iteration order
// over a directive-definition map.
func SortedDefNames(defs map[string]*ast.DirectiveDef) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
