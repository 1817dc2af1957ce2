package directive

import (
	"fmt"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
)

// ValidateForSchema runs §4.E's per-site checks over every directive
// application reachable from a schema under construction: the types
// themselves, their fields and field arguments, enum values, input-object
// fields, and the `schema { ... }` definition's own directives. types
// must be given in document order, matching spec.md §5's ordering
// requirement for schema-level checks.
func ValidateForSchema(types []ast.NamedType, defs map[string]*ast.DirectiveDef, schemaDirs ast.DirectiveList) errors.Problems {
	var sites []Site
	if len(schemaDirs) > 0 {
		sites = append(sites, Site{Directives: schemaDirs, Location: ast.LocSchema, Label: "the schema definition"})
	}

	for _, named := range types {
		sites = append(sites, typeSites(named)...)
	}

	return ValidateSites(sites, defs)
}

func typeSites(named ast.NamedType) []Site {
	var sites []Site
	add := func(dirs ast.DirectiveList, loc ast.DirectiveLocation, label string) {
		if len(dirs) > 0 {
			sites = append(sites, Site{Directives: dirs, Location: loc, Label: label})
		}
	}

	switch t := named.(type) {
	case *ast.ScalarType:
		add(t.Dirs, ast.LocScalar, fmt.Sprintf("scalar %q", t.Name))
	case *ast.ObjectType:
		add(t.Dirs, ast.LocObject, fmt.Sprintf("type %q", t.Name))
		sites = append(sites, fieldSites(t.Fields, t.Name)...)
	case *ast.InterfaceType:
		add(t.Dirs, ast.LocInterface, fmt.Sprintf("interface %q", t.Name))
		sites = append(sites, fieldSites(t.Fields, t.Name)...)
	case *ast.UnionType:
		add(t.Dirs, ast.LocUnion, fmt.Sprintf("union %q", t.Name))
	case *ast.EnumType:
		add(t.Dirs, ast.LocEnum, fmt.Sprintf("enum %q", t.Name))
		for _, v := range t.Values {
			add(v.Dirs, ast.LocEnumValue, fmt.Sprintf("enum value %q.%s", t.Name, v.Name))
		}
	case *ast.InputObjectType:
		add(t.Dirs, ast.LocInputObject, fmt.Sprintf("input %q", t.Name))
		for _, f := range t.InputFields {
			add(f.Dirs, ast.LocInputFieldDefinition, fmt.Sprintf("input field %q.%s", t.Name, f.Name))
		}
	}
	return sites
}

func fieldSites(fields ast.FieldList, ownerName string) []Site {
	var sites []Site
	for _, f := range fields {
		if len(f.Dirs) > 0 {
			sites = append(sites, Site{Directives: f.Dirs, Location: ast.LocFieldDefinition, Label: fmt.Sprintf("field %q.%s", ownerName, f.Name)})
		}
		for _, arg := range f.Args {
			if len(arg.Dirs) > 0 {
				sites = append(sites, Site{Directives: arg.Dirs, Location: ast.LocArgumentDefinition, Label: fmt.Sprintf("argument %q.%s(%s:)", ownerName, f.Name, arg.Name)})
			}
		}
	}
	return sites
}
