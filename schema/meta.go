package schema

import "github.com/gqlcore/schemacore/ast"

// builtinDirectives are appended to every sealed schema regardless of
// whether the source document declared its own directives, mirroring the
// teacher's meta-schema (internal/schema/meta.go), which always ships the
// same three directive definitions alongside whatever a document defines.
var builtinDirectives = []*ast.DirectiveDef{
	{
		Name: "skip",
		Desc: "Directs the executor to skip this field or fragment when the `if` argument is true.",
		Args: ast.InputValueList{
			{Name: "if", Desc: "Skipped when true.", Type: &ast.ScalarType{Name: "Boolean"}},
		},
		Locations: locSet(ast.LocField, ast.LocFragmentSpread, ast.LocInlineFragment),
	},
	{
		Name: "include",
		Desc: "Directs the executor to include this field or fragment only when the `if` argument is true.",
		Args: ast.InputValueList{
			{Name: "if", Desc: "Included when true.", Type: &ast.ScalarType{Name: "Boolean"}},
		},
		Locations: locSet(ast.LocField, ast.LocFragmentSpread, ast.LocInlineFragment),
	},
	{
		Name: "deprecated",
		Desc: "Marks an element of a GraphQL schema as no longer supported.",
		Args: ast.InputValueList{
			{
				Name:         "reason",
				Desc:         "Explains why this element was deprecated, usually also including a suggestion for how to access supported similar data.",
				Type:         &ast.Nullable{OfType: &ast.ScalarType{Name: "String"}},
				DefaultValue: ast.StringValue{Value: "No longer supported."},
			},
		},
		Locations: locSet(ast.LocFieldDefinition, ast.LocArgumentDefinition, ast.LocInputFieldDefinition, ast.LocEnumValue),
	},
}

func locSet(locs ...ast.DirectiveLocation) map[ast.DirectiveLocation]bool {
	m := make(map[ast.DirectiveLocation]bool, len(locs))
	for _, l := range locs {
		m[l] = true
	}
	return m
}
