package sdl

import (
	"fmt"
	"strings"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/directive"
	"github.com/gqlcore/schemacore/schema"
)

// builtinDirectiveNames are never re-printed: every sealed Schema carries
// them regardless of what the source document declared, so printing them
// back would be redundant noise a reader didn't write.
var builtinDirectiveNames = map[string]bool{
	"skip":       true,
	"include":    true,
	"deprecated": true,
}

// Render implements §4.H: a deterministic SDL printer for the text
// ParseText reads. Descriptions are printed as quoted strings, which
// ParseText reads only when BuildOption.UseStringDescriptions is set; under
// the default options, rendered text that carries a description does not
// parse again. There is no teacher or pack precedent for printing a schema
// back to SDL text (the teacher only ever renders introspection JSON), so
// this follows the parser's own per-kind dispatch shape and the lexer's
// plain strings.Builder-based text assembly rather than any third-party
// template or code-generation library — nothing in the pack does this
// either.
func Render(s *schema.Schema) string {
	var b strings.Builder

	if needsSchemaBlock(s) {
		renderSchemaBlock(&b, s)
	}

	for _, named := range s.OrderedTypes() {
		renderType(&b, named)
	}

	for _, name := range directive.SortedDefNames(s.Directives()) {
		if builtinDirectiveNames[name] {
			continue
		}
		renderDirectiveDef(&b, s.Directives()[name])
	}

	return b.String()
}

// needsSchemaBlock implements §4.H's omission rule: the `schema { ... }`
// block is skipped iff the root has exactly one operation field, it is
// named "Query", and the root carries no directives.
func needsSchemaBlock(s *schema.Schema) bool {
	if len(s.SchemaDirectives()) > 0 {
		return true
	}
	if s.MutationType() != nil || s.SubscriptionType() != nil {
		return true
	}
	return s.QueryType() == nil || s.QueryType().Name != "Query"
}

func renderSchemaBlock(b *strings.Builder, s *schema.Schema) {
	fmt.Fprintf(b, "schema%s {\n", renderDirectiveList(s.SchemaDirectives()))
	if q := s.QueryType(); q != nil {
		fmt.Fprintf(b, "  query: %s\n", q.Name)
	}
	if m := s.MutationType(); m != nil {
		fmt.Fprintf(b, "  mutation: %s\n", m.Name)
	}
	if sub := s.SubscriptionType(); sub != nil {
		fmt.Fprintf(b, "  subscription: %s\n", sub.Name)
	}
	b.WriteString("}\n")
}

func renderType(b *strings.Builder, named ast.NamedType) {
	switch t := named.(type) {
	case *ast.ScalarType:
		renderDescription(b, t.Desc)
		fmt.Fprintf(b, "scalar %s%s\n", t.Name, renderDirectiveList(t.Dirs))
	case *ast.EnumType:
		renderDescription(b, t.Desc)
		fmt.Fprintf(b, "enum %s%s {\n", t.Name, renderDirectiveList(t.Dirs))
		for _, v := range t.Values {
			renderDescription(b, v.Desc)
			fmt.Fprintf(b, "  %s%s\n", v.Name, renderDirectiveList(v.Dirs))
		}
		b.WriteString("}\n")
	case *ast.ObjectType:
		renderDescription(b, t.Desc)
		fmt.Fprintf(b, "type %s%s%s {\n", t.Name, renderImplements(t.Interfaces), renderDirectiveList(t.Dirs))
		renderFieldList(b, t.Fields)
		b.WriteString("}\n")
	case *ast.InterfaceType:
		renderDescription(b, t.Desc)
		fmt.Fprintf(b, "interface %s%s%s {\n", t.Name, renderImplements(t.Interfaces), renderDirectiveList(t.Dirs))
		renderFieldList(b, t.Fields)
		b.WriteString("}\n")
	case *ast.UnionType:
		renderDescription(b, t.Desc)
		names := make([]string, len(t.Members))
		for i, m := range t.Members {
			names[i] = m.Name
		}
		fmt.Fprintf(b, "union %s%s = %s\n", t.Name, renderDirectiveList(t.Dirs), strings.Join(names, " | "))
	case *ast.InputObjectType:
		renderDescription(b, t.Desc)
		fmt.Fprintf(b, "input %s%s {\n", t.Name, renderDirectiveList(t.Dirs))
		for _, f := range t.InputFields {
			renderDescription(b, f.Desc)
			fmt.Fprintf(b, "  %s\n", renderInputValue(f))
		}
		b.WriteString("}\n")
	}
}

func renderImplements(ifaces []*ast.InterfaceType) string {
	if len(ifaces) == 0 {
		return ""
	}
	names := make([]string, len(ifaces))
	for i, iface := range ifaces {
		names[i] = iface.Name
	}
	return " implements " + strings.Join(names, " & ")
}

func renderFieldList(b *strings.Builder, fields ast.FieldList) {
	for _, f := range fields {
		renderDescription(b, f.Desc)
		fmt.Fprintf(b, "  %s%s: %s%s\n", f.Name, renderArgList(f.Args), renderTypeRef(f.Type), renderDirectiveList(f.Dirs))
	}
}

func renderArgList(args ast.InputValueList) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = renderInputValue(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderInputValue(iv *ast.InputValueDefinition) string {
	s := iv.Name + ": " + renderTypeRef(iv.Type)
	if iv.DefaultValue != nil {
		s += " = " + iv.DefaultValue.String()
	}
	return s + renderDirectiveList(iv.Dirs)
}

// renderTypeRef implements §6's output grammar: `[T]` for lists, `T!` for
// non-null, bare `T` for nullable — the inverse of parseType's internal
// convention, where a bare ast.Type (not wrapped in Nullable) is non-null.
// The Nullable/non-null decision is made once at this layer, by whether t
// itself is wrapped, before descending into the named-or-list base type;
// recursing into the base type directly (without stripping Nullable
// first) would let an inner List/NamedType's own bareness be mistaken for
// non-null even when the outer Nullable said otherwise.
func renderTypeRef(t ast.Type) string {
	nullable := false
	if n, ok := t.(*ast.Nullable); ok {
		nullable = true
		t = n.OfType
	}
	base := renderBaseType(t)
	if nullable {
		return base
	}
	return base + "!"
}

func renderBaseType(t ast.Type) string {
	switch v := t.(type) {
	case *ast.List:
		return "[" + renderTypeRef(v.OfType) + "]"
	case *ast.TypeRef:
		return v.Name
	case ast.NamedType:
		return v.TypeName()
	default:
		return "<unknown>"
	}
}

func renderDirectiveList(dirs ast.DirectiveList) string {
	if len(dirs) == 0 {
		return ""
	}
	var parts []string
	for _, d := range dirs {
		parts = append(parts, renderDirective(d))
	}
	return " " + strings.Join(parts, " ")
}

func renderDirective(d *ast.Directive) string {
	if len(d.Args) == 0 {
		return "@" + d.Name
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = a.Name + ": " + a.Value.String()
	}
	return "@" + d.Name + "(" + strings.Join(parts, ", ") + ")"
}

func renderDirectiveDef(b *strings.Builder, d *ast.DirectiveDef) {
	renderDescription(b, d.Desc)
	fmt.Fprintf(b, "directive @%s%s", d.Name, renderArgList(d.Args))
	if d.IsRepeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on " + strings.Join(sortedLocations(d.Locations), " | "))
	b.WriteString("\n")
}

// sortedLocations renders a directive's allowed locations in the fixed
// order the GraphQL spec lists them in, not map iteration order, so two
// renders of the same DirectiveDef are always byte-identical.
func sortedLocations(locs map[ast.DirectiveLocation]bool) []string {
	order := []ast.DirectiveLocation{
		ast.LocQuery, ast.LocMutation, ast.LocSubscription, ast.LocField,
		ast.LocFragmentDefinition, ast.LocFragmentSpread, ast.LocInlineFragment,
		ast.LocVariableDefinition, ast.LocSchema, ast.LocScalar, ast.LocObject,
		ast.LocFieldDefinition, ast.LocArgumentDefinition, ast.LocInterface,
		ast.LocUnion, ast.LocEnum, ast.LocEnumValue, ast.LocInputObject,
		ast.LocInputFieldDefinition,
	}
	var out []string
	for _, loc := range order {
		if locs[loc] {
			out = append(out, string(loc))
		}
	}
	return out
}

func renderDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	fmt.Fprintf(b, "%q\n", desc)
}
