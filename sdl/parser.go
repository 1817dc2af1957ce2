// Package sdl implements §4.F (schema parser) and §4.H (schema renderer):
// turning GraphQL SDL text into a sealed schema.Schema, and back again.
//
// Grounded on the teacher's internal/schema/schema.go (Schema.Parse,
// parseSchema and its per-definition-kind helpers) and internal/common's
// lexing helpers (types.go, input_values.go/values.go, literals.go,
// directive.go), adapted to this module's ast package and deferred-TypeRef
// construction style.
package sdl

import (
	"fmt"
	"strconv"
	"text/scanner"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
	"github.com/gqlcore/schemacore/internal/lexer"
	"github.com/gqlcore/schemacore/schema"
)

// ParseText is the single public entry point driving builder, parser,
// validator and seal (§4.I): it parses doc into a Builder, then calls
// Complete, which runs §4.G before sealing. A non-nil Problems result
// means the returned *schema.Schema is nil.
func ParseText(doc string, opts ...schema.BuildOption) (*schema.Schema, errors.Problems) {
	return parseTextResult(doc, opts...).AsPair()
}

// parseTextResult is ParseText's §7 Result-typed core: CatchSyntaxError
// turns the lexer's own syntaxError panics into a Problem, but re-panics
// anything else it catches (internal/lexer/lexer.go's CatchSyntaxError
// doc comment). The recover here is that boundary's backstop — it wraps
// a genuinely unexpected panic as an InternalError instead of letting it
// escape ParseText uncaught.
func parseTextResult(doc string, opts ...schema.BuildOption) (result errors.Result[*schema.Schema]) {
	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				result = errors.InternalErrorResult[*schema.Schema](cause)
				return
			}
			result = errors.InternalErrorResult[*schema.Schema](fmt.Errorf("%v", r))
		}
	}()

	opt := schema.DefaultBuildOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	b := schema.NewBuilder()
	l := lexer.NewFromString(doc, opt.UseStringDescriptions)

	p := &parser{b: b, opt: opt}
	syntaxErr := l.CatchSyntaxError(func() {
		l.ConsumeWhitespace()
		p.parseDocument(l)
	})
	if syntaxErr != nil {
		return errors.Failure[*schema.Schema](errors.Problems{syntaxErr})
	}

	s, problems := b.Complete()
	if s == nil {
		return errors.Failure[*schema.Schema](problems)
	}
	return errors.Warning(s, problems)
}

// parser carries the state accumulated across a single ParseText call that
// cannot be resolved until the whole document has been read: which object
// and interface types still need their `implements` list resolved to concrete
// *ast.InterfaceType values, and which unions still need their member list
// resolved to concrete *ast.ObjectType values. Mirrors the teacher's
// Object.interfaceNames / Union.typeNames deferred-resolution fields,
// which this module's ast package keeps out of the public type definitions
// (they are a parser-internal bookkeeping concern, not part of the sealed
// data model).
type parser struct {
	b         *schema.Builder
	opt       schema.BuildOption
	pendingIf []pendingInterfaces
	pendingUn []pendingUnion
	schemaDef *schemaBlock
	typeCount int
}

// pendingInterfaces defers resolving one `implements` clause until every
// type in the document has been registered. implementer is either an
// *ast.ObjectType or an *ast.InterfaceType — both kinds may name
// interfaces they implement (invariant 6), but only an ObjectType's
// concrete instances populate an interface's PossibleTypes.
type pendingInterfaces struct {
	implementer ast.NamedType
	names       []lexer.Ident
}

type pendingUnion struct {
	union *ast.UnionType
	names []lexer.Ident
}

type schemaBlock struct {
	query, mutation, subscription lexer.Ident
	hasQuery, hasMutation, hasSubscription bool
	dirs ast.DirectiveList
}

func (p *parser) parseDocument(l *lexer.Lexer) {
	for l.Peek() != scanner.EOF {
		desc := l.DescComment()
		switch kw := l.ConsumeIdent(); kw {
		case "schema":
			if p.schemaDef != nil {
				l.SyntaxError("At most one schema definition permitted")
			}
			p.schemaDef = p.parseSchemaBlock(l)
		case "type":
			p.countType(l)
			obj := p.parseObjectType(l)
			obj.Desc = desc
			p.checkNewTypeName(l, obj.Name)
			p.b.AddType(obj)
		case "interface":
			p.countType(l)
			iface := p.parseInterfaceType(l)
			iface.Desc = desc
			p.checkNewTypeName(l, iface.Name)
			p.b.AddType(iface)
		case "union":
			p.countType(l)
			u := p.parseUnionType(l)
			u.Desc = desc
			p.checkNewTypeName(l, u.Name)
			p.b.AddType(u)
		case "enum":
			p.countType(l)
			e := p.parseEnumType(l)
			e.Desc = desc
			p.checkNewTypeName(l, e.Name)
			p.b.AddType(e)
		case "input":
			p.countType(l)
			in := p.parseInputObjectType(l)
			in.Desc = desc
			p.checkNewTypeName(l, in.Name)
			p.b.AddType(in)
		case "scalar":
			p.countType(l)
			s := p.parseScalarType(l)
			s.Desc = desc
			p.checkNewTypeName(l, s.Name)
			p.b.AddType(s)
		case "directive":
			d := p.parseDirectiveDef(l)
			d.Desc = desc
			if p.b.Directive(d.Name) != nil {
				l.SyntaxError(fmt.Sprintf("directive %q defined more than once", d.Name))
			}
			p.b.AddDirective(d)
		default:
			l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "schema", "type", "interface", "union", "enum", "input", "scalar" or "directive"`, kw))
		}
	}

	p.resolveImplements(l)
	p.resolveUnionMembers(l)
	p.resolveSchemaBlock(l)
}

func (p *parser) countType(l *lexer.Lexer) {
	p.typeCount++
	if p.opt.MaxTypes > 0 && p.typeCount > p.opt.MaxTypes {
		l.SyntaxError(fmt.Sprintf("schema exceeds the configured maximum of %d type definitions", p.opt.MaxTypes))
	}
}

// checkNewTypeName enforces §4.G's "no duplicate top-level type name"
// invariant at the point a name is first claimed. Builder.AddType itself
// stays permissive (a second registration silently overwrites) because by
// the time component G's validation pass runs, the earlier definition is
// already gone from the map — detecting the collision is only possible
// here, while both definitions are still in view.
func (p *parser) checkNewTypeName(l *lexer.Lexer, name string) {
	if p.b.Type(name) != nil {
		l.SyntaxError(fmt.Sprintf("%q defined more than once", name))
	}
}

func (p *parser) resolveImplements(l *lexer.Lexer) {
	for _, pend := range p.pendingIf {
		for _, name := range pend.names {
			t := p.b.Type(name.Name)
			iface, ok := t.(*ast.InterfaceType)
			if !ok {
				l.SyntaxError(fmt.Sprintf("type %q is not an interface", name.Name))
			}
			switch impl := pend.implementer.(type) {
			case *ast.ObjectType:
				impl.Interfaces = append(impl.Interfaces, iface)
				iface.PossibleTypes = append(iface.PossibleTypes, impl)
			case *ast.InterfaceType:
				impl.Interfaces = append(impl.Interfaces, iface)
			}
		}
	}
}

func (p *parser) resolveUnionMembers(l *lexer.Lexer) {
	for _, pend := range p.pendingUn {
		for _, name := range pend.names {
			t := p.b.Type(name.Name)
			obj, ok := t.(*ast.ObjectType)
			if !ok {
				l.SyntaxError(fmt.Sprintf("type %q is not an object type", name.Name))
			}
			pend.union.Members = append(pend.union.Members, obj)
		}
	}
}

func (p *parser) resolveSchemaBlock(l *lexer.Lexer) {
	if p.schemaDef == nil {
		return
	}
	resolveRoot := func(ident lexer.Ident, has bool, label string) *ast.ObjectType {
		if !has {
			return nil
		}
		t := p.b.Type(ident.Name)
		obj, ok := t.(*ast.ObjectType)
		if !ok {
			l.SyntaxError(fmt.Sprintf("%s type %q not found", label, ident.Name))
		}
		return obj
	}
	if !p.schemaDef.hasQuery {
		p.schemaDef.query = lexer.Ident{Name: "Query"}
		p.schemaDef.hasQuery = true
	}
	query := resolveRoot(p.schemaDef.query, p.schemaDef.hasQuery, "query")
	mutation := resolveRoot(p.schemaDef.mutation, p.schemaDef.hasMutation, "mutation")
	subscription := resolveRoot(p.schemaDef.subscription, p.schemaDef.hasSubscription, "subscription")
	p.b.SetSchemaType(query, mutation, subscription, p.schemaDef.dirs)
}

func (p *parser) parseSchemaBlock(l *lexer.Lexer) *schemaBlock {
	block := &schemaBlock{dirs: p.parseDirectiveList(l)}
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		ident := l.ConsumeIdentWithLoc()
		l.ConsumeToken(':')
		typeIdent := l.ConsumeIdentWithLoc()
		switch ident.Name {
		case "query":
			block.query, block.hasQuery = typeIdent, true
		case "mutation":
			block.mutation, block.hasMutation = typeIdent, true
		case "subscription":
			block.subscription, block.hasSubscription = typeIdent, true
		default:
			l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "query", "mutation" or "subscription"`, ident.Name))
		}
	}
	l.ConsumeToken('}')
	return block
}

func (p *parser) parseObjectType(l *lexer.Lexer) *ast.ObjectType {
	o := &ast.ObjectType{}
	ident := l.ConsumeIdentWithLoc()
	o.Name = ident.Name
	o.Pos = ident.Loc

	if names := p.parseImplementsClause(l); names != nil {
		p.pendingIf = append(p.pendingIf, pendingInterfaces{implementer: o, names: names})
	}

	o.Dirs = p.parseDirectiveList(l)
	l.ConsumeToken('{')
	o.Fields = p.parseFieldList(l)
	l.ConsumeToken('}')
	if len(o.Fields) == 0 {
		l.SyntaxError(fmt.Sprintf("object type %q must define one or more fields", o.Name))
	}
	return o
}

// parseImplementsClause parses an optional `implements A & B & ...`
// clause, shared by object and interface type definitions (invariant 6
// allows both to implement interfaces). It returns nil if no clause is
// present.
func (p *parser) parseImplementsClause(l *lexer.Lexer) []lexer.Ident {
	if l.Peek() != scanner.Ident || l.PeekIdent() != "implements" {
		return nil
	}
	l.ConsumeKeyword("implements")
	var names []lexer.Ident
	for {
		if l.Peek() == '&' {
			l.ConsumeToken('&')
		}
		names = append(names, l.ConsumeIdentWithLoc())
		if l.Peek() != '&' {
			break
		}
	}
	return names
}

func (p *parser) parseInterfaceType(l *lexer.Lexer) *ast.InterfaceType {
	i := &ast.InterfaceType{}
	ident := l.ConsumeIdentWithLoc()
	i.Name = ident.Name
	i.Pos = ident.Loc

	if names := p.parseImplementsClause(l); names != nil {
		p.pendingIf = append(p.pendingIf, pendingInterfaces{implementer: i, names: names})
	}

	i.Dirs = p.parseDirectiveList(l)
	l.ConsumeToken('{')
	i.Fields = p.parseFieldList(l)
	l.ConsumeToken('}')
	if len(i.Fields) == 0 {
		l.SyntaxError(fmt.Sprintf("interface type %q must define one or more fields", i.Name))
	}
	return i
}

func (p *parser) parseUnionType(l *lexer.Lexer) *ast.UnionType {
	u := &ast.UnionType{}
	ident := l.ConsumeIdentWithLoc()
	u.Name = ident.Name
	u.Pos = ident.Loc
	u.Dirs = p.parseDirectiveList(l)
	l.ConsumeToken('=')
	if l.Peek() == '|' {
		l.ConsumeToken('|')
	}
	names := []lexer.Ident{l.ConsumeIdentWithLoc()}
	for l.Peek() == '|' {
		l.ConsumeToken('|')
		names = append(names, l.ConsumeIdentWithLoc())
	}
	p.pendingUn = append(p.pendingUn, pendingUnion{union: u, names: names})
	return u
}

func (p *parser) parseEnumType(l *lexer.Lexer) *ast.EnumType {
	e := &ast.EnumType{}
	ident := l.ConsumeIdentWithLoc()
	e.Name = ident.Name
	e.Pos = ident.Loc
	e.Dirs = p.parseDirectiveList(l)
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		v := &ast.EnumValueDefinition{}
		v.Desc = l.DescComment()
		vident := l.ConsumeIdentWithLoc()
		v.Name = vident.Name
		v.Pos = vident.Loc
		v.Dirs = p.parseDirectiveList(l)
		e.Values = append(e.Values, v)
	}
	if len(e.Values) == 0 {
		l.SyntaxError(fmt.Sprintf("enum type %q must define one or more values", e.Name))
	}
	l.ConsumeToken('}')
	return e
}

func (p *parser) parseInputObjectType(l *lexer.Lexer) *ast.InputObjectType {
	in := &ast.InputObjectType{}
	ident := l.ConsumeIdentWithLoc()
	in.Name = ident.Name
	in.Pos = ident.Loc
	in.Dirs = p.parseDirectiveList(l)
	l.ConsumeToken('{')
	for l.Peek() != '}' {
		in.InputFields = append(in.InputFields, p.parseInputValue(l))
	}
	if len(in.InputFields) == 0 {
		l.SyntaxError(fmt.Sprintf("input type %q must define one or more fields", in.Name))
	}
	l.ConsumeToken('}')
	return in
}

func (p *parser) parseScalarType(l *lexer.Lexer) *ast.ScalarType {
	ident := l.ConsumeIdentWithLoc()
	s := &ast.ScalarType{Name: ident.Name, Pos: ident.Loc}
	s.Dirs = p.parseDirectiveList(l)
	return s
}

func (p *parser) parseDirectiveDef(l *lexer.Lexer) *ast.DirectiveDef {
	d := &ast.DirectiveDef{}
	l.ConsumeToken('@')
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Pos = ident.Loc
	if l.Peek() == '(' {
		l.ConsumeToken('(')
		for l.Peek() != ')' {
			d.Args = append(d.Args, p.parseInputValue(l))
		}
		l.ConsumeToken(')')
	}
	if l.Peek() == scanner.Ident && l.PeekIdent() == "repeatable" {
		l.ConsumeKeyword("repeatable")
		d.IsRepeatable = true
	}
	l.ConsumeKeyword("on")
	if l.Peek() == '|' {
		l.ConsumeToken('|')
	}
	d.Locations = map[ast.DirectiveLocation]bool{}
	for {
		loc := l.ConsumeIdent()
		d.Locations[ast.DirectiveLocation(loc)] = true
		if l.Peek() != '|' {
			break
		}
		l.ConsumeToken('|')
	}
	return d
}

func (p *parser) parseFieldList(l *lexer.Lexer) ast.FieldList {
	var fields ast.FieldList
	for l.Peek() != '}' {
		f := &ast.FieldDefinition{}
		f.Desc = l.DescComment()
		ident := l.ConsumeIdentWithLoc()
		f.Name = ident.Name
		f.Pos = ident.Loc
		f.Args = p.parseArgumentDeclList(l)
		l.ConsumeToken(':')
		f.Type = p.parseType(l)
		f.Dirs = p.parseDirectiveList(l)
		fields = append(fields, f)
	}
	return fields
}

func (p *parser) parseArgumentDeclList(l *lexer.Lexer) ast.InputValueList {
	var args ast.InputValueList
	if l.Peek() == '(' {
		l.ConsumeToken('(')
		for l.Peek() != ')' {
			args = append(args, p.parseInputValue(l))
		}
		l.ConsumeToken(')')
	}
	return args
}

func (p *parser) parseInputValue(l *lexer.Lexer) *ast.InputValueDefinition {
	iv := &ast.InputValueDefinition{}
	iv.Desc = l.DescComment()
	ident := l.ConsumeIdentWithLoc()
	iv.Name = ident.Name
	iv.Pos = ident.Loc
	l.ConsumeToken(':')
	iv.Type = p.parseType(l)
	if l.Peek() == '=' {
		l.ConsumeToken('=')
		iv.DefaultValue = parseValue(l)
	}
	iv.Dirs = p.parseDirectiveList(l)
	return iv
}

func (p *parser) parseDirectiveList(l *lexer.Lexer) ast.DirectiveList {
	var dirs ast.DirectiveList
	for l.Peek() == '@' {
		l.ConsumeToken('@')
		d := &ast.Directive{}
		ident := l.ConsumeIdentWithLoc()
		d.Name = ident.Name
		d.Pos = ident.Loc
		if l.Peek() == '(' {
			l.ConsumeToken('(')
			for l.Peek() != ')' {
				name := l.ConsumeIdent()
				l.ConsumeToken(':')
				d.Args = append(d.Args, ast.Binding{Name: name, Value: parseValue(l)})
			}
			l.ConsumeToken(')')
		}
		dirs = append(dirs, d)
	}
	return dirs
}

// parseType implements §4.F's mkType: types are nullable by default in SDL
// surface syntax, `!` makes a type non-null, `[...]` wraps in a list whose
// element type is independently nullable unless itself suffixed with `!`.
// Internally a bare ast.Type is non-null by default (the reverse
// convention), so nullability is applied only when the SDL did not write a
// trailing `!`.
func (p *parser) parseType(l *lexer.Lexer) ast.Type {
	var base ast.Type
	if l.Peek() == '[' {
		l.ConsumeToken('[')
		inner := p.parseType(l)
		l.ConsumeToken(']')
		base = &ast.List{OfType: inner}
	} else {
		name := l.ConsumeIdent()
		base = p.b.Ref(name)
	}

	if l.Peek() == '!' {
		l.ConsumeToken('!')
		return base
	}
	return &ast.Nullable{OfType: base}
}

// parseValue implements §4.A's literal grammar; SDL positions (default
// values, directive arguments) never admit `$variable` references, unlike
// query-side literals, which directive.Elaborate handles separately.
func parseValue(l *lexer.Lexer) ast.Value {
	switch l.Peek() {
	case '-':
		l.ConsumeToken('-')
		return parseNegativeNumber(l)
	case scanner.Int:
		return ast.IntValue{Value: l.ConsumeInt()}
	case scanner.Float:
		return ast.FloatValue{Value: l.ConsumeFloat()}
	case scanner.String:
		return ast.StringValue{Value: l.ConsumeString()}
	case scanner.Ident:
		switch l.PeekIdent() {
		case "true", "false":
			return ast.BooleanValue{Value: l.ConsumeBoolean()}
		case "null":
			l.ConsumeIdent()
			return ast.Null
		default:
			return ast.EnumValue{Name: l.ConsumeIdent()}
		}
	case '[':
		l.ConsumeToken('[')
		var values []ast.Value
		for l.Peek() != ']' {
			values = append(values, parseValue(l))
		}
		l.ConsumeToken(']')
		return ast.ListValue{Values: values}
	case '{':
		l.ConsumeToken('{')
		var fields []ast.ObjectField
		for l.Peek() != '}' {
			name := l.ConsumeIdent()
			l.ConsumeToken(':')
			fields = append(fields, ast.ObjectField{Name: name, Value: parseValue(l)})
		}
		l.ConsumeToken('}')
		return ast.ObjectValue{Fields: fields}
	default:
		l.SyntaxError("invalid value")
		panic("unreachable")
	}
}

func parseNegativeNumber(l *lexer.Lexer) ast.Value {
	lit := l.ConsumeLiteral()
	switch lit.Type {
	case scanner.Int:
		n, err := strconv.ParseInt("-"+lit.Text, 10, 32)
		if err != nil {
			l.SyntaxError("invalid int literal: -" + lit.Text)
		}
		return ast.IntValue{Value: int32(n)}
	case scanner.Float:
		f, err := strconv.ParseFloat("-"+lit.Text, 64)
		if err != nil {
			l.SyntaxError("invalid float literal: -" + lit.Text)
		}
		return ast.FloatValue{Value: f}
	default:
		l.SyntaxError("expected a number after '-'")
		panic("unreachable")
	}
}
