package schema

import (
	"github.com/google/uuid"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
)

// Builder accumulates type and directive definitions into a Schema under
// construction. It is the mutable counterpart to Schema: the parser
// populates one, then calls Complete to seal it. A Builder must not be
// read from concurrently with writes; once Complete returns, the
// resulting Schema is safe for concurrent readers and the Builder itself
// should be discarded.
type Builder struct {
	types      map[string]ast.NamedType
	typeOrder  []string
	directives map[string]*ast.DirectiveDef

	query        *ast.ObjectType
	mutation     *ast.ObjectType
	subscription *ast.ObjectType
	schemaDirs   ast.DirectiveList
	schemaSet    bool

	sealed bool
}

// NewBuilder allocates an empty, mutable schema skeleton.
func NewBuilder() *Builder {
	return &Builder{
		types:      make(map[string]ast.NamedType),
		directives: make(map[string]*ast.DirectiveDef),
	}
}

// Lookup implements ast.Resolver against the builder's in-progress type
// map, so a TypeRef minted during construction (via Ref) can be closed
// before the schema is sealed.
func (b *Builder) Lookup(name string) ast.NamedType {
	if t, ok := b.types[name]; ok {
		return t
	}
	if t, ok := builtinScalars[name]; ok {
		return t
	}
	return nil
}

// Ref mints a by-name TypeRef against the builder's in-progress type map.
func (b *Builder) Ref(name string) ast.Type {
	return &ast.TypeRef{In: b, Name: name}
}

// AddType registers a named type, remembering insertion order for the
// renderer. A second registration under the same name overwrites the
// first without moving its position in that order. Neither the builder
// nor Complete detects a duplicate name (validateUniqueDefinitions reports
// nothing); sdl.ParseText rejects a repeated type name before it reaches
// AddType.
func (b *Builder) AddType(t ast.NamedType) {
	name := t.TypeName()
	if _, exists := b.types[name]; !exists {
		b.typeOrder = append(b.typeOrder, name)
	}
	b.types[name] = t
}

// Type looks up a type already registered with the builder, without
// falling through to TypeRef.
func (b *Builder) Type(name string) ast.NamedType {
	return b.types[name]
}

// AddDirective registers a directive definition.
func (b *Builder) AddDirective(d *ast.DirectiveDef) {
	b.directives[d.Name] = d
}

// Directive looks up a directive already registered with the builder.
func (b *Builder) Directive(name string) *ast.DirectiveDef {
	return b.directives[name]
}

// SetSchemaType records the root operation types taken from an explicit
// `schema { ... }` definition. Calling it more than once is a caller
// error the parser itself must prevent (§4.F: "at most one schema
// definition permitted" is enforced before this is ever called twice).
func (b *Builder) SetSchemaType(query, mutation, subscription *ast.ObjectType, dirs ast.DirectiveList) {
	b.query = query
	b.mutation = mutation
	b.subscription = subscription
	b.schemaDirs = dirs
	b.schemaSet = true
}

// applyDefaultSchemaType fills in the §3 default root shape — Query from
// a type literally named "Query", Mutation/Subscription likewise — for
// documents that never declared an explicit `schema { ... }` block.
func (b *Builder) applyDefaultSchemaType() {
	if b.schemaSet {
		return
	}
	if t, ok := b.types["Query"].(*ast.ObjectType); ok {
		b.query = t
	}
	if t, ok := b.types["Mutation"].(*ast.ObjectType); ok {
		b.mutation = t
	}
	if t, ok := b.types["Subscription"].(*ast.ObjectType); ok {
		b.subscription = t
	}
}

// Complete runs the schema validator (component G) and, if it reports no
// Problems, seals the builder's contents into an immutable Schema. The
// three built-in directive definitions (@skip, @include, @deprecated) are
// appended before sealing, regardless of whether the source document
// declared its own directives. A non-empty Problems means the returned
// *Schema is nil — there is no partially-sealed result.
//
// TypeRef values minted against the Builder (via Ref) remain valid after
// sealing: Builder and the sealed Schema share the same underlying types
// map, so a TypeRef.In pointing at the discarded Builder still resolves
// exactly as it would against the Schema.
func (b *Builder) Complete() (*Schema, errors.Problems) {
	if b.sealed {
		panic("schema: Complete called twice on the same Builder")
	}
	b.sealed = true

	b.applyDefaultSchemaType()
	for _, d := range builtinDirectives {
		if _, exists := b.directives[d.Name]; !exists {
			b.directives[d.Name] = d
		}
	}

	problems := Validate(b)
	if len(problems) > 0 {
		return nil, problems
	}

	return &Schema{
		types:        b.types,
		typeOrder:    b.typeOrder,
		directives:   b.directives,
		query:        b.query,
		mutation:     b.mutation,
		subscription: b.subscription,
		schemaDirs:   b.schemaDirs,
		revision:     uuid.New(),
	}, nil
}
