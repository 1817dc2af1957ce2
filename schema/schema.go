// Package schema implements the schema container: a sealed, concurrently
// readable map of named types, directive definitions and root operation
// types, built by the sdl package's parser or programmatically through
// Builder.
package schema

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gqlcore/schemacore/ast"
)

// Schema is an immutable, concurrently-readable collection of GraphQL
// type and directive definitions, plus the three root operation types. A
// Schema is only ever produced by sealing a Builder; there is no exported
// way to mutate one after that point.
type Schema struct {
	types      map[string]ast.NamedType
	typeOrder  []string
	directives map[string]*ast.DirectiveDef

	query        *ast.ObjectType
	mutation     *ast.ObjectType
	subscription *ast.ObjectType
	schemaDirs   ast.DirectiveList
	revision     uuid.UUID

	// memo caches Lookup's per-name results (Definition's answer for each
	// name resolved through this Schema); Definition itself does not use it.
	memo cacheMap
}

// cacheMap is a copy-on-write map guarded by a mutex, so readers never
// block on each other and writers never observe a half-built map.
type cacheMap struct {
	value atomic.Value
	mu    sync.Mutex
}

func (c *cacheMap) getOrElseUpdate(key interface{}, create func() interface{}) interface{} {
	last, _ := c.value.Load().(map[interface{}]interface{})
	if v, ok := last[key]; ok {
		return v
	}

	v := create()

	c.mu.Lock()
	last, _ = c.value.Load().(map[interface{}]interface{})
	next := make(map[interface{}]interface{}, len(last)+1)
	for k, existing := range last {
		next[k] = existing
	}
	next[key] = v
	c.value.Store(next)
	c.mu.Unlock()
	return v
}

var builtinScalars = map[string]*ast.ScalarType{
	"Int":     {Name: "Int"},
	"Float":   {Name: "Float"},
	"String":  {Name: "String"},
	"Boolean": {Name: "Boolean"},
	"ID":      {Name: "ID"},
}

// Lookup implements ast.Resolver so that *Schema can back a TypeRef.
// Resolution (including the built-in-scalar fallback) is memoised per
// §5's requirement that TypeRef→NamedType be cached for the schema's
// lifetime: repeated Dealias calls against the same name cost one map
// read instead of two after the first.
func (s *Schema) Lookup(name string) ast.NamedType {
	cached := s.memo.getOrElseUpdate(name, func() interface{} {
		return s.Definition(name)
	})
	def, _ := cached.(ast.NamedType)
	return def
}

// Definition looks up a named type by name, falling back to the five
// built-in scalars when name matches one and the schema did not declare
// it explicitly (a schema is free to redeclare them; the SDL parser
// registers a `scalar` declaration of a built-in name as an ordinary
// ScalarType of that name, and that declared node is returned here). The
// returned type is never a TypeRef.
func (s *Schema) Definition(name string) ast.NamedType {
	if t, ok := s.types[name]; ok {
		return t
	}
	if t, ok := builtinScalars[name]; ok {
		return t
	}
	return nil
}

// Types returns every named type the schema declares, not including the
// five built-in scalars unless they were explicitly redeclared.
func (s *Schema) Types() map[string]ast.NamedType {
	return s.types
}

// OrderedTypes returns the schema's declared types in the order they were
// added to the builder that produced it — the order the renderer (§4.H)
// must print them in.
func (s *Schema) OrderedTypes() []ast.NamedType {
	out := make([]ast.NamedType, len(s.typeOrder))
	for i, name := range s.typeOrder {
		out[i] = s.types[name]
	}
	return out
}

// Ref returns a cheap by-name handle to a (possibly not-yet-defined)
// type. Resolution never fails at this point; an undefined name is only
// ever reported once validation runs.
func (s *Schema) Ref(name string) ast.Type {
	return &ast.TypeRef{In: s, Name: name}
}

// Directive looks up a directive definition by name.
func (s *Schema) Directive(name string) *ast.DirectiveDef {
	return s.directives[name]
}

// Directives returns every directive definition known to the schema,
// including the three built-ins.
func (s *Schema) Directives() map[string]*ast.DirectiveDef {
	return s.directives
}

// SchemaDirectives returns the directives applied to the `schema { ... }`
// definition itself, if any.
func (s *Schema) SchemaDirectives() ast.DirectiveList {
	return s.schemaDirs
}

// QueryType returns the schema's query root, which is always non-nil for
// a successfully sealed Schema.
func (s *Schema) QueryType() *ast.ObjectType { return s.query }

// MutationType returns the schema's mutation root, or nil if none exists.
func (s *Schema) MutationType() *ast.ObjectType { return s.mutation }

// SubscriptionType returns the schema's subscription root, or nil if none
// exists.
func (s *Schema) SubscriptionType() *ast.ObjectType { return s.subscription }

// Revision returns the identity stamped onto the schema when it was
// sealed by Builder.Complete. It carries no semantic meaning of its own;
// it exists so a downstream cache can key on "this exact sealed schema"
// more cheaply than hashing its contents.
func (s *Schema) Revision() uuid.UUID { return s.revision }

// IsRootType reports whether named is the query, mutation or subscription
// root of the schema.
func (s *Schema) IsRootType(named ast.NamedType) bool {
	o, ok := named.(*ast.ObjectType)
	if !ok {
		return false
	}
	return o == s.query || o == s.mutation || o == s.subscription
}
