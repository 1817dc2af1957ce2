package schema

import (
	"io"

	"gopkg.in/yaml.v3"
)

// BuildOption configures how sdl.ParseText reads an SDL document. Grounded
// on the teacher's config/config.go plain-struct-with-Default() shape.
type BuildOption struct {
	// UseStringDescriptions prefers leading quoted-string descriptions over
	// `#` comments, mirroring the lexer's useStringDescriptions flag.
	UseStringDescriptions bool

	// MaxTypes caps the number of top-level type definitions a document may
	// declare; 0 means unbounded. Exceeding it is reported as a Problem
	// rather than a panic, so a caller parsing untrusted SDL can bound the
	// work a single call does.
	MaxTypes int
}

// DefaultBuildOptions returns the options ParseText uses when none are
// given: comment-style descriptions, no type-count limit.
func DefaultBuildOptions() BuildOption {
	return BuildOption{}
}

// yamlBuildOptions is the on-disk shape for LoadBuildOptionsYAML, kept
// distinct from BuildOption so the YAML tags don't leak into the Go API
// callers program against directly.
type yamlBuildOptions struct {
	UseStringDescriptions bool `yaml:"use_string_descriptions"`
	MaxTypes              int  `yaml:"max_types"`
}

// LoadBuildOptionsYAML reads a BuildOption from r's YAML contents, for
// callers that keep schema-build configuration alongside other
// YAML-driven service config.
func LoadBuildOptionsYAML(r io.Reader) (BuildOption, error) {
	var y yamlBuildOptions
	if err := yaml.NewDecoder(r).Decode(&y); err != nil {
		return BuildOption{}, err
	}
	return BuildOption{
		UseStringDescriptions: y.UseStringDescriptions,
		MaxTypes:              y.MaxTypes,
	}, nil
}
