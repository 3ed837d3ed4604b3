package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError reports config schema violations with their field paths.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config %s:", e.Path)
	for _, detail := range cueerrors.Errors(e.Err) {
		if path := strings.Join(detail.Path(), "."); path != "" {
			fmt.Fprintf(&b, "\n  %s: %v", path, detail)
		} else {
			fmt.Fprintf(&b, "\n  %v", detail)
		}
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// validateSchema checks a raw YAML document against the embedded CUE
// schema before decoding, so enum and shape violations surface with
// field paths instead of decoder errors.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup config schema: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build config %s: %w", path, err)
	}

	if err := def.Unify(doc).Validate(); err != nil {
		return &SchemaError{Path: path, Err: err}
	}
	return nil
}
