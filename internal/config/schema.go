package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed input.cue
var inputSchemaSource string

// SchemaValidator checks raw input documents against the CUE schema
type SchemaValidator struct {
	ctx    *cue.Context
	schema cue.Value
	policy cue.Value
}

// NewSchemaValidator compiles the embedded input schema
func NewSchemaValidator() (*SchemaValidator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileString(inputSchemaSource)
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compiling input schema: %w", err)
	}
	schema := compiled.LookupPath(cue.ParsePath("#Input"))
	if !schema.Exists() {
		return nil, fmt.Errorf("input schema has no #Input definition")
	}
	policy := compiled.LookupPath(cue.ParsePath("#Policy"))
	if !policy.Exists() {
		return nil, fmt.Errorf("input schema has no #Policy definition")
	}
	return &SchemaValidator{ctx: ctx, schema: schema, policy: policy}, nil
}

// ValidateYAML decodes a YAML document generically and unifies it with the schema
func (sv *SchemaValidator) ValidateYAML(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("input document is empty")
	}
	return sv.validate(sv.schema, doc)
}

// ValidatePolicyYAML checks a standalone policy document. An empty document is valid.
func (sv *SchemaValidator) ValidatePolicyYAML(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil || doc == nil {
		return err
	}
	return sv.validate(sv.policy, doc)
}

func (sv *SchemaValidator) validate(schema cue.Value, doc map[string]any) error {
	value := sv.ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding input: %w", err)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func decodeDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc, nil
}
