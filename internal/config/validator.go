package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	oerrors "github.com/carto/create/internal/errors"
)

//go:embed schema.cue
var schemaData []byte

// Validator checks config files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(schemaData, cue.Filename("schema.cue"))
	if root.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", root.Err())
	}
	return &Validator{
		ctx:    ctx,
		schema: root.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate checks raw YAML config file content. Unknown keys are rejected.
// An empty document is valid.
func (v *Validator) Validate(data []byte, location string) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oerrors.NewConfigurationError(
			fmt.Sprintf("parsing config: %v", err),
			location,
			"Check the file is valid YAML",
		)
	}
	if doc == nil {
		return nil
	}

	value := v.ctx.Encode(doc)
	if value.Err() != nil {
		return v.failure(value.Err(), location)
	}
	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return v.failure(err, location)
	}
	return nil
}

func (v *Validator) failure(err error, location string) error {
	return &oerrors.DetailError{
		Type:     "invalid configuration",
		Message:  cueerrors.Details(err, nil),
		Location: location,
		Hint:     "Run 'carto-create config init --force' to write a fresh config",
		Cause:    oerrors.ErrConfiguration,
	}
}
