package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/project"
)

const fileHeader = `# carto-create configuration
#
# Environment variables (CARTO_CREATE_*) and command-line flags take
# precedence over values in this file.
`

// Initial returns the configuration written by "config init".
func Initial() *Config {
	return &Config{
		TemplatesDir: DefaultTemplatesDir,
		Defaults: Defaults{
			AuthDomain: project.DefaultAuthDomain,
		},
		Log: LogConfig{
			Timestamps: output.BoolPtr(true),
		},
	}
}

// Render encodes cfg as a commented YAML config file.
func Render(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
