// Package config provides configuration loading and management.
package config

import (
	"strconv"

	"github.com/carto/create/internal/project"
)

// DefaultTemplatesDir is where registered templates are looked up when
// nothing else is configured: the packages/ directory of a checkout, or the
// one installed next to the executable.
const DefaultTemplatesDir = "packages"

// Config is the CLI configuration file.
type Config struct {
	// TemplatesDir holds one create-<name> directory per registered template.
	TemplatesDir string `mapstructure:"templatesDir" yaml:"templatesDir,omitempty"`

	// Defaults pre-answer configuration questions.
	Defaults Defaults `mapstructure:"defaults" yaml:"defaults,omitempty"`

	// Log controls log output.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// Defaults are preset answers. Empty values are asked for.
type Defaults struct {
	Title              string `mapstructure:"title" yaml:"title,omitempty"`
	AuthEnabled        *bool  `mapstructure:"authEnabled" yaml:"authEnabled,omitempty"`
	AccessToken        string `mapstructure:"accessToken" yaml:"accessToken,omitempty"`
	AuthClientID       string `mapstructure:"authClientID" yaml:"authClientID,omitempty"`
	AuthOrganizationID string `mapstructure:"authOrganizationID" yaml:"authOrganizationID,omitempty"`
	AuthDomain         string `mapstructure:"authDomain" yaml:"authDomain,omitempty"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Timestamps toggles log timestamps. Nil keeps the default (on).
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Answers returns the defaults keyed by configuration key, omitting unset
// values.
func (d Defaults) Answers() map[string]string {
	out := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set(project.KeyTitle, d.Title)
	if d.AuthEnabled != nil {
		set(project.KeyAuthEnabled, strconv.FormatBool(*d.AuthEnabled))
	}
	set(project.KeyAccessToken, d.AccessToken)
	set(project.KeyAuthClientID, d.AuthClientID)
	set(project.KeyAuthOrganizationID, d.AuthOrganizationID)
	set(project.KeyAuthDomain, d.AuthDomain)
	return out
}
