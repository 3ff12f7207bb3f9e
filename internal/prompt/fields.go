// Package prompt collects the project configuration, either interactively
// or from preset answers.
package prompt

import (
	"strconv"
	"strings"

	"github.com/carto/create/internal/project"
)

// Kind selects the input widget for a field.
type Kind int

const (
	// Text is a free-form single line.
	Text Kind = iota

	// Secret is a masked single line.
	Secret

	// Toggle is a two-way choice stored as "true" or "false".
	Toggle
)

// Answers holds raw answers keyed by configuration key.
type Answers map[string]string

// Bool parses a toggle answer. Anything but a true value is false.
func (a Answers) Bool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(a[key]))
	return err == nil && v
}

// Field is one question of the configuration prompt.
type Field struct {
	Key   string
	Kind  Kind
	Title string

	// Hint names the files the answer ends up in.
	Hint string

	Required bool

	// RequiredMessage is shown when a required field is left empty.
	RequiredMessage string

	// Default is used when the answer is left empty.
	Default string

	// Affirmative and Negative label the two toggle states.
	Affirmative string
	Negative    string

	// Condition hides the field unless it returns true for the answers so
	// far. Nil means always shown.
	Condition func(Answers) bool
}

// Visible reports whether f applies given the answers collected so far.
func (f Field) Visible(a Answers) bool {
	return f.Condition == nil || f.Condition(a)
}

func oauthOnly(a Answers) bool { return a.Bool(project.KeyAuthEnabled) }
func tokenOnly(a Answers) bool { return !a.Bool(project.KeyAuthEnabled) }

// DefaultFields returns the project configuration questions in prompt order.
func DefaultFields() []Field {
	return []Field{
		{
			Key:             project.KeyTitle,
			Kind:            Text,
			Title:           "Project title",
			Hint:            "(required) [.env, index.html]",
			Required:        true,
			RequiredMessage: "Title is required",
		},
		{
			Key:         project.KeyAuthEnabled,
			Kind:        Toggle,
			Title:       "Authentication?",
			Hint:        "(required) [.env]",
			Default:     "false",
			Affirmative: "OAuth",
			Negative:    "access token",
		},
		{
			Key:             project.KeyAccessToken,
			Kind:            Secret,
			Title:           "Access token for CARTO API",
			Hint:            "(required) [.env]",
			Required:        true,
			RequiredMessage: "Access token is required",
			Condition:       tokenOnly,
		},
		{
			Key:             project.KeyAuthClientID,
			Kind:            Secret,
			Title:           "OAuth client ID",
			Hint:            "(required) [.env]",
			Required:        true,
			RequiredMessage: "Client ID is required",
			Condition:       oauthOnly,
		},
		{
			Key:       project.KeyAuthOrganizationID,
			Kind:      Text,
			Title:     "OAuth organization ID",
			Hint:      "(optional) [.env]",
			Condition: oauthOnly,
		},
		{
			Key:       project.KeyAuthDomain,
			Kind:      Text,
			Title:     "OAuth domain",
			Hint:      "(optional) [.env]",
			Default:   project.DefaultAuthDomain,
			Condition: oauthOnly,
		},
	}
}

// Config converts answers into a project configuration. Gated fields whose
// gate does not hold are left empty.
func (a Answers) Config() *project.Config {
	cfg := &project.Config{
		Title:       strings.TrimSpace(a[project.KeyTitle]),
		AuthEnabled: a.Bool(project.KeyAuthEnabled),
	}
	if cfg.AuthEnabled {
		cfg.AuthClientID = strings.TrimSpace(a[project.KeyAuthClientID])
		cfg.AuthOrganizationID = strings.TrimSpace(a[project.KeyAuthOrganizationID])
		cfg.AuthDomain = strings.TrimSpace(a[project.KeyAuthDomain])
	} else {
		cfg.AccessToken = strings.TrimSpace(a[project.KeyAccessToken])
	}
	return cfg
}
