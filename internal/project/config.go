// Package project defines the answers that parameterize a generated project.
package project

import (
	"strconv"
	"strings"

	oerrors "github.com/carto/create/internal/errors"
)

// DefaultAuthDomain is offered when OAuth is enabled and no domain is given.
const DefaultAuthDomain = "auth.carto.com"

// Configuration keys. They double as placeholder names ($title, ...) in
// template files.
const (
	KeyTitle              = "title"
	KeyAuthEnabled        = "authEnabled"
	KeyAccessToken        = "accessToken"
	KeyAuthClientID       = "authClientID"
	KeyAuthOrganizationID = "authOrganizationID"
	KeyAuthDomain         = "authDomain"
)

// Config is the collected project configuration.
//
// AccessToken is meaningful only when AuthEnabled is false; the Auth* fields
// only when it is true. Use Entries to obtain the gated view.
type Config struct {
	Title              string `json:"title" mapstructure:"title"`
	AuthEnabled        bool   `json:"authEnabled" mapstructure:"authEnabled"`
	AccessToken        string `json:"accessToken,omitempty" mapstructure:"accessToken"`
	AuthClientID       string `json:"authClientID,omitempty" mapstructure:"authClientID"`
	AuthOrganizationID string `json:"authOrganizationID,omitempty" mapstructure:"authOrganizationID"`
	AuthDomain         string `json:"authDomain,omitempty" mapstructure:"authDomain"`
}

// Entry is one configuration key with its string form.
type Entry struct {
	Key   string
	Value string
}

// Entries returns the keys that are in effect for c, in declaration order.
// Fields whose gate does not hold are omitted.
func (c *Config) Entries() []Entry {
	entries := []Entry{
		{Key: KeyTitle, Value: c.Title},
		{Key: KeyAuthEnabled, Value: strconv.FormatBool(c.AuthEnabled)},
	}
	if !c.AuthEnabled {
		return append(entries, Entry{Key: KeyAccessToken, Value: c.AccessToken})
	}
	return append(entries,
		Entry{Key: KeyAuthClientID, Value: c.AuthClientID},
		Entry{Key: KeyAuthOrganizationID, Value: c.AuthOrganizationID},
		Entry{Key: KeyAuthDomain, Value: c.AuthDomain},
	)
}

// Validate checks required fields under the active gate.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return oerrors.NewValidationError("Project title is required", KeyTitle,
			"Pass --title or set title in the config file")
	}
	if c.AuthEnabled {
		if strings.TrimSpace(c.AuthClientID) == "" {
			return oerrors.NewValidationError("Client ID is required", KeyAuthClientID,
				"Pass --auth-client-id or disable OAuth")
		}
		return nil
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return oerrors.NewValidationError("Access token is required", KeyAccessToken,
			"Pass --access-token or set CARTO_CREATE_ACCESS_TOKEN")
	}
	return nil
}
