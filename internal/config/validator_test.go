package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/carto/create/internal/errors"
)

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty document", content: ""},
		{name: "full config", content: `templatesDir: packages
defaults:
  title: Maps
  authEnabled: true
  authDomain: auth.example.com
log:
  timestamps: true
`},
		{name: "unknown key", content: "registry: x\n", wantErr: "registry"},
		{name: "wrong type", content: "defaults:\n  authEnabled: maybe\n", wantErr: "authEnabled"},
		{name: "empty templates dir", content: "templatesDir: \"\"\n", wantErr: "templatesDir"},
		{name: "bad domain", content: "defaults:\n  authDomain: \"https://x\"\n", wantErr: "authDomain"},
		{name: "not yaml", content: "a: [b\n", wantErr: "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.content), "config.yaml")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	data, err := Render(Initial())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# carto-create configuration")
	assert.Contains(t, string(data), "authDomain: auth.carto.com")

	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.Validate(data, "config.yaml"))

	path := writeConfig(t, string(data))
	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplatesDir, cfg.TemplatesDir)
	assert.Equal(t, "auth.carto.com", cfg.Defaults.AuthDomain)
}
