package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/carto/create/internal/output"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	output.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		output.SetOutput(os.Stdout, os.Stderr)
		output.SetupLogging(output.LogConfig{})
	})

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

// isolate points HOME at a temp dir and clears CARTO_CREATE_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{
		"CARTO_CREATE_CONFIG",
		"CARTO_CREATE_TEMPLATES_DIR",
		"CARTO_CREATE_TITLE",
		"CARTO_CREATE_AUTH_ENABLED",
		"CARTO_CREATE_ACCESS_TOKEN",
		"CARTO_CREATE_AUTH_CLIENT_ID",
		"CARTO_CREATE_AUTH_ORGANIZATION_ID",
		"CARTO_CREATE_AUTH_DOMAIN",
		"CARTO_CREATE_LOG_TIMESTAMPS",
	} {
		t.Setenv(env, "")
	}
	return home
}
