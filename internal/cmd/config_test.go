package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/testutil"
)

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".carto-create", "config.yaml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Contains(t, testutil.ReadFile(t, path), "authDomain: auth.carto.com")

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := execute(t, "config", "init")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("templatesDir: elsewhere\n"), 0o600))
		_, err := execute(t, "config", "init", "--force")
		require.NoError(t, err)
		assert.Contains(t, testutil.ReadFile(t, path), "templatesDir: packages")
	})
}

func TestConfigInit_CustomPath(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "nested", "carto.yaml")

	_, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	home := isolate(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "config", "vet")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitConfigurationError, oerrors.ExitCodeFromError(err))
		assert.Contains(t, err.Error(), "config init")
	})

	t.Run("initialized file is valid", func(t *testing.T) {
		_, err := execute(t, "config", "init")
		require.NoError(t, err)

		out, err := execute(t, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid")
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(home, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("registry: localhost:5000\n"), 0o600))

		_, err := execute(t, "--config", path, "config", "vet")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitConfigurationError, oerrors.ExitCodeFromError(err))
		assert.Contains(t, err.Error(), "registry")
	})
}

func TestTemplatesCmd(t *testing.T) {
	home := isolate(t)
	packages := filepath.Join(home, "packages")
	require.NoError(t, os.MkdirAll(filepath.Join(packages, "create-react"), 0o755))

	out, err := execute(t, "templates", "--templates-dir", packages)
	require.NoError(t, err)

	for _, name := range []string{"angular", "react", "vue"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, filepath.Join(packages, "create-react"))
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "not found")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "carto-create version")
}
