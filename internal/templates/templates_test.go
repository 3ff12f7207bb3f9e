package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/manifest"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"angular", "react", "vue"}, Names())

	list := List()
	require.Len(t, list, 3)
	assert.Equal(t, "angular", list[0].Name)

	tpl, err := Get("react")
	require.NoError(t, err)
	assert.Equal(t, "create-react", tpl.Dir)
	assert.Equal(t, filepath.Join("/repo", "create-react"), tpl.Path("/repo"))

	_, err = Get("svelte")
	assert.ErrorContains(t, err, "valid templates: angular, react, vue")
}

func TestResolve(t *testing.T) {
	t.Run("registered name", func(t *testing.T) {
		dir, err := Resolve("vue", "/opt/templates")
		require.NoError(t, err)
		assert.Equal(t, "/opt/templates/create-vue", dir)
	})

	t.Run("explicit path", func(t *testing.T) {
		dir, err := Resolve("/srv/my-template", "")
		require.NoError(t, err)
		assert.Equal(t, "/srv/my-template", dir)
	})

	t.Run("relative path", func(t *testing.T) {
		dir, err := Resolve("./tpl", "")
		require.NoError(t, err)
		wd, _ := os.Getwd()
		assert.Equal(t, filepath.Join(wd, "tpl"), dir)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Resolve("svelte", "/opt/templates")
		assert.ErrorIs(t, err, oerrors.ErrConfiguration)
	})

	t.Run("misspelled name suggests a template", func(t *testing.T) {
		_, err := Resolve("reac", "/opt/templates")
		require.ErrorIs(t, err, oerrors.ErrConfiguration)
		assert.Contains(t, err.Error(), `Did you mean "react"?`)
	})

	t.Run("name without root", func(t *testing.T) {
		_, err := Resolve("react", "")
		assert.ErrorIs(t, err, oerrors.ErrConfiguration)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Resolve("", "/opt/templates")
		assert.ErrorIs(t, err, oerrors.ErrConfiguration)
	})
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"reac", "react"},
		{"VU", "vue"},
		{"ang", "angular"},
		{"svelte", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Suggest(tt.in), tt.in)
	}
}

func TestStylesheet(t *testing.T) {
	css := Stylesheet()
	assert.Contains(t, string(css), "--carto-primary")

	css[0] = 'X'
	assert.NotEqual(t, css[0], Stylesheet()[0])
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.Contains(t, p.ExcludePaths, "node_modules")
	assert.Contains(t, p.ExcludePaths, ".env.development")
	assert.Equal(t, []string{"@carto/create-common"}, p.ExcludeDependencies)
	assert.Contains(t, p.ExcludeFields, "publishConfig")
	assert.Contains(t, p.UpdatePaths, "src/main.{ts,tsx}")
	assert.Equal(t, "yarn.lock", p.Lockfile)
}

func TestStylesheetPath(t *testing.T) {
	parse := func(doc string) *manifest.Manifest {
		m, err := manifest.Parse([]byte(doc), "package.json")
		require.NoError(t, err)
		return m
	}

	p := DefaultPolicy()
	assert.Equal(t, "style.css", p.StylesheetPath(parse(`{"dependencies":{"@angular/core":"^17"}}`)))
	assert.Equal(t, filepath.Join("src", "style.css"), p.StylesheetPath(parse(`{"dependencies":{"react":"^18"}}`)))
	assert.Equal(t, filepath.Join("src", "style.css"), p.StylesheetPath(parse(`{"devDependencies":{"@angular/core":"^17"}}`)))
	assert.Equal(t, filepath.Join("src", "style.css"), p.StylesheetPath(parse(`{}`)))

	p.Stylesheet = "assets/app.css"
	assert.Equal(t, "assets/app.css", p.StylesheetPath(parse(`{"dependencies":{"@angular/core":"^17"}}`)))
}

func TestPolicyLoader_NoFile(t *testing.T) {
	loader, err := NewPolicyLoader()
	require.NoError(t, err)

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/tpl", 0o755))

	p, err := loader.Load(fsys, "/tpl")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestPolicyLoader_Overrides(t *testing.T) {
	loader, err := NewPolicyLoader()
	require.NoError(t, err)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/tpl/create.cue", []byte(`
excludePaths: ["node_modules", "e2e"]
updatePaths: ["index.html", "src/**/*.vue"]
stylesheet: "src/assets/style.css"
`), 0o644))

	p, err := loader.Load(fsys, "/tpl")
	require.NoError(t, err)

	assert.Equal(t, []string{"node_modules", "e2e"}, p.ExcludePaths)
	assert.Equal(t, []string{"index.html", "src/**/*.vue"}, p.UpdatePaths)
	assert.Equal(t, "src/assets/style.css", p.Stylesheet)
	assert.Equal(t, DefaultPolicy().ExcludeFields, p.ExcludeFields)
	assert.Equal(t, "yarn.lock", p.Lockfile)
}

func TestPolicyLoader_Rejects(t *testing.T) {
	loader, err := NewPolicyLoader()
	require.NoError(t, err)

	tests := map[string]string{
		"escaping path":  `excludePaths: ["../outside"]`,
		"absolute path":  `lockfile: "/etc/passwd"`,
		"unknown field":  `excludeEverything: true`,
		"wrong type":     `excludeFields: "version"`,
		"syntax":         `excludePaths: [`,
		"empty dep name": `excludeDependencies: [""]`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loader.Parse([]byte(doc), "create.cue")
			assert.ErrorIs(t, err, oerrors.ErrConfiguration)
		})
	}
}
