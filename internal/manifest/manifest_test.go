package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/carto/create/internal/errors"
)

const templateManifest = `{
  "name":        "@carto/create-react",
  "version":     "1.2.3",
  "description": "React template",
  "license":     "MIT",
  "scripts":     {"dev": "vite"},
  "dependencies": {
    "@carto/create-common": "^1.0.0",
    "react": "^18.0.0"
  },
  "devDependencies":  {"@carto/create-common": "^1.0.0", "vite": "^5.0.0"},
  "peerDependencies": {"@carto/create-common": "*"},
  "files": ["dist"]
}`

func parse(t *testing.T, doc string) *Manifest {
	t.Helper()
	m, err := Parse([]byte(doc), "package.json")
	require.NoError(t, err)
	return m
}

func decode(t *testing.T, m *Manifest) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(m.Bytes(), &out))
	return out
}

func TestParse_Rejects(t *testing.T) {
	for _, doc := range []string{"", "{", "[1,2]", `"name"`, "42"} {
		_, err := Parse([]byte(doc), "/p/package.json")
		assert.ErrorIs(t, err, oerrors.ErrManifestParse, doc)
	}
}

func TestRemoveDependencies(t *testing.T) {
	m := parse(t, templateManifest)

	out, err := m.RemoveDependencies([]string{"@carto/create-common", "not-present"})
	require.NoError(t, err)

	for _, bucket := range DependencyBuckets {
		assert.False(t, out.DependsOn(bucket, "@carto/create-common"), bucket)
	}
	doc := decode(t, out)
	assert.Equal(t, map[string]interface{}{"react": "^18.0.0"}, doc["dependencies"])
	assert.Equal(t, map[string]interface{}{"vite": "^5.0.0"}, doc["devDependencies"])
	assert.Empty(t, doc["peerDependencies"])

	// the receiver is left untouched
	assert.True(t, m.DependsOn("dependencies", "@carto/create-common"))
}

func TestRemoveDependencies_DuplicateKeys(t *testing.T) {
	m := parse(t, `{"dependencies":{"@carto/create-common":"^1","react":"^18","@carto/create-common":"^2"}}`)

	out, err := m.RemoveDependencies([]string{"@carto/create-common"})
	require.NoError(t, err)

	assert.False(t, out.DependsOn("dependencies", "@carto/create-common"))
	assert.NotContains(t, string(out.Bytes()), "create-common")
	assert.Equal(t, map[string]interface{}{"react": "^18"}, decode(t, out)["dependencies"])
}

func TestRemoveDependencies_NoBuckets(t *testing.T) {
	m := parse(t, `{"name":"x"}`)

	out, err := m.RemoveDependencies([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "x"}, decode(t, out))
}

func TestRemoveFields(t *testing.T) {
	m := parse(t, templateManifest)

	out, err := m.RemoveFields([]string{"version", "description", "license", "files", "homepage"})
	require.NoError(t, err)

	doc := decode(t, out)
	for _, f := range []string{"version", "description", "license", "files"} {
		assert.NotContains(t, doc, f)
	}
	assert.Contains(t, doc, "scripts")
	assert.Contains(t, doc, "dependencies")
}

func TestRemoveFields_DuplicateKeys(t *testing.T) {
	m := parse(t, `{"license":"MIT","name":"x","license":"ISC"}`)

	out, err := m.RemoveFields([]string{"license"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "x"}, decode(t, out))
}

func TestWithNameAndPrivate(t *testing.T) {
	m := parse(t, templateManifest)

	out, err := m.WithName("my-app")
	require.NoError(t, err)
	out, err = out.WithPrivate(true)
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Equal(t, "my-app", doc["name"])
	assert.Equal(t, true, doc["private"])
	assert.Equal(t, "@carto/create-react", decode(t, m)["name"])
}

func TestWithName_DuplicateKeys(t *testing.T) {
	m := parse(t, `{"name":"first","version":"1.0.0","name":"last"}`)

	out, err := m.WithName("my-app")
	require.NoError(t, err)

	assert.Equal(t, 1, occurrences(out.Bytes(), "name"))
	assert.Equal(t, "my-app", decode(t, out)["name"])
}

func TestBytes_PreservesKeyOrderAndIndents(t *testing.T) {
	m := parse(t, `{"z":1,"a":{"b":[1,2]},"m":"x"}`)

	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": {\n    \"b\": [\n      1,\n      2\n    ]\n  },\n  \"m\": \"x\"\n}\n", string(m.Bytes()))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"my-app", "my-app"},
		{"@scope/pkg", "@scope/pkg"},
		{"My Map App", "my-map-app"},
		{"  Demo  ", "demo"},
		{".hidden", "hidden"},
		{"_private", "private"},
		{"Café Maps!", "caf--maps-"},
		{"a/b", "a-b"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.title))
		})
	}
}

func TestNormalizeName_NonEmptyTitlesStayValid(t *testing.T) {
	for _, title := range []string{"Demo", "Hello World", "x", "123 go", "a.b.c"} {
		name := NormalizeName(title)
		assert.True(t, IsValidName(name), "%q -> %q", title, name)
	}
}
