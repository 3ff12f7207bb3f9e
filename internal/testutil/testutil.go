// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes files, keyed by slash-separated relative path, below root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, root, name, content)
	}
}

// ReadFile returns the content of path, failing the test if it is unreadable.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// VueTemplate is a minimal template tree exercising every generation step.
func VueTemplate() map[string]string {
	return map[string]string{
		"package.json": `{"name": "@carto/create-vue", "version": "1.0.0",
  "dependencies": {"@carto/create-common": "workspace:*", "vue": "^3.4.0"}}`,
		"index.html":                               "<title>$title</title>",
		"src/main.ts":                              "import '@carto/create-common/style.css';",
		".env.template":                            "VITE_TOKEN=$accessToken",
		"src/environments/environment.template.ts": "export const env = { clientID: '$authClientID', domain: '$authDomain' };",
		"node_modules/vue/index.js":                "x",
	}
}
