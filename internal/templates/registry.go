// Package templates resolves project templates and the policy that governs
// how a template is turned into a project.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	oerrors "github.com/carto/create/internal/errors"
)

// Template is a registered framework starter.
type Template struct {
	// Name is the identifier accepted by --template.
	Name string

	// Description is shown by the templates command.
	Description string

	// Dir is the template's directory name below the templates root.
	Dir string
}

var registry = map[string]Template{
	"angular": {
		Name:        "angular",
		Description: "Angular application with CARTO for deck.gl",
		Dir:         "create-angular",
	},
	"react": {
		Name:        "react",
		Description: "React application with CARTO for deck.gl",
		Dir:         "create-react",
	},
	"vue": {
		Name:        "vue",
		Description: "Vue application with CARTO for deck.gl",
		Dir:         "create-vue",
	},
}

// Get returns a registered template by name.
func Get(name string) (Template, error) {
	t, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s",
			name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// List returns all registered templates sorted by name.
func List() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all registered template names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the best fuzzy match for an unknown template name, or ""
// when nothing is close.
func Suggest(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), Names())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Path returns the template's directory below root.
func (t Template) Path(root string) string {
	return filepath.Join(root, t.Dir)
}

// Resolve maps a --template value to an absolute template directory.
// Registered names resolve below root; anything that looks like a path is
// used as given.
func Resolve(nameOrPath, root string) (string, error) {
	if nameOrPath == "" {
		return "", oerrors.NewConfigurationError("no template selected", "",
			fmt.Sprintf("Pass --template with one of: %s, or a template directory", strings.Join(Names(), ", ")))
	}

	dir := nameOrPath
	if !looksLikePath(nameOrPath) {
		t, err := Get(nameOrPath)
		if err != nil {
			hint := "Run 'carto-create templates' to list them"
			if suggestion := Suggest(nameOrPath); suggestion != "" {
				hint = fmt.Sprintf("Did you mean %q? %s", suggestion, hint)
			}
			return "", oerrors.NewConfigurationError(err.Error(), "", hint)
		}
		if root == "" {
			return "", oerrors.NewConfigurationError("templates directory is not configured", "",
				"Pass --templates-dir or set templatesDir in the config file")
		}
		dir = t.Path(root)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", oerrors.NewConfigurationError(err.Error(), dir, "")
	}
	return abs, nil
}

func looksLikePath(s string) bool {
	if strings.ContainsRune(s, filepath.Separator) || strings.ContainsRune(s, '/') || strings.HasPrefix(s, ".") {
		return true
	}
	_, registered := registry[s]
	if registered {
		return false
	}
	info, err := os.Stat(s)
	return err == nil && info.IsDir()
}
