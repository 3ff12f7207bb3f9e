// Package tokens materializes *.template files and substitutes
// configuration placeholders in generated project files.
package tokens

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/carto/create/internal/disk"
	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/project"
)

// Sigil prefixes every configuration key to form its placeholder.
const Sigil = "$"

// TemplateMarker is removed from a materialized file's name.
const TemplateMarker = ".template"

// Token is one literal replacement.
type Token struct {
	Placeholder string
	Value       string
}

// List derives the placeholder tokens for cfg followed by any fixed
// rewrites. Fields whose gate does not hold produce no token, so their
// placeholders stay in the files untouched. The result is ordered longest
// placeholder first.
func List(cfg *project.Config, rewrites ...Token) []Token {
	entries := cfg.Entries()
	tokens := make([]Token, 0, len(entries)+len(rewrites))
	for _, e := range entries {
		tokens = append(tokens, Token{Placeholder: Sigil + e.Key, Value: e.Value})
	}
	tokens = append(tokens, rewrites...)

	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i].Placeholder) > len(tokens[j].Placeholder)
	})
	return tokens
}

// Replacer performs every token substitution in a single pass, so
// substituted values are never rescanned for placeholders.
type Replacer struct {
	r *strings.Replacer
}

// NewReplacer builds a Replacer. At any position the first matching token
// in the given order wins; List already orders them longest first.
func NewReplacer(tokens []Token) *Replacer {
	pairs := make([]string, 0, len(tokens)*2)
	for _, t := range tokens {
		if t.Placeholder == "" {
			continue
		}
		pairs = append(pairs, t.Placeholder, t.Value)
	}
	return &Replacer{r: strings.NewReplacer(pairs...)}
}

// Replace substitutes every occurrence of every placeholder in s.
func (r *Replacer) Replace(s string) string {
	return r.r.Replace(s)
}

// UpdateFile rewrites path in place. It reports whether the content changed.
// Files that are not UTF-8 text are rejected.
func UpdateFile(fsys afero.Fs, path string, r *Replacer) (bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, oerrors.NewFilesystemError("read", path, err)
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return false, oerrors.NewFilesystemError("read", path, errors.New("not a text file"))
	}

	updated := r.Replace(string(data))
	if updated == string(data) {
		return false, nil
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return false, oerrors.NewFilesystemError("stat", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, oerrors.NewFilesystemError("write", path, err)
	}
	return true, nil
}

// Apply substitutes tokens in every file under root matched by patterns and
// returns the paths whose content changed.
func Apply(fsys afero.Fs, root string, patterns []string, tokens []Token) ([]string, error) {
	paths, err := Expand(fsys, root, patterns)
	if err != nil {
		return nil, err
	}

	r := NewReplacer(tokens)
	var updated []string
	for _, path := range paths {
		changed, err := UpdateFile(fsys, path, r)
		if err != nil {
			return updated, err
		}
		if changed {
			updated = append(updated, path)
		}
	}
	return updated, nil
}

// MaterializedName strips the first TemplateMarker from the base name of
// path: .env.template becomes .env, environment.template.ts becomes
// environment.ts.
func MaterializedName(path string) string {
	dir, base := filepath.Split(path)
	return dir + strings.Replace(base, TemplateMarker, "", 1)
}

// Materialize copies each template file matched by patterns over its
// sibling without the marker, then deletes the template. It returns the
// materialized paths.
func Materialize(fsys afero.Fs, root string, patterns []string) ([]string, error) {
	paths, err := Expand(fsys, root, patterns)
	if err != nil {
		return nil, err
	}

	var created []string
	for _, src := range paths {
		dst := MaterializedName(src)
		if dst == src {
			continue
		}
		if err := disk.Copy(fsys, src, dst); err != nil {
			return created, err
		}
		if err := fsys.Remove(src); err != nil {
			return created, oerrors.NewFilesystemError("remove", src, err)
		}
		created = append(created, dst)
	}
	return created, nil
}

// Expand evaluates doublestar patterns relative to root and returns the
// matching regular files as absolute paths, de-duplicated and sorted.
func Expand(fsys afero.Fs, root string, patterns []string) ([]string, error) {
	rooted := afero.NewIOFS(afero.NewBasePathFs(fsys, root))

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(rooted, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("invalid path pattern %q: %v", pattern, err), root, "")
		}
		for _, m := range matches {
			abs := filepath.Join(root, filepath.FromSlash(m))
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			paths = append(paths, abs)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
