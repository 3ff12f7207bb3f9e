package generator

import (
	"path/filepath"

	"github.com/carto/create/internal/output"
)

// Result describes a generated project.
type Result struct {
	TemplateDir string
	ProjectDir  string

	// Title is the project title as entered; PackageName is derived from it.
	Title       string
	PackageName string

	// Removed, Materialized and Updated are absolute paths touched by the
	// exclude, materialize and tokens steps.
	Removed      []string
	Materialized []string
	Updated      []string

	Stylesheet string
	Lockfile   string

	// ManifestBefore is package.json as copied from the template,
	// ManifestAfter as written to the project.
	ManifestBefore []byte
	ManifestAfter  []byte
}

// Changes maps project-relative paths to what happened to them, for display.
// Removed paths no longer exist and are not included.
func (r *Result) Changes() map[string]string {
	changes := make(map[string]string)
	add := func(path, note string) {
		if path == "" {
			return
		}
		rel, err := filepath.Rel(r.ProjectDir, path)
		if err != nil {
			return
		}
		key := filepath.ToSlash(rel)
		if prev, ok := changes[key]; ok {
			note = prev + ", " + note
		}
		changes[key] = note
	}

	add(filepath.Join(r.ProjectDir, "package.json"), "rewritten")
	add(r.Stylesheet, "copied")
	for _, p := range r.Materialized {
		add(p, "materialized")
	}
	for _, p := range r.Updated {
		add(p, "tokens")
	}
	add(r.Lockfile, "created")
	return changes
}

// NextSteps returns the commands to run after creation. inputDir is the
// target directory as the user typed it.
func NextSteps(inputDir string) []output.NextStep {
	var steps []output.NextStep
	if inputDir != "." && inputDir != "" {
		steps = append(steps, output.NextStep{Command: "cd " + inputDir})
	}
	return append(steps,
		output.NextStep{Command: "yarn"},
		output.NextStep{Command: "yarn dev"},
		output.NextStep{Command: "yarn dev:ssl", Comment: "required for OAuth"},
	)
}
