package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"

	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/manifest"
)

// PolicyFileName is the optional per-template policy at a template root.
// It never ends up in a generated project.
const PolicyFileName = "create.cue"

//go:embed policy_schema.cue
var policySchema []byte

const (
	// SharedPackage is the generator's own package that templates depend on
	// while they live in the generator repository.
	SharedPackage = "@carto/create-common"

	// StylesheetImport is how template sources import the shared stylesheet.
	StylesheetImport = SharedPackage + "/style.css"

	// StylesheetLocal replaces StylesheetImport once the stylesheet is
	// copied into the project.
	StylesheetLocal = "./style.css"

	// angularMarker in "dependencies" selects the root stylesheet location.
	angularMarker = "@angular/core"
)

// Policy controls which template files are dropped, how package.json is
// cleaned and which files receive placeholder substitution.
type Policy struct {
	// ExcludePaths are removed from the project after copying.
	ExcludePaths []string `json:"excludePaths,omitempty"`

	// ExcludeDependencies are dropped from every dependency bucket.
	ExcludeDependencies []string `json:"excludeDependencies,omitempty"`

	// ExcludeFields are top-level package.json fields to drop.
	ExcludeFields []string `json:"excludeFields,omitempty"`

	// UpdatePaths are glob patterns of files that receive substitution.
	UpdatePaths []string `json:"updatePaths,omitempty"`

	// MaterializePatterns are glob patterns of *.template files.
	MaterializePatterns []string `json:"materializePatterns,omitempty"`

	// Stylesheet forces the stylesheet destination; empty means detect
	// from package.json.
	Stylesheet string `json:"stylesheet,omitempty"`

	// Lockfile is created empty at the end of generation.
	Lockfile string `json:"lockfile,omitempty"`
}

// DefaultPolicy returns the policy shared by all registered templates.
func DefaultPolicy() Policy {
	return Policy{
		ExcludePaths: []string{
			"node_modules",
			"dist",
			"scripts",
			".angular",
			".vscode",
			".yarn",
			".env.local",
			".env.development",
		},
		ExcludeDependencies: []string{SharedPackage},
		ExcludeFields: []string{
			"author",
			"bin",
			"bugs",
			"description",
			"files",
			"homepage",
			"keywords",
			"license",
			"publishConfig",
			"repository",
			"version",
		},
		UpdatePaths: []string{
			"index.html",
			"src/context.ts",
			"src/main.{ts,tsx}",
			"src/environments/environment.ts",
			"src/environments/environment.*.ts",
			".env",
		},
		MaterializePatterns: []string{
			"**/.env.template",
			"**/environment.template.ts",
		},
		Lockfile: "yarn.lock",
	}
}

// StylesheetPath returns the project-relative stylesheet destination.
// Angular projects keep it at the root, others under src/.
func (p Policy) StylesheetPath(m *manifest.Manifest) string {
	if p.Stylesheet != "" {
		return p.Stylesheet
	}
	if m.DependsOn("dependencies", angularMarker) {
		return "style.css"
	}
	return filepath.Join("src", "style.css")
}

// merge overlays the fields set in o onto p.
func (p Policy) merge(o Policy) Policy {
	if o.ExcludePaths != nil {
		p.ExcludePaths = o.ExcludePaths
	}
	if o.ExcludeDependencies != nil {
		p.ExcludeDependencies = o.ExcludeDependencies
	}
	if o.ExcludeFields != nil {
		p.ExcludeFields = o.ExcludeFields
	}
	if o.UpdatePaths != nil {
		p.UpdatePaths = o.UpdatePaths
	}
	if o.MaterializePatterns != nil {
		p.MaterializePatterns = o.MaterializePatterns
	}
	if o.Stylesheet != "" {
		p.Stylesheet = o.Stylesheet
	}
	if o.Lockfile != "" {
		p.Lockfile = o.Lockfile
	}
	return p
}

// PolicyLoader validates per-template policy files against the embedded
// CUE schema.
type PolicyLoader struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewPolicyLoader compiles the policy schema.
func NewPolicyLoader() (*PolicyLoader, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(policySchema, cue.Filename("policy_schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling policy schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Policy"))
	if !def.Exists() {
		return nil, errors.New("policy schema has no #Policy definition")
	}

	return &PolicyLoader{ctx: ctx, schema: def}, nil
}

// Load returns DefaultPolicy overlaid with templateDir/create.cue when that
// file exists.
func (l *PolicyLoader) Load(fsys afero.Fs, templateDir string) (Policy, error) {
	policy := DefaultPolicy()
	path := filepath.Join(templateDir, PolicyFileName)

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return policy, nil
	}
	if err != nil {
		return policy, oerrors.NewFilesystemError("read", path, err)
	}

	override, err := l.Parse(data, path)
	if err != nil {
		return policy, err
	}
	return policy.merge(override), nil
}

// Parse validates a policy document and decodes the fields it sets.
func (l *PolicyLoader) Parse(data []byte, location string) (Policy, error) {
	var out Policy

	value := l.ctx.CompileBytes(data, cue.Filename(location))
	if value.Err() != nil {
		return out, policyError(value.Err(), location)
	}

	unified := l.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return out, policyError(err, location)
	}
	if err := unified.Decode(&out); err != nil {
		return out, policyError(err, location)
	}
	return out, nil
}

func policyError(err error, location string) error {
	return &oerrors.DetailError{
		Type:     "invalid template policy",
		Message:  cueerrors.Details(err, nil),
		Location: location,
		Hint:     "Fix " + PolicyFileName + " or remove it to use the built-in policy",
		Cause:    oerrors.ErrConfiguration,
	}
}
