// Package generator turns a template directory into a configured project.
//
// Run performs the interactive flow: it validates the directories, asks
// for confirmation before reusing a non-empty target, collects the project
// configuration and then calls Generate. Generate alone is the
// non-interactive path used by CI.
package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/carto/create/internal/disk"
	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/manifest"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/project"
	"github.com/carto/create/internal/prompt"
	"github.com/carto/create/internal/templates"
)

// Options configures one Run.
type Options struct {
	// TemplateDir is the template (source) directory. Never written.
	TemplateDir string

	// TargetDir is the project (destination) directory, relative or absolute.
	TargetDir string

	// Policy overrides the template's policy. Nil loads it from the template.
	Policy *templates.Policy

	// Fields overrides the configuration questions. Nil uses the defaults.
	Fields []prompt.Field

	// Wrap, when set, runs around the generation phase once all questions
	// are answered. The CLI uses it to show a spinner.
	Wrap func(ctx context.Context, generate func(context.Context) error) error
}

// Generator creates projects on a filesystem.
type Generator struct {
	fs        afero.Fs
	collector prompt.Collector
	policies  *templates.PolicyLoader
}

// New returns a Generator. collector may be nil when only Generate is used.
func New(fsys afero.Fs, collector prompt.Collector) (*Generator, error) {
	loader, err := templates.NewPolicyLoader()
	if err != nil {
		return nil, err
	}
	return &Generator{fs: fsys, collector: collector, policies: loader}, nil
}

// Run validates the directories, collects the configuration and generates
// the project.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	templateDir, projectDir, err := resolveDirs(opts.TemplateDir, opts.TargetDir)
	if err != nil {
		return nil, err
	}

	if err := g.checkTemplate(templateDir); err != nil {
		return nil, err
	}

	policy := templates.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	} else if policy, err = g.policies.Load(g.fs, templateDir); err != nil {
		return nil, err
	}

	reset, err := g.prepareTarget(ctx, projectDir)
	if err != nil {
		return nil, err
	}

	fields := opts.Fields
	if fields == nil {
		fields = prompt.DefaultFields()
	}
	cfg, err := g.collector.Collect(ctx, fields)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, oerrors.NewCancelledError(prompt.CancelMessage)
	}

	// Overwrite was approved before the configuration was collected.
	if reset {
		output.Debug("clearing project directory", "dir", projectDir)
		if err := disk.EmptyDir(g.fs, projectDir); err != nil {
			return nil, newStepError("clear", err)
		}
	}

	if opts.Wrap == nil {
		return g.Generate(ctx, templateDir, projectDir, cfg, policy)
	}
	var result *Result
	err = opts.Wrap(ctx, func(ctx context.Context) error {
		var genErr error
		result, genErr = g.Generate(ctx, templateDir, projectDir, cfg, policy)
		return genErr
	})
	return result, err
}

// resolveDirs makes both directories absolute and rejects overlapping
// pairs. It performs no I/O.
func resolveDirs(templateDir, targetDir string) (string, string, error) {
	tpl, err := filepath.Abs(templateDir)
	if err != nil {
		return "", "", oerrors.NewConfigurationError(err.Error(), templateDir, "")
	}
	dst, err := filepath.Abs(targetDir)
	if err != nil {
		return "", "", oerrors.NewConfigurationError(err.Error(), targetDir, "")
	}

	switch {
	case tpl == dst:
		return "", "", oerrors.NewConfigurationError(
			"Target and template directories cannot be the same.", dst,
			"Choose a target directory outside the template")
	case disk.Contains(tpl, dst):
		return "", "", oerrors.NewConfigurationError(
			"Target directory cannot be inside the template directory.", dst,
			"Choose a target directory outside the template")
	case disk.Contains(dst, tpl):
		return "", "", oerrors.NewConfigurationError(
			"Template directory cannot be inside the target directory.", tpl,
			"Choose a different target directory")
	}
	return tpl, dst, nil
}

func (g *Generator) checkTemplate(templateDir string) error {
	kind, err := disk.Inspect(g.fs, templateDir)
	if err != nil {
		return err
	}
	if kind != disk.Directory {
		return oerrors.NewConfigurationError(
			fmt.Sprintf("Template directory %q does not exist.", templateDir), templateDir,
			"Check --template and --templates-dir")
	}

	pkg := filepath.Join(templateDir, manifest.FileName)
	kind, err = disk.Inspect(g.fs, pkg)
	if err != nil {
		return err
	}
	if kind != disk.File {
		return oerrors.NewConfigurationError(
			fmt.Sprintf("Template directory %q has no %s.", templateDir, manifest.FileName), pkg, "")
	}
	return nil
}

// prepareTarget creates a missing target or asks before reusing a non-empty
// one. It reports whether the target must be cleared before generation.
func (g *Generator) prepareTarget(ctx context.Context, projectDir string) (bool, error) {
	kind, err := disk.Inspect(g.fs, projectDir)
	if err != nil {
		return false, err
	}

	switch kind {
	case disk.Missing:
		output.Debug("creating project directory", "dir", projectDir)
		if err := g.fs.MkdirAll(projectDir, 0o755); err != nil {
			return false, oerrors.NewFilesystemError("mkdir", projectDir, err)
		}
		return false, nil
	case disk.File:
		return false, oerrors.NewConfigurationError(
			fmt.Sprintf("Project directory %q is a file.", projectDir), projectDir, "")
	}

	empty, err := disk.IsEmpty(g.fs, projectDir)
	if err != nil || empty {
		return false, err
	}

	overwrite, err := g.collector.Confirm(ctx,
		fmt.Sprintf("Project directory %q is not empty. Overwrite?", projectDir))
	if err != nil {
		return false, err
	}
	if !overwrite {
		return false, &oerrors.DetailError{
			Type:     "cancelled",
			Message:  prompt.CancelMessage,
			Location: projectDir,
			Hint:     "Pass --force to overwrite a non-empty directory",
			Cause:    oerrors.ErrCancelled,
		}
	}
	return true, nil
}

// Generate populates projectDir from templateDir and applies cfg. Both paths
// must be absolute and the project directory must already be prepared. It
// never prompts.
func (g *Generator) Generate(ctx context.Context, templateDir, projectDir string, cfg *project.Config, policy templates.Policy) (*Result, error) {
	r := &run{
		fs:          g.fs,
		templateDir: templateDir,
		projectDir:  projectDir,
		cfg:         cfg,
		policy:      policy,
		result: &Result{
			TemplateDir: templateDir,
			ProjectDir:  projectDir,
			Title:       cfg.Title,
		},
	}

	for _, s := range r.steps() {
		if err := ctx.Err(); err != nil {
			return nil, newStepError(s.name, oerrors.NewCancelledError(prompt.CancelMessage))
		}
		output.Debug("running step", "step", s.name)
		if err := s.fn(); err != nil {
			return nil, newStepError(s.name, err)
		}
	}
	return r.result, nil
}
