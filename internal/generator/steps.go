package generator

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/carto/create/internal/disk"
	oerrors "github.com/carto/create/internal/errors"
	"github.com/carto/create/internal/manifest"
	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/project"
	"github.com/carto/create/internal/templates"
	"github.com/carto/create/internal/tokens"
)

// Step names, in execution order.
const (
	StepCopy        = "copy"
	StepExclude     = "exclude"
	StepManifest    = "manifest"
	StepStylesheet  = "stylesheet"
	StepMaterialize = "materialize"
	StepTokens      = "tokens"
	StepLockfile    = "lockfile"
)

type step struct {
	name string
	fn   func() error
}

// run carries state between the steps of one Generate call.
type run struct {
	fs          afero.Fs
	templateDir string
	projectDir  string
	cfg         *project.Config
	policy      templates.Policy

	manifest *manifest.Manifest
	result   *Result
}

func (r *run) steps() []step {
	return []step{
		{StepCopy, r.copy},
		{StepExclude, r.exclude},
		{StepManifest, r.rewriteManifest},
		{StepStylesheet, r.stylesheet},
		{StepMaterialize, r.materialize},
		{StepTokens, r.substitute},
		{StepLockfile, r.lockfile},
	}
}

func (r *run) copy() error {
	return disk.CopyDir(r.fs, r.templateDir, r.projectDir)
}

func (r *run) exclude() error {
	paths := append([]string{templates.PolicyFileName}, r.policy.ExcludePaths...)
	removed, err := disk.RemovePaths(r.fs, r.projectDir, paths)
	r.result.Removed = removed
	for _, p := range removed {
		output.Debug("removed template path", "path", p)
	}
	return err
}

func (r *run) rewriteManifest() error {
	path := filepath.Join(r.projectDir, manifest.FileName)
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return oerrors.NewFilesystemError("read", path, err)
	}
	r.result.ManifestBefore = data

	m, err := manifest.Parse(data, path)
	if err != nil {
		return err
	}
	if m, err = m.RemoveDependencies(r.policy.ExcludeDependencies); err != nil {
		return err
	}
	if m, err = m.RemoveFields(r.policy.ExcludeFields); err != nil {
		return err
	}
	name := manifest.NormalizeName(r.cfg.Title)
	if m, err = m.WithName(name); err != nil {
		return err
	}
	if m, err = m.WithPrivate(true); err != nil {
		return err
	}

	out := m.Bytes()
	if err := afero.WriteFile(r.fs, path, out, 0o644); err != nil {
		return oerrors.NewFilesystemError("write", path, err)
	}
	r.manifest = m
	r.result.PackageName = name
	r.result.ManifestAfter = out
	return nil
}

func (r *run) stylesheet() error {
	dst, err := disk.Within(r.projectDir, r.policy.StylesheetPath(r.manifest))
	if err != nil {
		return err
	}
	if err := r.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return oerrors.NewFilesystemError("mkdir", filepath.Dir(dst), err)
	}
	if err := afero.WriteFile(r.fs, dst, templates.Stylesheet(), 0o644); err != nil {
		return oerrors.NewFilesystemError("write", dst, err)
	}
	r.result.Stylesheet = dst
	return nil
}

func (r *run) materialize() error {
	created, err := tokens.Materialize(r.fs, r.projectDir, r.policy.MaterializePatterns)
	r.result.Materialized = created
	return err
}

func (r *run) substitute() error {
	list := tokens.List(r.cfg, tokens.Token{
		Placeholder: templates.StylesheetImport,
		Value:       templates.StylesheetLocal,
	})
	updated, err := tokens.Apply(r.fs, r.projectDir, r.policy.UpdatePaths, list)
	r.result.Updated = updated
	return err
}

func (r *run) lockfile() error {
	if r.policy.Lockfile == "" {
		return nil
	}
	path, err := disk.Within(r.projectDir, r.policy.Lockfile)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(r.fs, path, nil, 0o644); err != nil {
		return oerrors.NewFilesystemError("write", path, err)
	}
	r.result.Lockfile = path
	return nil
}
