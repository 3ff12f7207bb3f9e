// Package disk provides the filesystem operations used to scaffold a
// project: recursive copy, emptiness checks and bulk removal.
//
// Every operation runs against an afero.Fs so callers can substitute an
// in-memory or read-only filesystem. Failures are reported as filesystem
// errors carrying the operation and path.
package disk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	oerrors "github.com/carto/create/internal/errors"
)

// GitDir is the only entry a directory may contain and still count as empty.
const GitDir = ".git"

// copyWorkers bounds concurrent file copies within one CopyDir call.
const copyWorkers = 8

// Kind classifies what exists at a path.
type Kind int

const (
	Missing Kind = iota
	Directory
	File
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "missing"
	}
}

// Inspect reports what exists at path, following symlinks.
func Inspect(fsys afero.Fs, path string) (Kind, error) {
	info, err := fsys.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Missing, nil
	case err != nil:
		return Missing, oerrors.NewFilesystemError("stat", path, err)
	case info.IsDir():
		return Directory, nil
	default:
		return File, nil
	}
}

// Copy copies src to dst. Directories are copied recursively, files
// byte-for-byte with their permission bits. An existing dst file is
// overwritten.
func Copy(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return oerrors.NewFilesystemError("stat", src, err)
	}
	if info.IsDir() {
		return CopyDir(fsys, src, dst)
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return oerrors.NewFilesystemError("mkdir", filepath.Dir(dst), err)
	}
	return copyFile(fsys, src, dst, info.Mode().Perm())
}

type fileJob struct {
	src, dst string
	mode     fs.FileMode
}

// CopyDir creates dst (with parents) and mirrors every entry of src into it.
// The directory skeleton is created first; file contents are then copied
// concurrently since no two jobs share a destination.
func CopyDir(fsys afero.Fs, src, dst string) error {
	var jobs []fileJob
	if err := mirrorTree(fsys, src, dst, &jobs); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(copyWorkers)
	for _, job := range jobs {
		g.Go(func() error {
			return copyFile(fsys, job.src, job.dst, job.mode)
		})
	}
	return g.Wait()
}

func mirrorTree(fsys afero.Fs, src, dst string, jobs *[]fileJob) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return oerrors.NewFilesystemError("stat", src, err)
	}
	if err := fsys.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return oerrors.NewFilesystemError("mkdir", dst, err)
	}

	entries, err := afero.ReadDir(fsys, src)
	if err != nil {
		return oerrors.NewFilesystemError("readdir", src, err)
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		// ReadDir reports symlinks as-is; Stat resolves them.
		target, err := fsys.Stat(from)
		if err != nil {
			return oerrors.NewFilesystemError("stat", from, err)
		}
		if target.IsDir() {
			if err := mirrorTree(fsys, from, to, jobs); err != nil {
				return err
			}
			continue
		}
		*jobs = append(*jobs, fileJob{src: from, dst: to, mode: target.Mode().Perm()})
	}
	return nil
}

func copyFile(fsys afero.Fs, src, dst string, mode fs.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return oerrors.NewFilesystemError("open", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return oerrors.NewFilesystemError("create", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = oerrors.NewFilesystemError("close", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return oerrors.NewFilesystemError("copy", dst, err)
	}
	return nil
}

// IsEmpty reports whether dir has no entries, or only a .git entry.
func IsEmpty(fsys afero.Fs, dir string) (bool, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return false, oerrors.NewFilesystemError("readdir", dir, err)
	}
	switch len(entries) {
	case 0:
		return true, nil
	case 1:
		return entries[0].Name() == GitDir, nil
	default:
		return false, nil
	}
}

// EmptyDir deletes every entry of dir except .git. Entries that disappear
// concurrently are not an error.
func EmptyDir(fsys afero.Fs, dir string) error {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return oerrors.NewFilesystemError("readdir", dir, err)
	}
	for _, entry := range entries {
		if entry.Name() == GitDir {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := fsys.RemoveAll(path); err != nil {
			return oerrors.NewFilesystemError("remove", path, err)
		}
	}
	return nil
}

// RemovePaths deletes each relative path under root, recursively. Missing
// paths are skipped. It returns the paths that existed and were removed.
func RemovePaths(fsys afero.Fs, root string, rels []string) ([]string, error) {
	var removed []string
	for _, rel := range rels {
		path, err := Within(root, rel)
		if err != nil {
			return removed, err
		}
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return removed, oerrors.NewFilesystemError("stat", path, err)
		}
		if !exists {
			continue
		}
		if err := fsys.RemoveAll(path); err != nil {
			return removed, oerrors.NewFilesystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// Within joins rel onto root and rejects results that leave root.
func Within(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("path %q must be relative to the project directory", rel), root, "")
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("path %q escapes the project directory", rel), root, "")
	}
	return filepath.Join(root, clean), nil
}

// Contains reports whether path equals parent or lies below it. Both must
// be absolute and clean.
func Contains(parent, path string) bool {
	if parent == path {
		return true
	}
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
