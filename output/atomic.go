package output

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File is one document to write.
type File struct {
	Path string
	Data []byte
}

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	mkdirAll       = os.MkdirAll
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// WriteFiles writes files all-or-nothing.
//
// Each file is written to a temporary file in its target directory (created
// if missing). Renames start only after every file was staged, so a failed
// write never replaces any target. Existing targets are set aside before
// being replaced; if a later rename fails, every target already replaced is
// restored. Staged files and backups are removed in all cases.
func WriteFiles(files []File, perm os.FileMode) (err error) {
	staged := make([]string, 0, len(files))
	defer func() {
		if err != nil {
			for _, p := range staged {
				_ = removeFile(p)
			}
		}
	}()

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if err = mkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create output directory %s", dir)
		}

		var tmpPath string
		tmpPath, err = stage(f, perm)
		if tmpPath != "" {
			staged = append(staged, tmpPath)
		}
		if err != nil {
			return errors.Wrapf(err, "stage %s", f.Path)
		}
	}

	return commit(files, staged)
}

// replaced is a target moved into place. backup holds the file it replaced,
// or is empty when the target did not exist before.
type replaced struct {
	target string
	backup string
}

// commit renames every staged file over its target, restoring the replaced
// targets if any rename fails.
func commit(files []File, staged []string) (err error) {
	done := make([]replaced, 0, len(files))
	defer func() {
		if err != nil {
			rollback(done)
			return
		}
		for _, r := range done {
			if r.backup != "" {
				_ = removeFile(r.backup)
			}
		}
	}()

	for i, f := range files {
		r := replaced{target: f.Path}
		if _, statErr := os.Lstat(f.Path); statErr == nil {
			r.backup = staged[i] + ".orig"
			if err = renameFile(f.Path, r.backup); err != nil {
				return errors.Wrapf(err, "back up %s", f.Path)
			}
		}
		if err = renameFile(staged[i], f.Path); err != nil {
			if r.backup != "" {
				_ = renameFile(r.backup, f.Path)
			}
			return errors.Wrapf(err, "move %s into place", f.Path)
		}
		done = append(done, r)
	}
	return nil
}

// rollback undoes replaced targets, newest first.
func rollback(done []replaced) {
	for i := len(done) - 1; i >= 0; i-- {
		r := done[i]
		if r.backup == "" {
			_ = removeFile(r.target)
			continue
		}
		_ = renameFile(r.backup, r.target)
	}
}

// stage writes f to a temporary sibling and returns its path. The path is
// returned even on failure so the caller can clean it up.
func stage(f File, perm os.FileMode) (string, error) {
	tmp, err := createTempFile(filepath.Dir(f.Path), filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(f.Data); err != nil {
		_ = tmp.Close()
		return tmpPath, err
	}
	if err := tmp.Close(); err != nil {
		return tmpPath, err
	}
	if err := chmodFile(tmpPath, perm); err != nil {
		return tmpPath, err
	}
	return tmpPath, nil
}
