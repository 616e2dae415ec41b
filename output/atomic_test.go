package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for WriteFiles tests.
// It lets us force errors on Write and Close without using a real file.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

type seamOverrides struct {
	mkdir      func(path string, perm os.FileMode) error
	createTemp func(dir, pattern string) (tempFile, error)
	chmodTmp   func(path string, mode os.FileMode) error
	renameTmp  func(oldpath, newpath string) error
}

// installSeams overrides the file hooks for the duration of the test and
// returns a pointer to the list of removed temp paths.
func installSeams(t *testing.T, s seamOverrides) *[]string {
	t.Helper()

	origMkdir, origCreate, origChmod, origRename, origRemove := mkdirAll, createTempFile, chmodFile, renameFile, removeFile
	t.Cleanup(func() {
		mkdirAll, createTempFile, chmodFile, renameFile, removeFile = origMkdir, origCreate, origChmod, origRename, origRemove
	})

	var removed []string
	mkdirAll = func(path string, perm os.FileMode) error {
		if s.mkdir != nil {
			return s.mkdir(path, perm)
		}
		return nil
	}
	if s.createTemp != nil {
		createTempFile = s.createTemp
	}
	chmodFile = func(path string, mode os.FileMode) error {
		if s.chmodTmp != nil {
			return s.chmodTmp(path, mode)
		}
		return nil
	}
	renameFile = func(oldpath, newpath string) error {
		if s.renameTmp != nil {
			return s.renameTmp(oldpath, newpath)
		}
		return nil
	}
	removeFile = func(path string) error {
		removed = append(removed, path)
		return nil
	}
	return &removed
}

func fakeCreate(writeErr, closeErr error) func(dir, pattern string) (tempFile, error) {
	return func(dir, pattern string) (tempFile, error) {
		return &fakeTempFile{fileName: filepath.Join(dir, pattern), writeErr: writeErr, closeErr: closeErr}, nil
	}
}

//
// -----------------------------------------------------------------------------
// WriteFiles(): error branches
// -----------------------------------------------------------------------------

// Covers every WriteFiles error branch, including deferred cleanup.
func TestWriteFiles_ErrorBranches(t *testing.T) {
	// NOT parallel: mutates global seams.

	testCases := []struct {
		name                 string
		seams                seamOverrides
		expectedErrSubstring string
		expectedRemoveCount  int
	}{
		{
			name: "mkdir error",
			seams: seamOverrides{
				mkdir: func(string, os.FileMode) error { return errors.New("mkdir failed") },
			},
			expectedErrSubstring: "mkdir failed",
			expectedRemoveCount:  0,
		},
		{
			name: "create temp error",
			seams: seamOverrides{
				createTemp: func(dir, pattern string) (tempFile, error) { return nil, errors.New("create temp failed") },
			},
			expectedErrSubstring: "create temp failed",
			expectedRemoveCount:  0,
		},
		{
			name:                 "write error removes temp",
			seams:                seamOverrides{createTemp: fakeCreate(errors.New("write failed"), nil)},
			expectedErrSubstring: "write failed",
			expectedRemoveCount:  1,
		},
		{
			name:                 "close error removes temp",
			seams:                seamOverrides{createTemp: fakeCreate(nil, errors.New("close failed"))},
			expectedErrSubstring: "close failed",
			expectedRemoveCount:  1,
		},
		{
			name: "chmod error removes temp",
			seams: seamOverrides{
				createTemp: fakeCreate(nil, nil),
				chmodTmp:   func(string, os.FileMode) error { return errors.New("chmod failed") },
			},
			expectedErrSubstring: "chmod failed",
			expectedRemoveCount:  1,
		},
		{
			name: "rename error removes temp",
			seams: seamOverrides{
				createTemp: fakeCreate(nil, nil),
				renameTmp:  func(string, string) error { return errors.New("rename failed") },
			},
			expectedErrSubstring: "rename failed",
			expectedRemoveCount:  1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			removed := installSeams(t, tc.seams)

			err := WriteFiles([]File{{Path: filepath.Join(t.TempDir(), "Stable", "Shape.h"), Data: []byte("x")}}, 0o644)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErrSubstring)
			assert.Len(t, *removed, tc.expectedRemoveCount)
		})
	}
}

// TestWriteFiles_SecondStageFailureRemovesFirst verifies no target is
// replaced when a later file fails to stage.
func TestWriteFiles_SecondStageFailureRemovesFirst(t *testing.T) {
	// NOT parallel: mutates global seams.
	calls := 0
	var renamed []string

	removed := installSeams(t, seamOverrides{
		createTemp: func(dir, pattern string) (tempFile, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("disk full")
			}
			return &fakeTempFile{fileName: filepath.Join(dir, pattern)}, nil
		},
		renameTmp: func(oldpath, newpath string) error {
			renamed = append(renamed, newpath)
			return nil
		},
	})

	dir := t.TempDir()
	err := WriteFiles([]File{
		{Path: filepath.Join(dir, "Shape.h"), Data: []byte("h")},
		{Path: filepath.Join(dir, "Shape.cpp"), Data: []byte("cpp")},
	}, 0o644)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "Shape.cpp")
	assert.Len(t, *removed, 1)
	assert.Empty(t, renamed)
}

//
// -----------------------------------------------------------------------------
// WriteFiles(): success on the real filesystem
// -----------------------------------------------------------------------------

func TestWriteFiles_Success(t *testing.T) {
	// NOT parallel: uses the real seams, which other tests in this file replace.
	dir := filepath.Join(t.TempDir(), "Stable")

	files := []File{
		{Path: filepath.Join(dir, "Shape.h"), Data: []byte("header")},
		{Path: filepath.Join(dir, "Shape.cpp"), Data: []byte("source")},
	}
	require.NoError(t, WriteFiles(files, 0o644))

	for _, f := range files {
		got, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		assert.Equal(t, string(f.Data), string(got))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staged temp files left behind")
}

func TestWriteFiles_OverwritesWithoutLeftovers(t *testing.T) {
	// NOT parallel: see TestWriteFiles_Success.
	dir := t.TempDir()
	p := filepath.Join(dir, "IWork.h")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o644))

	require.NoError(t, WriteFiles([]File{{Path: p, Data: []byte("new")}}, 0o644))

	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "backup removed after success")
}

// TestWriteFiles_LaterRenameFailureRestoresTargets verifies a failed rename of
// the second file leaves both targets exactly as they were.
func TestWriteFiles_LaterRenameFailureRestoresTargets(t *testing.T) {
	// NOT parallel: mutates the rename seam.

	testCases := []struct {
		name     string
		existing map[string]string
	}{
		{name: "existing targets are restored", existing: map[string]string{"Shape.h": "old header", "Shape.cpp": "old source"}},
		{name: "new targets are removed", existing: map[string]string{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			header := filepath.Join(dir, "Shape.h")
			source := filepath.Join(dir, "Shape.cpp")
			for name, content := range tc.existing {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
			}

			origRename := renameFile
			t.Cleanup(func() { renameFile = origRename })
			renameFile = func(oldpath, newpath string) error {
				if newpath == source && !strings.HasSuffix(oldpath, ".orig") {
					return errors.New("rename failed")
				}
				return os.Rename(oldpath, newpath)
			}

			err := WriteFiles([]File{
				{Path: header, Data: []byte("new header")},
				{Path: source, Data: []byte("new source")},
			}, 0o644)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "move "+source+" into place")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, len(tc.existing), "no staged files or backups left behind")

			for name, content := range tc.existing {
				got, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err)
				assert.Equal(t, content, string(got), name)
			}
			if len(tc.existing) == 0 {
				assert.NoFileExists(t, header)
			}
		})
	}
}

//
// -----------------------------------------------------------------------------
// Paths
// -----------------------------------------------------------------------------

func TestPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	input := filepath.Join(root, "src", "IWork.h")

	dir, err := Dir(input, "Stable")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "Stable"), dir)

	p, err := Path(input, "Stable", "IWork.h")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "Stable", "IWork.h"), p)
	assert.True(t, filepath.IsAbs(p))

	abs := filepath.Join(root, "gen")
	dir, err = Dir(input, abs)
	require.NoError(t, err)
	assert.Equal(t, abs, dir)
}
