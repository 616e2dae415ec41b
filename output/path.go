package output

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Dir returns the absolute directory generated files for inputPath go to:
// a sibling directory named outputDir, or outputDir itself when absolute.
func Dir(inputPath, outputDir string) (string, error) {
	if filepath.IsAbs(outputDir) {
		return filepath.Clean(outputDir), nil
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return "", errors.Wrapf(err, "resolve input path %s", inputPath)
	}
	return filepath.Join(filepath.Dir(abs), outputDir), nil
}

// Path returns Dir(inputPath, outputDir)/fileName.
func Path(inputPath, outputDir, fileName string) (string, error) {
	dir, err := Dir(inputPath, outputDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}
