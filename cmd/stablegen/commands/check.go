package commands

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

// staleError reports generated files that differ from what is on disk.
type staleError struct {
	Files []string
}

func (e *staleError) Error() string {
	if len(e.Files) == 1 {
		return e.Files[0] + " is out of date"
	}
	return strconv.Itoa(len(e.Files)) + " generated files are out of date"
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <header>",
		Short: "Report whether the generated files are up to date",
		Long: `check regenerates the output in memory and compares it with the files on
disk. Differences are printed as a unified diff and the command exits 1.`,
		Args: oneHeader,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(args[0]); err != nil {
				return err
			}
			return a.check(args[0])
		},
	}
}

func (a *app) check(header string) error {
	files, err := a.render(header)
	if err != nil {
		return err
	}

	var stale []string
	for _, f := range files {
		onDisk, err := os.ReadFile(f.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "read %s", f.Path)
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(onDisk)),
			B:        difflib.SplitLines(string(f.Data)),
			FromFile: f.Path + " (on disk)",
			ToFile:   f.Path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return errors.Wrapf(err, "diff %s", f.Path)
		}
		if diff == "" {
			a.log.Infow("up to date", "file", f.Path)
			continue
		}

		stale = append(stale, f.Path)
		_, _ = fmt.Fprint(a.stdout, diff)
	}

	if len(stale) > 0 {
		return &staleError{Files: stale}
	}
	return nil
}
