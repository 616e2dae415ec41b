package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"

	"github.com/sghaida/hourglass/forwarder"
	"github.com/sghaida/hourglass/iface"
	"github.com/sghaida/hourglass/output"
)

const outputPerm = 0o644

// parseHeader reads and parses the contract in path using the resolved
// configuration. Skipped operations are logged as warnings.
func (a *app) parseHeader(path string) (*iface.Interface, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "read %s", path),
			"pass the path of a header declaring an abstract class",
		)
	}

	p := &iface.Parser{
		Interface: a.cfg.Interface,
		Strict:    a.cfg.Strict,
		OnSkip: func(e *iface.MalformedOperationError) {
			a.log.Warnw("skipped malformed operation",
				"file", path,
				"line", e.Line,
				"reason", e.Reason,
				"fragment", e.Fragment)
		},
	}
	decl, err := p.Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	a.log.Debugw("parsed interface",
		"interface", decl.QualifiedName(),
		"operations", len(decl.Operations))
	if a.cfg.Verbose {
		a.log.Debugf("model:\n%s", spew.Sdump(decl))
	}
	return decl, nil
}

// render parses path and produces every file the configured layout writes,
// without touching the disk.
func (a *app) render(path string) ([]output.File, error) {
	decl, err := a.parseHeader(path)
	if err != nil {
		return nil, err
	}

	g, err := forwarder.New(a.cfg.ForwarderOptions(filepath.Base(path)))
	if err != nil {
		return nil, errors.WithHint(err, "set layout to one of the known layouts")
	}
	out, err := g.Generate(decl)
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", decl.QualifiedName())
	}

	headerPath, err := output.Path(path, a.cfg.OutputDir, g.HeaderFile(decl))
	if err != nil {
		return nil, err
	}
	files := []output.File{{Path: headerPath, Data: out.Header}}

	if name := g.SourceFile(decl); name != "" {
		sourcePath, err := output.Path(path, a.cfg.OutputDir, name)
		if err != nil {
			return nil, err
		}
		files = append(files, output.File{Path: sourcePath, Data: out.Source})
	}
	return files, nil
}

// generate renders header and writes the results, printing each path.
func (a *app) generate(header string) error {
	if err := a.load(header); err != nil {
		return err
	}
	return a.writeOutputs(header)
}

func (a *app) writeOutputs(header string) error {
	files, err := a.render(header)
	if err != nil {
		return err
	}
	if err := output.WriteFiles(files, outputPerm); err != nil {
		return err
	}
	for _, f := range files {
		a.log.Infow("generated", "file", f.Path, "bytes", len(f.Data))
		_, _ = fmt.Fprintln(a.stdout, f.Path)
	}
	return nil
}
