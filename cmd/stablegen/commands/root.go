package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sghaida/hourglass/config"
	"github.com/sghaida/hourglass/logger"
)

// Exit statuses returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks a bad invocation: wrong arguments or flags.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: errors.Newf(format, args...)}
}

// app is the state shared by every command of one invocation.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	flags      *pflag.FlagSet

	cfg *config.Config
	log *zap.SugaredLogger
}

// load resolves configuration for header and builds the logger from it.
func (a *app) load(header string) error {
	cfg, err := config.Load(config.Sources{
		ConfigFile: a.configFile,
		InputPath:  header,
		Flags:      a.flags,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{JSON: cfg.LogJSON, Verbose: cfg.Verbose, Output: a.stderr})
	a.log.Debugw("configuration resolved",
		"layout", cfg.Layout,
		"output_dir", cfg.OutputDir,
		"strict", cfg.Strict,
		"interface", cfg.Interface)
	return nil
}

func oneHeader(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usagef("%s expects exactly one header path, got %d", cmd.CommandPath(), len(args))
	}
	return nil
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "stablegen <header>",
		Short: "Generate hourglass bridge, proxy and factory for a C++ interface",
		Long: `stablegen reads a header declaring an abstract C++ class and writes
<dir>/Stable/<Name>.h, containing a hidden bridge that owns the
implementation, a proxy implementing the interface, and the factory
CreateStable<Name>.`,
		Args:          oneHeader,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(args[0])
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: "+config.FileName+" next to the header, then in the working directory)")
	config.RegisterFlags(pf)
	a.flags = pf

	root.AddCommand(inspectCmd(a), checkCmd(a), watchCmd(a))
	return root
}

// Run executes the command line in args and returns the process exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: logger.Nop()}
	root := newRoot(a)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintf(stderr, "stablegen: %v\n\n", err)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}

	var se *staleError
	if errors.As(err, &se) {
		_, _ = fmt.Fprintf(stderr, "stablegen: %v\n", err)
		return ExitFailure
	}

	_, _ = fmt.Fprintf(stderr, "stablegen: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		_, _ = fmt.Fprintf(stderr, "hint: %s\n", hint)
	}
	return ExitFailure
}
