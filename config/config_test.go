package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/hourglass/forwarder"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func defaults() Config {
	return Config{
		OutputDir:       "Stable",
		HeaderExt:       "h",
		SourceExt:       "cpp",
		Layout:          "inline",
		DetailNamespace: "detail",
		IncludePrefix:   "../",
		Debounce:        300 * time.Millisecond,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(Sources{WorkDir: t.TempDir()})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoad_ConfigNextToInput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", FileName), `
layout = "split"
output_dir = "Gen"
debounce = "1s"
strict = true
`)
	// The working directory file is shadowed by the one next to the input.
	writeFile(t, filepath.Join(root, FileName), `layout = "inline"`)

	cfg, err := Load(Sources{InputPath: filepath.Join(root, "src", "IWork.h"), WorkDir: root})
	require.NoError(t, err)

	want := defaults()
	want.Layout = "split"
	want.OutputDir = "Gen"
	want.Debounce = time.Second
	want.Strict = true
	require.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_ConfigInWorkDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `detail_namespace = "impl"`)

	cfg, err := Load(Sources{InputPath: filepath.Join(root, "src", "IWork.h"), WorkDir: root})
	require.NoError(t, err)
	assert.Equal(t, "impl", cfg.DetailNamespace)
}

// TestLoad_Precedence checks file < .env < environment < flags. Not parallel:
// uses t.Setenv.
func TestLoad_Precedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
layout = "split"
output_dir = "FromFile"
header_ext = "hpp"
detail_namespace = "fromfile"
`)
	writeFile(t, filepath.Join(root, ".env"), `
STABLEGEN_OUTPUT_DIR=FromDotEnv
STABLEGEN_HEADER_EXT=hxx
UNRELATED=ignored
`)
	t.Setenv("STABLEGEN_HEADER_EXT", "hh")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.String("config", "", "")
	require.NoError(t, fs.Parse([]string{"--layout", "inline"}))

	cfg, err := Load(Sources{WorkDir: root, Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, "inline", cfg.Layout, "flag beats file")
	assert.Equal(t, "FromDotEnv", cfg.OutputDir, ".env beats file")
	assert.Equal(t, "hh", cfg.HeaderExt, "environment beats .env")
	assert.Equal(t, "fromfile", cfg.DetailNamespace, "unchanged flag does not override")
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := Load(Sources{ConfigFile: filepath.Join(root, "nope.toml"), WorkDir: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.toml")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `layout = "pimpl"`)

	_, err := Load(Sources{WorkDir: root})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{`layout="pimpl" (oneof=inline split)`}, ve.Fields)
}

func TestValidate_ListsEveryField(t *testing.T) {
	t.Parallel()

	cfg := defaults()
	cfg.Layout = "pimpl"
	cfg.HeaderExt = ""
	cfg.Debounce = 0

	err := cfg.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{
		`header_ext="" (required)`,
		`layout="pimpl" (oneof=inline split)`,
		`debounce=0s (gt=0)`,
	}, ve.Fields)
	assert.Contains(t, err.Error(), "config: invalid header_ext")

	ok := defaults()
	require.NoError(t, ok.Validate())
}

func TestForwarderOptions(t *testing.T) {
	t.Parallel()

	cfg := defaults()
	cfg.Layout = "split"
	got := cfg.ForwarderOptions("IWork.h")

	require.Empty(t, cmp.Diff(forwarder.Options{
		HeaderName:      "IWork.h",
		IncludePrefix:   "../",
		DetailNamespace: "detail",
		Layout:          "split",
		HeaderExt:       "h",
		SourceExt:       "cpp",
	}, got))
}
