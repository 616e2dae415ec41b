package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sghaida/hourglass/forwarder"
)

const (
	// FileName is the config file searched next to the input header and in
	// the working directory.
	FileName = "stablegen.toml"

	// EnvPrefix prefixes every environment override, e.g. STABLEGEN_LAYOUT.
	EnvPrefix = "STABLEGEN"

	dotEnvFile = ".env"
)

// Config holds every setting the generator commands read.
type Config struct {
	OutputDir       string        `mapstructure:"output_dir" validate:"required"`
	HeaderExt       string        `mapstructure:"header_ext" validate:"required,alphanum"`
	SourceExt       string        `mapstructure:"source_ext" validate:"required,alphanum"`
	Layout          string        `mapstructure:"layout" validate:"oneof=inline split"`
	DetailNamespace string        `mapstructure:"detail_namespace" validate:"required"`
	IncludePrefix   string        `mapstructure:"include_prefix"`
	Strict          bool          `mapstructure:"strict"`
	Interface       string        `mapstructure:"interface"`
	LogJSON         bool          `mapstructure:"log_json"`
	Verbose         bool          `mapstructure:"verbose"`
	Debounce        time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "Stable")
	v.SetDefault("header_ext", "h")
	v.SetDefault("source_ext", "cpp")
	v.SetDefault("layout", forwarder.LayoutInline)
	v.SetDefault("detail_namespace", "detail")
	v.SetDefault("include_prefix", forwarder.DefaultIncludePrefix)
	v.SetDefault("strict", false)
	v.SetDefault("interface", "")
	v.SetDefault("log_json", false)
	v.SetDefault("verbose", false)
	v.SetDefault("debounce", 300*time.Millisecond)
}

// RegisterFlags adds one flag per key to fs. Flag names use dashes in place
// of underscores.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("output-dir", "Stable", "output directory, relative to the input header")
	fs.String("header-ext", "h", "extension of the generated header")
	fs.String("source-ext", "cpp", "extension of the generated source (split layout)")
	fs.String("layout", forwarder.LayoutInline, "document layout (inline|split)")
	fs.String("detail-namespace", "detail", "namespace hiding the bridge")
	fs.String("include-prefix", forwarder.DefaultIncludePrefix, "prefix of the #include naming the input header")
	fs.Bool("strict", false, "fail on the first malformed operation instead of skipping it")
	fs.String("interface", "", "name of the interface to wrap (default: first found)")
	fs.Bool("log-json", false, "emit logs as JSON")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.Duration("debounce", 300*time.Millisecond, "quiet period before regenerating in watch mode")
}

// Sources tells Load where to look.
type Sources struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string
	// InputPath is the header being processed. Its directory is searched
	// for FileName and .env before WorkDir.
	InputPath string
	// WorkDir defaults to the process working directory.
	WorkDir string
	// Flags are bound last and win over every other source when changed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// config file, .env, STABLEGEN_* variables, changed flags.
func Load(src Sources) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if src.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "config: resolve working directory")
		}
		src.WorkDir = wd
	}

	if err := readConfigFile(v, src); err != nil {
		return nil, err
	}
	if err := mergeDotEnv(v, src); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if src.Flags != nil {
		if err := bindFlags(v, src.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// searchDirs lists the directories searched for config files, nearest first.
func searchDirs(src Sources) []string {
	var dirs []string
	if src.InputPath != "" {
		if abs, err := filepath.Abs(filepath.Dir(src.InputPath)); err == nil {
			dirs = append(dirs, abs)
		}
	}
	if len(dirs) == 0 || dirs[0] != src.WorkDir {
		dirs = append(dirs, src.WorkDir)
	}
	return dirs
}

func findFile(dirs []string, name string) string {
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func readConfigFile(v *viper.Viper, src Sources) error {
	path := src.ConfigFile
	if path == "" {
		path = findFile(searchDirs(src), FileName)
		if path == "" {
			return nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "config: read %s", path),
			"config files are TOML with keys such as layout = \"split\"",
		)
	}
	return nil
}

// mergeDotEnv lifts STABLEGEN_* entries of the nearest .env into the config
// layer. The process environment is left untouched, so real variables still
// take precedence.
func mergeDotEnv(v *viper.Viper, src Sources) error {
	path := findFile(searchDirs(src), dotEnvFile)
	if path == "" {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}

	settings := make(map[string]any)
	prefix := EnvPrefix + "_"
	for name, value := range vars {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		settings[strings.ToLower(strings.TrimPrefix(name, prefix))] = value
	}
	if len(settings) == 0 {
		return nil
	}
	return errors.Wrapf(v.MergeConfigMap(settings), "config: merge %s", path)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err != nil || !v.IsSet(key) {
			return
		}
		err = errors.Wrapf(v.BindPFlag(key, f), "config: bind --%s", f.Name)
	})
	return err
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
	cause  validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "config: invalid " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return e.cause }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	return v
}

// Validate checks the tag rules of every field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "config: validate")
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields = append(fields, fe.Field()+"="+quote(fe.Value())+" ("+rule+")")
	}
	return errors.WithHint(
		&ValidationError{Fields: fields, cause: fieldErrs},
		"set valid values in "+FileName+", "+EnvPrefix+"_* variables or flags",
	)
}

func quote(v any) string {
	switch t := v.(type) {
	case string:
		return `"` + t + `"`
	case time.Duration:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// ForwarderOptions maps the config onto generator options. headerName is
// the file name of the input header.
func (c *Config) ForwarderOptions(headerName string) forwarder.Options {
	return forwarder.Options{
		HeaderName:      headerName,
		IncludePrefix:   c.IncludePrefix,
		DetailNamespace: c.DetailNamespace,
		Layout:          c.Layout,
		HeaderExt:       c.HeaderExt,
		SourceExt:       c.SourceExt,
	}
}
