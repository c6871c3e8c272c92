package tealgen

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/broady/tealgen/provider"
	"github.com/broady/tealgen/sink"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// DeclExtension is the file extension of Teal declaration files.
const DeclExtension = ".d.tl"

// Config holds the settings for rendering one declaration file. It can be
// built in code, through the Generator methods, or loaded from a
// tealgen.toml file.
type Config struct {
	// ModuleName names the module record and the value returned by the file.
	ModuleName string `toml:"module" validate:"required,tealident"`

	// Local declares the module record with "local" instead of "global".
	Local bool `toml:"local"`

	// OutDir is the directory declaration files are written to. Only used by
	// callers that write to the filesystem.
	OutDir string `toml:"out_dir"`

	// OutFile is the sink-relative path of the declaration file.
	// Default: ModuleName + ".d.tl"
	OutFile string `toml:"out_file" validate:"omitempty,declpath"`

	// Help registers a help function on every exposed record.
	Help bool `toml:"help"`

	// MemberCase rewrites Go field and method names.
	// Supported values: "preserve", "snake", "camel". Default: "preserve"
	MemberCase string `toml:"member_case" validate:"omitempty,oneof=preserve snake camel"`

	// Packages are Go package patterns whose doc comments document the
	// exposed types.
	Packages []string `toml:"packages" validate:"dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("tealident", func(fl validator.FieldLevel) bool {
		return provider.IsIdentifier(fl.Field().String())
	})
	_ = v.RegisterValidation("declpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return sink.ValidatePath(p) == nil && strings.HasSuffix(p, DeclExtension)
	})
	return v
}

// Validate checks cfg and returns ValidationErrors describing every invalid
// field.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate config")
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &ValidationError{
			Field:   fe.Namespace(),
			Rule:    fe.Tag(),
			Message: formatValidationError(fe),
		})
	}
	return out
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg Config) Config {
	if cfg.MemberCase == "" {
		cfg.MemberCase = string(provider.CasePreserve)
	}
	if cfg.OutFile == "" && cfg.ModuleName != "" {
		cfg.OutFile = cfg.ModuleName + DeclExtension
	}
	cfg.Packages = append([]string(nil), cfg.Packages...)
	return cfg
}

// LoadConfigFile reads a tealgen.toml file. Keys the file does not set keep
// their zero values; unknown keys are an error.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
