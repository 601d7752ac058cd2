// Package config loads mvcgen settings with Viper from .mvcgen.yml, MVCGEN_
// environment variables and command-line flags, applies defaults and
// validates the result.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/conneroisu/mvcgen/internal/generator"
	"github.com/conneroisu/mvcgen/internal/parser"
)

// Defaults.
const (
	DefaultRootDir       = "."
	DefaultControllerDir = "controllers"
	DefaultViewDir       = "views"
	DefaultHost          = "localhost"
	DefaultPort          = 8181
)

// Config holds every setting the build consumes.
type Config struct {
	RootDir       string       `mapstructure:"root_dir" yaml:"root_dir" validate:"required"`
	ControllerDir string       `mapstructure:"controller_dir" yaml:"controller_dir" validate:"required,dirname"`
	ViewDir       string       `mapstructure:"view_dir" yaml:"view_dir" validate:"required,dirname"`
	Package       string       `mapstructure:"package" yaml:"package,omitempty" validate:"omitempty,goident"`
	ImportPath    string       `mapstructure:"import_path" yaml:"import_path,omitempty" validate:"omitempty,excludesall= \t\\"`
	Server        ServerConfig `mapstructure:"server" yaml:"server"`
}

// ServerConfig is baked into the generated Run function.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host" validate:"required,hostname_rfc1123|ip"`
	Port int    `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root_dir", DefaultRootDir)
	v.SetDefault("controller_dir", DefaultControllerDir)
	v.SetDefault("view_dir", DefaultViewDir)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.RootDir = filepath.Clean(cfg.RootDir)
	cfg.ControllerDir = strings.TrimSuffix(cfg.ControllerDir, "/")
	cfg.ViewDir = strings.TrimSuffix(cfg.ViewDir, "/")

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// A directory name is one path element below root_dir.
	_ = v.RegisterValidation("dirname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
	})
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return isIdent(fl.Field().String())
	})
	return v
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Validate checks cfg against its struct tags. Field failures are reported
// together as "Field (tag)" pairs.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validatorErr validator.ValidationErrors
	if errors.As(err, &validatorErr) {
		lists := make([]string, 0, len(validatorErr))
		for _, fe := range validatorErr {
			lists = append(lists, fe.Namespace()+" ("+fe.Tag()+")")
		}
		return errors.New("validation failed on " + strings.Join(lists, ", "))
	}
	return err
}

// Dirs returns the directories the parser scans.
func (c *Config) Dirs() parser.Dirs {
	return parser.Dirs{
		Root:        c.RootDir,
		Controllers: c.ControllerDir,
		Views:       c.ViewDir,
	}
}

// Target returns where the generator writes.
func (c *Config) Target() generator.Target {
	return generator.Target{
		Root:          c.RootDir,
		ControllerDir: c.ControllerDir,
		ViewDir:       c.ViewDir,
		Package:       c.Package,
		ImportPath:    c.ImportPath,
		Host:          c.Server.Host,
		Port:          c.Server.Port,
	}
}
