package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "describe-gen.yaml"

// EnvPrefix prefixes the environment variables overriding config keys,
// e.g. DESCRIBE_GEN_OUTPUT.
const EnvPrefix = "DESCRIBE_GEN"

// ErrConfigExists is returned by WriteDefault when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// Config represents the describe-gen configuration.
type Config struct {
	// Packages are the package patterns to inspect.
	Packages []string `mapstructure:"packages" yaml:"packages"`
	// Output is the generated file name written into every package.
	Output string `mapstructure:"output" yaml:"output"`
	// Verbose enables development logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	// DebugUnformatted keeps the raw template output when formatting fails.
	DebugUnformatted bool `mapstructure:"debug_unformatted" yaml:"debug_unformatted"`
	// FailOnWarnings turns validation warnings into a failed run.
	FailOnWarnings bool `mapstructure:"fail_on_warnings" yaml:"fail_on_warnings"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Packages: []string{"./..."},
		Output:   "described_gen.go",
	}
}

// Load reads the configuration from path, or from describe-gen.yaml in the
// working directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("packages", def.Packages)
	v.SetDefault("output", def.Output)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("debug_unformatted", def.DebugUnformatted)
	v.SetDefault("fail_on_warnings", def.FailOnWarnings)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Packages) == 0 {
		return errors.New("packages must list at least one pattern")
	}

	if filepath.Base(cfg.Output) != cfg.Output {
		return fmt.Errorf("output must be a file name, got: %s", cfg.Output)
	}

	if !strings.HasSuffix(cfg.Output, ".go") || strings.HasSuffix(cfg.Output, "_test.go") {
		return fmt.Errorf("output must be a non-test .go file, got: %s", cfg.Output)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
