package config

import (
	"os"
	"path/filepath"

	"github.com/carto/create/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
	// Secret values are masked when logged.
	Secret bool
}

// Set reports whether any source provided a value.
func (r ResolvedValue) Set() bool {
	return r.Source != ""
}

// ResolveOptions lists the candidate values for one key. Empty means unset.
type ResolveOptions struct {
	Key     string
	Flag    string
	Env     string
	Config  string
	Default string
	Secret  bool
}

// Resolve picks a value using precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
		Secret:   opts.Secret,
	}

	envValue := ""
	if opts.Env != "" {
		envValue = os.Getenv(opts.Env)
	}

	// Loaded config already has the environment merged in.
	configValue := opts.Config
	if envValue != "" && configValue == envValue {
		configValue = ""
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.Flag},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, opts.Default},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveTemplatesDir resolves the templates directory using precedence:
// (1) --templates-dir flag, (2) CARTO_CREATE_TEMPLATES_DIR env,
// (3) config templatesDir, (4) DefaultTemplatesDir, found in the working
// directory or beside the executable.
func ResolveTemplatesDir(flagValue, configValue string) ResolvedValue {
	r := Resolve(ResolveOptions{
		Key:     "templatesDir",
		Flag:    flagValue,
		Env:     EnvTemplatesDir,
		Config:  configValue,
		Default: DefaultTemplatesDir,
	})
	if r.Source == SourceDefault {
		r.Value = locateDefaultTemplatesDir()
	}
	return r
}

// executable is replaced in tests.
var executable = os.Executable

// locateDefaultTemplatesDir looks for DefaultTemplatesDir in the working
// directory, then beside the executable and one level above it
// (bin/carto-create next to packages/).
func locateDefaultTemplatesDir() string {
	if isDir(DefaultTemplatesDir) {
		return DefaultTemplatesDir
	}
	exe, err := executable()
	if err != nil {
		return DefaultTemplatesDir
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	for _, base := range []string{dir, filepath.Dir(dir)} {
		candidate := filepath.Join(base, DefaultTemplatesDir)
		if isDir(candidate) {
			return candidate
		}
	}
	return DefaultTemplatesDir
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) CARTO_CREATE_CONFIG env, (3) ~/.carto-create/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return Resolve(ResolveOptions{
		Key:     "config",
		Flag:    flagValue,
		Env:     EnvConfig,
		Default: paths.ConfigFile,
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		if !v.Set() {
			continue
		}
		output.Debug("config value resolved",
			"key", v.Key,
			"value", mask(v.Value, v.Secret),
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", mask(shadowed, v.Secret),
			)
		}
	}
}

func mask(value string, secret bool) string {
	if !secret || value == "" {
		return value
	}
	return "********"
}
