package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables read by the loader.
const (
	envPrefix = "CARTO_CREATE"

	EnvConfig       = envPrefix + "_CONFIG"
	EnvTemplatesDir = envPrefix + "_TEMPLATES_DIR"
)

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"templatesDir":                "TEMPLATES_DIR",
	"defaults.title":              "TITLE",
	"defaults.authEnabled":        "AUTH_ENABLED",
	"defaults.accessToken":        "ACCESS_TOKEN",
	"defaults.authClientID":       "AUTH_CLIENT_ID",
	"defaults.authOrganizationID": "AUTH_ORGANIZATION_ID",
	"defaults.authDomain":         "AUTH_DOMAIN",
	"log.timestamps":              "LOG_TIMESTAMPS",
}

// DefaultsEnv returns the environment variable that supplies the default
// answer for key, or "" when the key has none.
func DefaultsEnv(key string) string {
	env, ok := envBindings["defaults."+key]
	if !ok {
		return ""
	}
	return envPrefix + "_" + env
}

// Loader handles loading and merging configuration from the config file
// and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, envPrefix+"_"+env)
	}

	return &Loader{v: v}
}

// Load loads configuration from configFile, or the default location when
// empty. A missing file is not an error. Environment variables take
// precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	path, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
