package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/endpoint"
	endpointhttp "github.com/sagarc03/endpoint/http"
	"github.com/sagarc03/endpoint/keybackend"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct.
type Config struct {
	Server ServerConfig            `mapstructure:"server" yaml:"server"`
	Auth   AuthConfig              `mapstructure:"auth" yaml:"auth"`
	CORS   endpointhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log    LogConfig               `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port                   int           `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`
	MaxBodySize            int64         `mapstructure:"max_body_size" validate:"min=0" yaml:"max_body_size"`
	ExposeValidationErrors bool          `mapstructure:"expose_validation_errors" yaml:"expose_validation_errors"`
	ShutdownTimeout        time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// AuthConfig holds credential token configuration.
type AuthConfig struct {
	DefaultKeyID string                `mapstructure:"default_key_id" validate:"required" yaml:"default_key_id"`
	Leeway       time.Duration         `mapstructure:"leeway" yaml:"leeway"`
	Keys         keybackend.KeysConfig `mapstructure:"keys" yaml:"keys"`
}

// Verifier returns the token verification settings.
func (a AuthConfig) Verifier() endpoint.AuthConfig {
	return endpoint.AuthConfig{
		DefaultKeyID: a.DefaultKeyID,
		Leeway:       a.Leeway,
	}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":          "server.port",
	"max-body-size": "server.max_body_size",
	"keys-file":     "auth.keys.file",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_size", 1<<20)
	v.SetDefault("server.expose_validation_errors", false)
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("auth.default_key_id", "default")
	v.SetDefault("auth.leeway", "0s")
	v.SetDefault("auth.keys.file", "")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_methods", endpointhttp.Methods)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix("ENDPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
