// Package config loads server settings from WAYFARER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// EnvPrefix is prepended to every variable name in Config.
	EnvPrefix = "WAYFARER_"

	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

type Config struct {
	// DatabaseURL selects the repository, e.g. sqlite://wayfarer.db or postgresql://...
	DatabaseURL      string `env:"DATABASE_URL" envDefault:"sqlite://wayfarer.db"`
	SQLiteMigrations string `env:"SQLITE_MIGRATIONS"`

	// AuthProvider is either "firebase" or "jwt".
	AuthProvider            string `env:"AUTH_PROVIDER" envDefault:"jwt"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey          string `env:"FIREBASE_API_KEY"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	JWTSecret               string `env:"JWT_SECRET"`

	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	SaveInterval time.Duration `env:"SAVE_INTERVAL" envDefault:"10s"`
	AllowOrigin  string        `env:"ALLOW_ORIGIN" envDefault:"*"`
	AssetDir     string        `env:"ASSET_DIR" envDefault:"./public"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom behaves like Load but reads from the given map when it is non-nil.
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		errs = append(errs, fmt.Sprintf("database url is invalid: %v", err))
	} else {
		switch u.Scheme {
		case "sqlite", "postgres", "postgresql":
		default:
			errs = append(errs, fmt.Sprintf("database url scheme must be sqlite, postgres or postgresql, got %q", u.Scheme))
		}
	}

	switch c.AuthProvider {
	case AuthProviderFirebase:
		if c.FirebaseProjectID == "" {
			errs = append(errs, "firebase project id must be set when using the firebase auth provider")
		}
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			errs = append(errs, "jwt secret must be set when using the jwt auth provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("auth provider must be firebase or jwt, got %q", c.AuthProvider))
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, "tls cert file and key file must be set together")
	}
	if c.SaveInterval <= 0 {
		errs = append(errs, "save interval must be positive")
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

// TLSEnabled reports whether both TLS files are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
