package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config centralises every runtime setting so the rest of the codebase can remain deterministic
// and easy to test. All fields can be overridden using environment variables.
type Config struct {
	AppName  string         `env:"APP_NAME" envDefault:"health-api" validate:"required"`
	Env      string         `env:"APP_ENV" envDefault:"development"`
	LogLevel string         `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool           `env:"DEBUG" envDefault:"false"`
	HTTP     HTTPConfig     `envPrefix:"HTTP_"`
	Database DatabaseConfig
}

// HTTPConfig controls the HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"5000" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s" validate:"gt=0"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// DatabaseConfig groups the Postgres settings. An empty URL means the health check
// reports the database as not configured.
type DatabaseConfig struct {
	URL             string        `env:"POSTGRES_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"5" validate:"gte=1"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2" validate:"gte=0"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	HealthTimeout   time.Duration `env:"DB_HEALTH_TIMEOUT" envDefault:"2s" validate:"gt=0"`
}

// Configured reports whether a connection string was provided.
func (d DatabaseConfig) Configured() bool {
	return d.URL != ""
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// Load reads configuration from the environment, applying defaults defined above.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints declared on the struct tags.
func Validate(cfg Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateHealthTimeout, Config{})
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// validateHealthTimeout keeps the database check inside the request deadline so the
// health handler always writes its own response.
func validateHealthTimeout(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if cfg.Database.HealthTimeout >= cfg.HTTP.RequestTimeout {
		sl.ReportError(cfg.Database.HealthTimeout, "HealthTimeout", "HealthTimeout", "ltfield", "RequestTimeout")
	}
}
