// Package config collects everything the client needs to reach a backend:
// base URL, database, transport dialect, timeout, backend capability flags
// and fixture selection. Values come from a config file and the environment
// (ODOO_ prefix); nothing is hard-coded into logic.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/studioerp/odoo.go/pkg/logger"
)

type Transport string

const (
	TransportWeb     Transport = "web"
	TransportJSONRPC Transport = "jsonrpc"
)

type Config struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	Database string `mapstructure:"database" validate:"required"`

	// Optional pre-provisioned service credential, used by the CLI when no
	// interactive login happens.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	Transport      Transport `mapstructure:"transport" validate:"oneof=web jsonrpc"`
	TimeoutSeconds int       `mapstructure:"timeout_seconds" validate:"gte=1,lte=300"`

	// SnapshotPath is where the session snapshot lives. Empty keeps the
	// session in memory only.
	SnapshotPath string `mapstructure:"snapshot_path"`

	// Backend capability flags. HasRankFields selects the
	// customer_rank/supplier_rank partner domains over the bare is_company
	// split; HasStudentRefField routes the student reference to its own
	// column instead of the comment annotation.
	HasRankFields      bool `mapstructure:"has_rank_fields"`
	HasStudentRefField bool `mapstructure:"has_student_ref_field"`

	// FixtureEntities lists the entities served from in-memory fixtures
	// instead of the backend, for schemas the backend does not carry.
	FixtureEntities []string `mapstructure:"fixture_entities" validate:"dive,oneof=courses academic_years enrollments"`

	LogPath  string `mapstructure:"log_path"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`

	logOnce sync.Once
	logData *logger.LogData
}

var validate = validator.New()

// Load reads configuration from the optional file at path plus ODOO_*
// environment variables, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("odoo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "http://localhost:8069")
	v.SetDefault("database", "odoo")
	// keys without a default are invisible to AutomaticEnv+Unmarshal
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("log_path", "")
	v.SetDefault("transport", string(TransportWeb))
	v.SetDefault("timeout_seconds", 10)
	v.SetDefault("snapshot_path", "")
	v.SetDefault("has_rank_fields", true)
	v.SetDefault("has_student_ref_field", false)
	v.SetDefault("fixture_entities", []string{"courses", "academic_years", "enrollments"})
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UseFixture reports whether the named entity is served from fixtures.
func (c *Config) UseFixture(entity string) bool {
	for _, e := range c.FixtureEntities {
		if e == entity {
			return true
		}
	}
	return false
}

// Logger lazily builds the shared log sink described by LogPath/LogLevel.
func (c *Config) Logger() *logger.LogData {
	c.logOnce.Do(func() {
		level := zerolog.InfoLevel
		if parsed, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
			level = parsed
		}
		build := logger.New().WithLevel(level)
		if c.LogPath != "" {
			build = build.FromPath(c.LogPath)
		}
		data, err := build.Make()
		if err != nil {
			data = &logger.LogData{Logger: logger.Nop()}
		}
		c.logData = data
	})
	return c.logData
}
