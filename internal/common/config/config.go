// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Judge    JudgeConfig    `mapstructure:"judge"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the listen addresses of the two services.
type ServerConfig struct {
	ScenarioAPIAddress string   `mapstructure:"scenario_api_address"`
	ScoringAPIAddress  string   `mapstructure:"scoring_api_address"`
	ShutdownTimeout    int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects the scenario store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "postgres"
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ScoringConfig holds the client-side settings for the external scoring endpoint.
type ScoringConfig struct {
	EndpointURL string `mapstructure:"endpoint_url"`
	Mode        string `mapstructure:"mode"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds
}

// JudgeConfig holds the service-side settings for per-criterion judgments.
type JudgeConfig struct {
	GenAIBaseURL string  `mapstructure:"genai_base_url"`
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"`
	Temperature  float64 `mapstructure:"temperature"`
	Timeout      int     `mapstructure:"timeout"`   // milliseconds, per judgment
	CacheTTL     int     `mapstructure:"cache_ttl"` // milliseconds, 0 disables caching
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
