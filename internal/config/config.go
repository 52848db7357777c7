package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the sample value shipped in env templates. It counts as "not configured".
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// MIME detection strategies for uploaded images.
const (
	MIMEDetectionExtension = "extension"
	MIMEDetectionContent   = "content"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Parser ParserConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// IsDevelopment reports whether the server runs in development mode.
func (s *ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserConfig holds settings for the invoice extraction provider.
type ParserConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	DefaultModel  string `mapstructure:"default_model"`
	BaseURL       string `mapstructure:"base_url"`
	MaxTokens     int    `mapstructure:"max_tokens"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MIMEDetection string `mapstructure:"mime_detection"`
}

// Configured reports whether a real credential is present. An empty key or the
// template placeholder selects the simulated extractor. The key is used as given,
// so a whitespace-only key counts as configured.
func (p *ParserConfig) Configured() bool {
	return p.APIKey != "" && p.APIKey != PlaceholderAPIKey
}

// Timeout returns the upstream HTTP client timeout.
func (p *ParserConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// Load reads configuration from environment variables with the INVOICESCAN_ prefix.
// OPENAI_API_KEY is honored as an alias for the parser credential.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICESCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults: local dev servers plus "null" for pages opened from disk
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5500,http://127.0.0.1:5500,null")

	// Parser defaults
	v.SetDefault("parser.provider", "openai")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "gpt-4o")
	v.SetDefault("parser.base_url", "")
	v.SetDefault("parser.max_tokens", 4000)
	v.SetDefault("parser.timeout_secs", 120)
	v.SetDefault("parser.mime_detection", MIMEDetectionExtension)

	envBindings := map[string][]string{
		"server.port":             {"INVOICESCAN_SERVER_PORT"},
		"server.read_timeout":     {"INVOICESCAN_SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"INVOICESCAN_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout": {"INVOICESCAN_SERVER_SHUTDOWN_TIMEOUT"},
		"server.environment":      {"INVOICESCAN_SERVER_ENVIRONMENT"},
		"log.level":               {"INVOICESCAN_LOG_LEVEL"},
		"log.format":              {"INVOICESCAN_LOG_FORMAT"},
		"cors.allowed_origins":    {"INVOICESCAN_CORS_ALLOWED_ORIGINS"},
		"parser.provider":         {"INVOICESCAN_PARSER_PROVIDER"},
		"parser.api_key":          {"INVOICESCAN_PARSER_API_KEY", "OPENAI_API_KEY"},
		"parser.default_model":    {"INVOICESCAN_PARSER_DEFAULT_MODEL"},
		"parser.base_url":         {"INVOICESCAN_PARSER_BASE_URL", "OPENAI_BASE_URL"},
		"parser.max_tokens":       {"INVOICESCAN_PARSER_MAX_TOKENS"},
		"parser.timeout_secs":     {"INVOICESCAN_PARSER_TIMEOUT_SECS"},
		"parser.mime_detection":   {"INVOICESCAN_PARSER_MIME_DETECTION"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICESCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICESCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Parser = ParserConfig{
		Provider:      v.GetString("parser.provider"),
		APIKey:        v.GetString("parser.api_key"),
		DefaultModel:  v.GetString("parser.default_model"),
		BaseURL:       v.GetString("parser.base_url"),
		MaxTokens:     v.GetInt("parser.max_tokens"),
		TimeoutSecs:   v.GetInt("parser.timeout_secs"),
		MIMEDetection: strings.ToLower(v.GetString("parser.mime_detection")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Parser.MIMEDetection {
	case MIMEDetectionExtension, MIMEDetectionContent:
	default:
		return fmt.Errorf("invalid parser.mime_detection %q: want %q or %q",
			c.Parser.MIMEDetection, MIMEDetectionExtension, MIMEDetectionContent)
	}
	if c.Parser.MaxTokens <= 0 {
		return fmt.Errorf("invalid parser.max_tokens %d: must be positive", c.Parser.MaxTokens)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
