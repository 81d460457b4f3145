// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by MergeWithDefaults when neither the file nor a flag sets a value.
const (
	DefaultPort           = 8080
	DefaultTopK           = 3
	DefaultEmbeddingModel = "text-embedding-004"
)

var validate = validator.New()

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	SkillsDB string `json:"skills_db,omitempty"` // Custom skill database JSON

	// Services
	DatabaseURL    string `json:"database_url,omitempty" validate:"omitempty,url"` // PostgreSQL connection URL
	APIKey         string `json:"api_key,omitempty"`                               // Gemini API key
	EmbeddingModel string `json:"embedding_model,omitempty"`                       // Gemini embedding model

	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Limits
	TopK int `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"` // Matches per resume skill

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field ranges and that a configured skill database exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.SkillsDB != "" {
		if _, err := os.Stat(c.SkillsDB); os.IsNotExist(err) {
			return fmt.Errorf("config error: skill database not found: %s", c.SkillsDB)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults, then
// from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SkillsDB == "" {
		result.SkillsDB = defaults.SkillsDB
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = DefaultEmbeddingModel
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.TopK == 0 {
		result.TopK = DefaultTopK
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv returns a Config populated from DATABASE_URL, GEMINI_API_KEY and SKILLS_DB.
func FromEnv() Config {
	return Config{
		SkillsDB:    os.Getenv("SKILLS_DB"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	}
}
