// Package config loads the application configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"instafolio/pkg/compile"
	"instafolio/pkg/llm"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey string        `json:"gemini_api_key"`
	Model        string        `json:"model,omitempty"`
	Server       ServerConfig  `json:"server"`
	Defaults     DefaultConfig `json:"defaults"`
}

// ServerConfig holds the HTTP service settings.
type ServerConfig struct {
	Addr        string   `json:"addr"`
	CORSOrigins []string `json:"cors_origins,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	Theme     string `json:"theme"`
	OutputDir string `json:"output_dir"`
}

// GetModel returns the generation model or the default if not specified.
func (c *Config) GetModel() (model string) {
	if c.Model != "" {
		model = c.Model
		return model
	}
	model = llm.GeminiModel // Default to Flash
	return model
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// A .env file is a local-run convenience; absence is fine.
	_ = godotenv.Load()

	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".instafolio", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'instafolio init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		cfg.GeminiAPIKey = apiKey
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate fills defaults and checks the fields that must be usable. The
// API key is not required here: a key-less service still serves editing and
// compiling, and refuses generations with ErrNotConfigured.
func (c *Config) Validate() (err error) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if c.Defaults.Theme == "" {
		c.Defaults.Theme = string(compile.ThemeLight)
	}

	if c.Defaults.Theme != string(compile.ThemeLight) && c.Defaults.Theme != string(compile.ThemeDark) {
		err = errors.Errorf("defaults.theme must be %q or %q, got %q", compile.ThemeLight, compile.ThemeDark, c.Defaults.Theme)
		return err
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./out"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".instafolio", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		GeminiAPIKey: "your-gemini-api-key",
		Model:        llm.GeminiModel,
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Defaults: DefaultConfig{
			Theme:     string(compile.ThemeLight),
			OutputDir: "./out",
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
