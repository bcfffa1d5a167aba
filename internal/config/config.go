package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration. Defaults live in the embedded
// etc/devblox.yaml; every string value is environment-expanded before
// parsing so secrets stay in the environment.
type Config struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	App struct {
		Name           string `yaml:"name"`
		ProductionMode string `yaml:"production_mode"`
		AllowedOrigins string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Quota struct {
		DailyCap    int            `yaml:"daily_cap"`
		RedeemCodes map[string]int `yaml:"redeem_codes"` // code -> bonus allowance
	} `yaml:"quota"`

	Liveness struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"liveness"`

	Relay struct {
		MaxWaitMs        int `yaml:"max_wait_ms"`       // long-poll ceiling
		BacklogThreshold int `yaml:"backlog_threshold"` // pending commands before watchdog warns
	} `yaml:"relay"`

	Providers struct {
		Default   string         `yaml:"default"` // "openai" or "anthropic"
		OpenAI    ProviderConfig `yaml:"openai"`
		Anthropic ProviderConfig `yaml:"anthropic"`
	} `yaml:"providers"`

	Audit struct {
		Sink          string `yaml:"sink"` // "jsonl", "sheets", or "none"
		JSONLPath     string `yaml:"jsonl_path"`
		SpreadsheetID string `yaml:"spreadsheet_id"`
		SheetRange    string `yaml:"sheet_range"`
		ServiceKey    string `yaml:"service_key"` // service-account JSON (env-expanded)
	} `yaml:"audit"`
}

// ProviderConfig holds per-provider generation settings.
type ProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	System      string  `yaml:"system"` // system instructions for Lua generation
}

// LoadFromBytes loads configuration from YAML bytes with environment
// variable expansion.
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, err
	}
	return c, nil
}

// parseBool parses a string as boolean with a default value.
// Accepts: "true", "1", "yes" as true; empty or other values return default.
func parseBool(s string, defaultVal bool) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return defaultVal
	}
	return s == "true" || s == "1" || s == "yes"
}

func (c Config) IsProductionMode() bool {
	return parseBool(c.App.ProductionMode, false)
}
