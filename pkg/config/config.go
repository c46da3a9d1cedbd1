// Package config resolves client configuration: built-in defaults, then an
// optional JSON config file, then CODEORIGIN_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/analyzer"
)

const (
	// DefaultAnalyzerURL points at a locally run analysis service. Where the
	// service actually lives is a deployment concern; nothing else in the
	// client knows or cares.
	DefaultAnalyzerURL = "http://localhost:8080"

	envPrefix      = "codeorigin"
	configDirName  = ".codeorigin"
	configFileName = "config.json"
)

// Timeout is a duration that also accepts plain second counts, so both
// CODEORIGIN_API_TIMEOUT=45 and CODEORIGIN_API_TIMEOUT=45s work. Values that
// parse as neither fall back to the analyzer default rather than failing.
type Timeout time.Duration

// Decode implements envconfig.Decoder.
func (t *Timeout) Decode(value string) error {
	*t = Timeout(ParseTimeout(value, analyzer.DefaultTimeout))
	return nil
}

// UnmarshalJSON accepts "30s", "45" and bare numbers (treated as seconds).
func (t *Timeout) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		return t.Decode(value)
	case float64:
		*t = Timeout(time.Duration(value * float64(time.Second)))
		return nil
	default:
		return fmt.Errorf("unsupported timeout value %s", string(data))
	}
}

// Duration returns the timeout as a time.Duration.
func (t Timeout) Duration() time.Duration {
	return time.Duration(t)
}

// ParseTimeout accepts a duration string or a plain second count, falling
// back when the value parses as neither or is not positive.
func ParseTimeout(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	var seconds int
	if _, err := fmt.Sscanf(value, "%d", &seconds); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// Config carries everything the CLI needs to reach the analysis service.
type Config struct {
	AnalyzerURL string  `json:"analyzer_url" envconfig:"ANALYZER_URL"`
	APITimeout  Timeout `json:"timeout" envconfig:"API_TIMEOUT"`
}

// Load resolves configuration in order: defaults, the first config file
// found (workspace before home), then environment overrides.
func Load() (*Config, error) {
	cfg := &Config{
		AnalyzerURL: DefaultAnalyzerURL,
		APITimeout:  Timeout(analyzer.DefaultTimeout),
	}

	if path := findConfigFile(); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return cfg, nil
}

func getHomeConfigPath() (string, string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	configDir := filepath.Join(home, configDirName)
	return configDir, filepath.Join(configDir, configFileName)
}

func getCurrentConfigPath() (string, string) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", ""
	}
	configDir := filepath.Join(cwd, configDirName)
	return configDir, filepath.Join(configDir, configFileName)
}

// findConfigFile prefers a workspace config over the home one.
func findConfigFile() string {
	if _, path := getCurrentConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if _, path := getHomeConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
