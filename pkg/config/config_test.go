package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/analyzer"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears any CODEORIGIN_* variables leaking in from the environment.
func isolate(t *testing.T) (homeDir, workDir string) {
	t.Helper()

	homeDir = t.TempDir()
	workDir = t.TempDir()
	t.Setenv("HOME", homeDir)

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	for _, key := range []string{"CODEORIGIN_ANALYZER_URL", "CODEORIGIN_API_TIMEOUT", "ANALYZER_URL", "API_TIMEOUT"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, v) })
			os.Unsetenv(key)
		}
	}
	return homeDir, workDir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ".codeorigin")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.AnalyzerURL)
	assert.Equal(t, analyzer.DefaultTimeout, cfg.APITimeout.Duration())
}

func TestLoadFromWorkspaceFile(t *testing.T) {
	_, workDir := isolate(t)
	writeConfigFile(t, workDir, `{"analyzer_url": "http://analysis.internal:9000", "timeout": "30s"}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://analysis.internal:9000", cfg.AnalyzerURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout.Duration())
}

func TestWorkspaceFileBeatsHomeFile(t *testing.T) {
	homeDir, workDir := isolate(t)
	writeConfigFile(t, homeDir, `{"analyzer_url": "http://from-home:1111"}`)
	writeConfigFile(t, workDir, `{"analyzer_url": "http://from-workspace:2222"}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-workspace:2222", cfg.AnalyzerURL)
}

func TestHomeFileUsedWhenWorkspaceHasNone(t *testing.T) {
	homeDir, _ := isolate(t)
	writeConfigFile(t, homeDir, `{"analyzer_url": "http://from-home:1111"}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-home:1111", cfg.AnalyzerURL)
}

func TestEnvOverridesFile(t *testing.T) {
	_, workDir := isolate(t)
	writeConfigFile(t, workDir, `{"analyzer_url": "http://from-file:3333", "timeout": "10s"}`)
	t.Setenv("CODEORIGIN_ANALYZER_URL", "http://from-env:4444")
	t.Setenv("CODEORIGIN_API_TIMEOUT", "25s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:4444", cfg.AnalyzerURL)
	assert.Equal(t, 25*time.Second, cfg.APITimeout.Duration())
}

func TestTimeoutConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{
			name:     "default timeout",
			envValue: "",
			expected: analyzer.DefaultTimeout,
		},
		{
			name:     "duration string minutes",
			envValue: "10m",
			expected: 10 * time.Minute,
		},
		{
			name:     "duration string seconds",
			envValue: "120s",
			expected: 120 * time.Second,
		},
		{
			name:     "plain seconds",
			envValue: "600",
			expected: 600 * time.Second,
		},
		{
			name:     "complex duration",
			envValue: "1h30m",
			expected: 90 * time.Minute,
		},
		{
			name:     "invalid format falls back to default",
			envValue: "invalid",
			expected: analyzer.DefaultTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.envValue != "" {
				t.Setenv("CODEORIGIN_API_TIMEOUT", tt.envValue)
			}

			cfg, err := Load()
			require.NoError(t, err)

			if cfg.APITimeout.Duration() != tt.expected {
				t.Errorf("Expected timeout %v, got %v", tt.expected, cfg.APITimeout.Duration())
			}
		})
	}
}

func TestTimeoutAcceptsJSONNumber(t *testing.T) {
	_, workDir := isolate(t)
	writeConfigFile(t, workDir, `{"timeout": 45}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.APITimeout.Duration())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	_, workDir := isolate(t)
	writeConfigFile(t, workDir, `{not json at all`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
