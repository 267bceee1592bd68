package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	ConfigPathEnv, "SERVER_HOST", "SERVER_PORT", "METRICS_ADDR", "STRICT_REQUESTS", "CORS_ORIGINS",
	"LLM_PROVIDER", "LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "LLM_BASE_URL", "LLM_MODEL",
	"LLM_TIMEOUT", "MONGO_URI", "MONGO_DB", "JOURNAL_BACKEND", "JOURNAL_DIR", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable Load reads. Blank counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.False(t, cfg.Server.StrictRequests)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.Model)
	assert.Equal(t, JournalNone, cfg.Journal.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "ignored")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STRICT_REQUESTS", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("JOURNAL_BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.StrictRequests)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, JournalMongo, cfg.Journal.Backend)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "DEBUG", cfg.Log.SlogLevel().String())
}

func TestLoad_HCLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "learnassist.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  port            = 7070
  strict_requests = true
  write_timeout   = "5m"
  allowed_origins = ["http://localhost:3000"]
}

llm {
  provider = "mock"
  model    = "echo"
}

journal {
  backend = "filesystem"
  dir     = "/tmp/journal"
}
`), 0o644))
	t.Setenv("SERVER_PORT", "7171")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7171, cfg.Server.Port, "env wins over file")
	assert.True(t, cfg.Server.StrictRequests)
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout, "absent attribute keeps default")
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, "echo", cfg.LLM.Model)
	assert.Equal(t, JournalFilesystem, cfg.Journal.Backend)
	assert.Equal(t, "/tmp/journal", cfg.Journal.Dir)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.hcl")
	require.NoError(t, os.WriteFile(path, []byte("llm {\n  provider = \"mock\"\n}\n"), 0o644))
	t.Setenv(ConfigPathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
}

func TestLoad_BadInputs(t *testing.T) {
	cases := map[string]func(t *testing.T){
		"bad port":      func(t *testing.T) { t.Setenv("SERVER_PORT", "eighty") },
		"bad timeout":   func(t *testing.T) { t.Setenv("LLM_TIMEOUT", "soon") },
		"bad provider":  func(t *testing.T) { t.Setenv("LLM_PROVIDER", "bard") },
		"bad backend":   func(t *testing.T) { t.Setenv("JOURNAL_BACKEND", "redis") },
		"mongo no uri":  func(t *testing.T) { t.Setenv("JOURNAL_BACKEND", "mongo") },
		"bad log level": func(t *testing.T) { t.Setenv("LOG_LEVEL", "loud") },
		"bad strict":    func(t *testing.T) { t.Setenv("STRICT_REQUESTS", "maybe") },
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_API_KEY", "k")
			setup(t)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "k")
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(broken, []byte("server {"), 0o644))
	_, err := Load(broken)
	assert.Error(t, err)

	badDuration := filepath.Join(dir, "dur.hcl")
	require.NoError(t, os.WriteFile(badDuration, []byte("llm {\n  timeout = \"forever\"\n}\n"), 0o644))
	_, err = Load(badDuration)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestValidate_OpenAIBaseURLWithoutKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.BaseURL = "http://localhost:11434/v1"
	assert.NoError(t, cfg.Validate())
}
