package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"

	JournalNone       = "none"
	JournalFilesystem = "filesystem"
	JournalMongo      = "mongo"

	// ConfigPathEnv names the HCL config file when --config is not given.
	ConfigPathEnv = "LEARNASSIST_CONFIG"
)

type Config struct {
	Server  HTTPServerConfig `json:"server"`
	LLM     LLMConfig        `json:"llm"`
	Mongo   MongoConfig      `json:"mongo"`
	Journal JournalConfig    `json:"journal"`
	Log     LogConfig        `json:"log"`
}

type HTTPServerConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	ReadTimeout    time.Duration `json:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout"`
	MetricsAddr    string        `json:"metrics_addr"` // extra /metrics listener; empty disables it
	StrictRequests bool          `json:"strict_requests"`
	AllowedOrigins []string      `json:"allowed_origins"`
}

type LLMConfig struct {
	Provider string        `json:"provider"`
	APIKey   string        `json:"-"`
	BaseURL  string        `json:"base_url"`
	Model    string        `json:"model"` // empty picks the provider default
	Timeout  time.Duration `json:"timeout"`
}

type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

type JournalConfig struct {
	Backend string `json:"backend"`
	Dir     string `json:"dir"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

func Default() *Config {
	return &Config{
		Server: HTTPServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   3 * time.Minute,
			AllowedOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			Timeout:  2 * time.Minute,
		},
		Mongo: MongoConfig{
			Database: "learnassist",
		},
		Journal: JournalConfig{
			Backend: JournalNone,
			Dir:     "./data/generations",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the config: defaults, then the HCL file, then environment
// variables (a .env file in the working directory is read into the environment
// first and never overrides variables that are already set). path may be empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		// a custom base URL may point at a keyless compatible server
		if c.LLM.APIKey == "" && c.LLM.BaseURL == "" {
			errs = append(errs, errors.New("llm api key is required for provider openai (LLM_API_KEY or OPENAI_API_KEY)"))
		}
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			errs = append(errs, errors.New("llm api key is required for provider gemini (LLM_API_KEY or GEMINI_API_KEY)"))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}

	switch c.Journal.Backend {
	case JournalNone:
	case JournalFilesystem:
		if c.Journal.Dir == "" {
			errs = append(errs, errors.New("journal.dir is required for the filesystem journal"))
		}
	case JournalMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("mongo.uri is required for the mongo journal"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown journal backend %q", c.Journal.Backend))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c LogConfig) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.Level)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Host, "SERVER_HOST")
	setString(&c.Server.MetricsAddr, "METRICS_ADDR")
	if err := setInt(&c.Server.Port, "SERVER_PORT"); err != nil {
		return err
	}
	if err := setBool(&c.Server.StrictRequests, "STRICT_REQUESTS"); err != nil {
		return err
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.LLM.Model, "LLM_MODEL")
	if err := setDuration(&c.LLM.Timeout, "LLM_TIMEOUT"); err != nil {
		return err
	}
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			setString(&c.LLM.APIKey, "OPENAI_API_KEY")
		case ProviderGemini:
			setString(&c.LLM.APIKey, "GEMINI_API_KEY")
		}
	}

	setString(&c.Mongo.URI, "MONGO_URI")
	setString(&c.Mongo.Database, "MONGO_DB")
	setString(&c.Journal.Backend, "JOURNAL_BACKEND")
	setString(&c.Journal.Dir, "JOURNAL_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
