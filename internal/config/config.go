package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/upskill/internal/llm"
)

// Config is the resolved application configuration.
type Config struct {
	Env     string
	LogFile string

	Store     StoreConfig
	LLM       llm.Config
	Questions QuestionsConfig
	Mail      MailConfig

	// Desktop enables best-effort desktop notifications.
	Desktop bool
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Driver string // "sqlite", "redis" or "memory"
	Path   string // SQLite file; empty means DefaultDBPath

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// QuestionsConfig tunes assessment question generation.
type QuestionsConfig struct {
	MaxTokens              int
	Temperature            float64
	RoleContextProbability float64
	Seed                   uint64
}

// MailConfig selects the outbound mailer for simulated notifications.
type MailConfig struct {
	Provider       string // "console" or "sendgrid"
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log.file", "")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "upskill")

	def := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	for _, p := range []string{"openai", "anthropic", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".base_url", "")
	}
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	for _, p := range []string{"openai", "anthropic", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
	}

	v.SetDefault("questions.max_tokens", 2000)
	v.SetDefault("questions.temperature", 0.7)
	v.SetDefault("questions.role_context_probability", 0.3)
	v.SetDefault("questions.seed", 0)

	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.sendgrid_api_key", "")
	v.SetDefault("mail.from_email", "noreply@upskill.local")
	v.SetDefault("mail.from_name", "Upskill")
	v.SetDefault("notify.desktop", true)
}

// Load reads configuration from defaults, an optional config file, an
// optional .env file in the working directory and UPSKILL_* env vars,
// in increasing priority. An empty path looks for config.yaml in Dir().
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("UPSKILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Env:     v.GetString("env"),
		LogFile: v.GetString("log.file"),
		Store: StoreConfig{
			Driver:        strings.ToLower(v.GetString("store.driver")),
			Path:          v.GetString("store.path"),
			RedisAddr:     v.GetString("redis.addr"),
			RedisPassword: v.GetString("redis.password"),
			RedisDB:       v.GetInt("redis.db"),
			RedisPrefix:   v.GetString("redis.prefix"),
		},
		Questions: QuestionsConfig{
			MaxTokens:              v.GetInt("questions.max_tokens"),
			Temperature:            v.GetFloat64("questions.temperature"),
			RoleContextProbability: v.GetFloat64("questions.role_context_probability"),
			Seed:                   v.GetUint64("questions.seed"),
		},
		Mail: MailConfig{
			Provider:       strings.ToLower(v.GetString("mail.provider")),
			SendGridAPIKey: v.GetString("mail.sendgrid_api_key"),
			FromEmail:      v.GetString("mail.from_email"),
			FromName:       v.GetString("mail.from_name"),
		},
		Desktop: v.GetBool("notify.desktop"),
	}
	cfg.LLM = llmFromViper(v)
	return cfg
}

func llmFromViper(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Timeout = v.GetDuration("llm.timeout")
	cfg.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")

	cfg.OpenAI.APIKey = v.GetString("llm.openai.api_key")
	cfg.OpenAI.Model = v.GetString("llm.openai.model")
	cfg.OpenAI.BaseURL = v.GetString("llm.openai.base_url")
	cfg.Anthropic.APIKey = v.GetString("llm.anthropic.api_key")
	cfg.Anthropic.Model = v.GetString("llm.anthropic.model")
	cfg.Anthropic.BaseURL = v.GetString("llm.anthropic.base_url")
	cfg.Gemini.APIKey = v.GetString("llm.gemini.api_key")
	cfg.Gemini.Model = v.GetString("llm.gemini.model")
	cfg.Gemini.BaseURL = v.GetString("llm.gemini.base_url")
	cfg.OpenRouter.APIKey = v.GetString("llm.openrouter.api_key")
	cfg.OpenRouter.Model = v.GetString("llm.openrouter.model")
	if u := v.GetString("llm.openrouter.base_url"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	cfg.Provider = strings.ToLower(v.GetString("llm.provider"))
	if cfg.Provider != "" {
		return cfg
	}

	// No explicit provider: take the first one with an upskill-scoped key,
	// then fall back to the vendors' standard variables.
	switch {
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = "openai"
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = "anthropic"
	case cfg.Gemini.APIKey != "":
		cfg.Provider = "gemini"
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = "openrouter"
	default:
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			discovered.Retry.MaxAttempts = cfg.Retry.MaxAttempts
			return discovered
		}
		cfg.Provider = "openai"
	}
	return cfg
}

// Dir returns the per-user configuration directory
// ($XDG_CONFIG_HOME/upskill or ~/.config/upskill), creating it if needed.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "upskill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}
