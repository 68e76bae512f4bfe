package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, 0.3, cfg.Questions.RoleContextProbability)
	assert.Equal(t, 2000, cfg.Questions.MaxTokens)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.OpenAI.APIKey)
	assert.Zero(t, cfg.LLM.Timeout, "llm calls are unbounded unless configured")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("UPSKILL_STORE_DRIVER", "redis")
	t.Setenv("UPSKILL_LLM_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("UPSKILL_QUESTIONS_ROLE_CONTEXT_PROBABILITY", "0.5")
	t.Setenv("UPSKILL_LLM_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, 0.5, cfg.Questions.RoleContextProbability)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
}

func TestLoad_VendorKeyDiscovery(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "upskill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: memory\nmail:\n  from_name: Academy\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "Academy", cfg.Mail.FromName)
}

func TestSessionRoundTrip(t *testing.T) {
	isolate(t)

	s, err := LoadSession()
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, SaveSession(Session{UserID: "u-1", Email: "ada@example.com"}))
	s, err = LoadSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "u-1", s.UserID)

	require.NoError(t, ClearSession())
	s, err = LoadSession()
	require.NoError(t, err)
	assert.Nil(t, s)
}
