package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"PORTFOLIOAI_LLM_PROVIDER",
	"PORTFOLIOAI_LLM_API_KEY",
	"PORTFOLIOAI_LLM_BASE_URL",
	"PORTFOLIOAI_LLM_MODEL",
	"PORTFOLIOAI_LLM_TIMEOUT_SECONDS",
	"PORTFOLIOAI_HISTORY_WINDOW",
	"PORTFOLIOAI_TURNS_PER_MINUTE",
	"PORTFOLIOAI_TURN_BURST",
	"PORTFOLIOAI_IDLE_TIMEOUT_MINUTES",
}

// clearEnv blanks every variable FromEnv reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestProfileDefaults(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()

	tests := []struct {
		name     string
		expected any
		actual   any
	}{
		{"LLMProvider default", "deepseek", p.LLMProvider},
		{"LLMBaseURL default", "https://api.deepseek.com", p.LLMBaseURL},
		{"LLMModel default", "deepseek-chat", p.LLMModel},
		{"LLMTimeout default", 120, p.LLMTimeout},
		{"HistoryWindow default", 10, p.HistoryWindow},
		{"TurnsPerMinute default", 30, p.TurnsPerMinute},
		{"TurnBurst default", 5, p.TurnBurst},
		{"IdleTimeoutMinutes default", 1440, p.IdleTimeoutMinutes},
		{"AI disabled without key", false, p.IsAIEnabled()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}

func TestProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		field    func(*Profile) any
		expected any
	}{
		{
			name:     "API key enables AI",
			env:      map[string]string{"PORTFOLIOAI_LLM_API_KEY": "test-key"},
			field:    func(p *Profile) any { return p.IsAIEnabled() },
			expected: true,
		},
		{
			name:     "provider defaults apply",
			env:      map[string]string{"PORTFOLIOAI_LLM_PROVIDER": "siliconflow"},
			field:    func(p *Profile) any { return p.LLMBaseURL },
			expected: "https://api.siliconflow.cn/v1",
		},
		{
			name:     "explicit model wins",
			env:      map[string]string{"PORTFOLIOAI_LLM_PROVIDER": "openai", "PORTFOLIOAI_LLM_MODEL": "gpt-4o-mini"},
			field:    func(p *Profile) any { return p.LLMModel },
			expected: "gpt-4o-mini",
		},
		{
			name:     "unknown provider falls back",
			env:      map[string]string{"PORTFOLIOAI_LLM_PROVIDER": "nope"},
			field:    func(p *Profile) any { return p.LLMProvider },
			expected: "deepseek",
		},
		{
			name:     "ollama needs no key",
			env:      map[string]string{"PORTFOLIOAI_LLM_PROVIDER": "ollama"},
			field:    func(p *Profile) any { return p.IsAIEnabled() },
			expected: true,
		},
		{
			name:     "invalid int keeps default",
			env:      map[string]string{"PORTFOLIOAI_LLM_TIMEOUT_SECONDS": "soon"},
			field:    func(p *Profile) any { return p.LLMTimeout },
			expected: 120,
		},
		{
			name:     "turn rate",
			env:      map[string]string{"PORTFOLIOAI_TURNS_PER_MINUTE": "0"},
			field:    func(p *Profile) any { return p.TurnsPerMinute },
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p := &Profile{}
			p.FromEnv()
			assert.Equal(t, tt.expected, tt.field(p))
		})
	}
}

func TestLLMConfig(t *testing.T) {
	p := &Profile{LLMProvider: "deepseek", LLMModel: "deepseek-chat", LLMAPIKey: "k", LLMBaseURL: "http://x", LLMTimeout: 30}
	cfg := p.LLMConfig()
	assert.Equal(t, "deepseek", cfg.Provider)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "http://x", cfg.BaseURL)
	assert.Equal(t, 30, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules")
	require.NoError(t, os.Mkdir(rules, 0o755))

	t.Run("normalizes mode and resolves folders", func(t *testing.T) {
		p := &Profile{Mode: "staging", Data: dir + "/", Rules: rules}
		require.NoError(t, p.Validate())
		assert.Equal(t, "demo", p.Mode)
		assert.Equal(t, filepath.Clean(dir), p.Data)
		assert.Equal(t, rules, p.Rules)
		assert.True(t, p.IsDev())
	})

	t.Run("missing data folder", func(t *testing.T) {
		p := &Profile{Mode: "prod", Data: filepath.Join(dir, "absent")}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to access data folder")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("data path is a file", func(t *testing.T) {
		file := filepath.Join(dir, "events.json")
		require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))
		p := &Profile{Data: file}
		assert.Error(t, p.Validate())
	})

	t.Run("missing rules folder", func(t *testing.T) {
		p := &Profile{Data: dir, Rules: filepath.Join(dir, "nope")}
		assert.Error(t, p.Validate())
	})

	t.Run("negative limits", func(t *testing.T) {
		p := &Profile{Data: dir, TurnBurst: -1}
		assert.Error(t, p.Validate())
	})
}
