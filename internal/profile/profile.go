package profile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/portfolioai/ai/core/llm"
)

// Profile is configuration to start the assistant.
type Profile struct {
	// LLM configuration (OpenAI-compatible protocol).
	// All providers (deepseek, openai, siliconflow, dashscope, openrouter, zai, ollama) share it.
	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string // optional, has default per provider
	LLMModel    string
	LLMTimeout  int // request timeout in seconds (default: 120)

	Mode     string // dev, demo or prod
	Addr     string
	Data     string // knowledge directory
	Rules    string // optional directory of <workflow>.yaml routing tables
	Workflow string // default workflow for one-shot commands
	Version  string
	Port     int

	// Session settings.
	HistoryWindow      int
	TurnsPerMinute     int // 0 disables per-session limiting
	TurnBurst          int
	IdleTimeoutMinutes int
}

// Provider default configurations for LLM.
// Used when the base URL or model is not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"zai": {
		BaseURL: "https://open.bigmodel.cn/api/paas/v4",
		Model:   "glm-4.7",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o",
	},
	"siliconflow": {
		BaseURL: "https://api.siliconflow.cn/v1",
		Model:   "Qwen/Qwen2.5-72B-Instruct",
	},
	"dashscope": {
		BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
		Model:   "qwen-max-latest",
	},
	"openrouter": {
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "deepseek/deepseek-chat",
	},
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3.1",
	},
}

const defaultProvider = "deepseek"

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the LLM can be reached: an API key is set or
// the provider is the local ollama one.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != "" || p.LLMProvider == "ollama"
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads the LLM and session configuration from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("PORTFOLIOAI_LLM_PROVIDER", defaultProvider)
	p.LLMAPIKey = getEnvOrDefault("PORTFOLIOAI_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("PORTFOLIOAI_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("PORTFOLIOAI_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("PORTFOLIOAI_LLM_TIMEOUT_SECONDS", 120)

	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		slog.Warn("Unknown LLM provider, using default", "provider", p.LLMProvider, "default", defaultProvider)
		p.LLMProvider = defaultProvider
	}
	defaults := llmProviderDefaults[p.LLMProvider]
	if p.LLMBaseURL == "" {
		p.LLMBaseURL = defaults.BaseURL
	}
	if p.LLMModel == "" {
		p.LLMModel = defaults.Model
	}

	p.HistoryWindow = getEnvOrDefaultInt("PORTFOLIOAI_HISTORY_WINDOW", 10)
	p.TurnsPerMinute = getEnvOrDefaultInt("PORTFOLIOAI_TURNS_PER_MINUTE", 30)
	p.TurnBurst = getEnvOrDefaultInt("PORTFOLIOAI_TURN_BURST", 5)
	p.IdleTimeoutMinutes = getEnvOrDefaultInt("PORTFOLIOAI_IDLE_TIMEOUT_MINUTES", 24*60)
}

// LLMConfig returns the model client configuration.
func (p *Profile) LLMConfig() *llm.Config {
	return &llm.Config{
		Provider: p.LLMProvider,
		Model:    p.LLMModel,
		APIKey:   p.LLMAPIKey,
		BaseURL:  p.LLMBaseURL,
		Timeout:  p.LLMTimeout,
	}
}

func checkDir(kind, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "unable to resolve %s folder %s", kind, dir)
	}

	// Trim trailing \ or / in case user supplies
	absDir = strings.TrimRight(absDir, "\\/")
	info, err := os.Stat(absDir)
	if err != nil {
		return "", errors.Wrapf(err, "unable to access %s folder %s", kind, absDir)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%s path %s is not a directory", kind, absDir)
	}
	return absDir, nil
}

// Validate normalizes the mode and resolves the data and rules folders.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Data == "" {
		p.Data = "data"
	}

	dataDir, err := checkDir("data", p.Data)
	if err != nil {
		slog.Error("failed to check data folder", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Rules != "" {
		rulesDir, err := checkDir("rules", p.Rules)
		if err != nil {
			slog.Error("failed to check rules folder", slog.String("rules", p.Rules), slog.String("error", err.Error()))
			return err
		}
		p.Rules = rulesDir
	}

	if p.TurnsPerMinute < 0 || p.TurnBurst < 0 || p.HistoryWindow < 0 {
		return errors.New("session limits must not be negative")
	}
	return nil
}
