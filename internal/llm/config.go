package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskParseImage TaskType = "parse_image"
	TaskBreakdown  TaskType = "breakdown"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled     bool
	LogCalls    bool
	Provider    Provider
	Endpoint    string
	Model       string
	VisionModel string // used when a request carries images
	APIKey      string
	TimeoutMs   int
	MaxRetries  int
	Tasks       map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:     false,
		LogCalls:    false,
		Provider:    ProviderOllama,
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		VisionModel: "llama3.2-vision",
		TimeoutMs:   30000,
		MaxRetries:  1,
		Tasks: map[TaskType]TaskConfig{
			TaskParseImage: {Temperature: 0.1, MaxTokens: 4096, TimeoutMs: 120000},
			TaskBreakdown:  {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 60000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("GANTT_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTT_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTT_LLM_PROVIDER"); v != "" {
		switch Provider(strings.ToLower(v)) {
		case ProviderOpenAI:
			cfg.Provider = ProviderOpenAI
			cfg.Endpoint = "https://api.openai.com/v1"
			cfg.Model = "gpt-4o-mini"
			cfg.VisionModel = "gpt-4o-mini"
		case ProviderOllama:
			cfg.Provider = ProviderOllama
		}
	}
	if v := os.Getenv("GANTT_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GANTT_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GANTT_LLM_VISION_MODEL"); v != "" {
		cfg.VisionModel = v
	}
	if v := os.Getenv("GANTT_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GANTT_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GANTT_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskParseImage, "GANTT_LLM_PARSE_IMAGE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskBreakdown, "GANTT_LLM_BREAKDOWN_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// ModelFor picks the vision model for image requests.
func (c LLMConfig) ModelFor(req GenerateRequest) string {
	if len(req.Images) > 0 && c.VisionModel != "" {
		return c.VisionModel
	}
	return c.Model
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
