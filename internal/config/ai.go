package config

import "os"

// GeminiModels defines which Gemini models to use for different narrative tasks
type GeminiModels struct {
	// ChannelNarrative is for per-channel narrative insights (user is waiting)
	ChannelNarrative string `json:"channelNarrative"`

	// ExecutiveSummary is for the whole-assessment summary (quality over speed)
	ExecutiveSummary string `json:"executiveSummary"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`

	// WordBudget caps the length of generated narratives
	WordBudget int `json:"wordBudget"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			ChannelNarrative: getEnvOrDefault("GEMINI_MODEL_NARRATIVE", "gemini-2.5-flash-preview-05-20"),
			ExecutiveSummary: getEnvOrDefault("GEMINI_MODEL_SUMMARY", "gemini-2.0-flash"),
		},
		TimeoutMS:  10000, // 10 second default timeout
		WordBudget: 200,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
