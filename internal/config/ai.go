package config

import "os"

// ScorerConfig holds configuration for the external force-scoring call
type ScorerConfig struct {
	APIKey  string `json:"-"` // Never serialize
	BaseURL string `json:"baseUrl"`

	// Model is the Gemini model used to score a single response into
	// the five JTBD force values (runs once per response, needs to be fast)
	Model string `json:"model"`

	TimeoutMS int `json:"timeoutMs"`

	// Workers bounds the concurrent scoring calls per batch
	Workers int `json:"workers"`

	// MaxRetries is the per-response retry count before marking it failed
	MaxRetries int `json:"maxRetries"`
}

// DefaultScorerConfig returns the default scorer configuration
func DefaultScorerConfig() *ScorerConfig {
	return &ScorerConfig{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta/models",
		Model:      getEnv("GEMINI_MODEL_SCORER", "gemini-2.0-flash"),
		TimeoutMS:  10000,
		Workers:    4,
		MaxRetries: 2,
	}
}

// IsEnabled returns true if the scoring API is configured
func (c *ScorerConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for the configured model
func (c *ScorerConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}
