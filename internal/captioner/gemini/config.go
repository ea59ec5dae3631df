package gemini

import "time"

// Config holds the configuration for the Gemini captioning client.
type Config struct {
	// APIKey authenticates against the Generative Language API. Required.
	APIKey string
	// Model is the model name to call.
	Model string
	// BaseURL is the API root, overridable for tests.
	BaseURL string
	// Timeout bounds a single suggestion call.
	Timeout time.Duration
}

// DefaultConfig provides sensible defaults; only the API key must be supplied.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		BaseURL: "https://generativelanguage.googleapis.com",
		Timeout: 20 * time.Second,
	}
}
