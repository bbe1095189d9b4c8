// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"fmt"
	"os"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// APIKey authenticates against the provider.
	// Required unless BaseURL points at a local OpenAI-compatible server.
	APIKey string

	// BaseURL is the base URL for an OpenAI-compatible API.
	// Empty means the provider's public endpoint.
	// Example: "http://localhost:11434/v1" for a local server
	BaseURL string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// The same model must be used at ingest and query time; mixing models
	// breaks the meaning of similarity scores.
	EmbeddingModel string

	// GenerativeModel is the model identifier for completion calls.
	GenerativeModel string

	// Temperature is the creativity parameter for generation, in [0.0, 1.0].
	// Classification and grounded answering use 0.
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the base URL for an OpenAI-compatible API.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerativeModel sets the generative model identifier.
func WithGenerativeModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerativeModel = model
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config with the models the index format assumes:
// a 1536-dimension embedding model and deterministic (temperature 0) generation.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:  "text-embedding-ada-002",
		GenerativeModel: "gpt-4o-mini",
		Temperature:     0.0,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ConfigFromEnv builds a Config from the environment.
// OPENAI_API_KEY supplies the key; OPENAI_BASE_URL, TRIAGE_EMBEDDING_MODEL and
// TRIAGE_GENERATIVE_MODEL override the defaults when set.
// The returned config is validated: a missing key is a configuration error
// surfaced here, before any pipeline call is attempted.
func ConfigFromEnv(opts ...ConfigOption) (*Config, error) {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TRIAGE_EMBEDDING_MODEL"); v != "" {
		cfg.EmbeddingModel = v
	}
	if v := os.Getenv("TRIAGE_GENERATIVE_MODEL"); v != "" {
		cfg.GenerativeModel = v
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to a custom base URL if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/v1") {
		c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
		c.BaseURL = c.BaseURL + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" && c.BaseURL == "" {
		return ErrMissingAPIKey
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required", ErrInvalidConfig)
	}
	if c.GenerativeModel == "" {
		return fmt.Errorf("%w: GenerativeModel is required", ErrInvalidConfig)
	}
	if c.Temperature < 0.0 || c.Temperature > 1.0 {
		return fmt.Errorf("%w: Temperature must be between 0.0 and 1.0", ErrInvalidConfig)
	}
	return nil
}
