// Package openai implements the ai interfaces against OpenAI-compatible APIs
// via langchaingo. It works with the hosted OpenAI endpoint and with local
// servers (Ollama, LocalAI, vLLM) through ai.Config.BaseURL.
package openai
