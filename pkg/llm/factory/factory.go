package factory

import (
	"fmt"

	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/llm/gemini"
	"ai-companion-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, geminiAPIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if modelName == "" {
			modelName = "gemini-2.0-flash"
		}
		// A missing key is allowed here; the gateway degrades each
		// chat turn instead of failing startup.
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
