package gateway

import (
	"context"
	"errors"
	"strings"

	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/llm/gemini"
)

// Fallback strings, one per failure category. The gateway never lets a
// provider error escape its boundary: every failure degrades to one of
// these, returned to the user as a normal reply.
const (
	FallbackNoCredential = "Sorry, I am not configured correctly yet. Please check the generation API key."
	FallbackBadKey       = "Sorry, the configured API key is invalid. Please check the generation API key."
	FallbackQuota        = "Sorry, the API quota is exhausted. Please try again in a minute or two."
	FallbackSafety       = "Sorry, I could not process that message because of the safety filter."
	FallbackNoModel      = "Sorry, the configured model does not exist. Please check the model name."
	FallbackUnknown      = "Sorry, something went wrong while generating a reply. Please try again!"
)

// ErrDegraded marks a reply as a fallback string rather than a genuine
// completion. Callers use it to decide whether the reply is worth
// persisting; the reply text itself is still returned to the user.
var ErrDegraded = errors.New("completion degraded to fallback")

// Gateway turns persona + trailing history + a new user message into
// generated reply text. The provider is injected so tests can stub it.
type Gateway struct {
	provider llm.LLMProvider
}

func New(provider llm.LLMProvider) *Gateway {
	return &Gateway{provider: provider}
}

// Complete builds the flattened prompt and submits it to the provider.
// The returned string is always safe to show the user. When the
// completion failed, the string is a category-specific fallback and the
// error wraps ErrDegraded.
func (g *Gateway) Complete(ctx context.Context, persona Persona, history []llm.Message, userMessage string) (string, error) {
	prompt := BuildPrompt(persona, history, userMessage)

	text, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return classifyFailure(err), ErrDegraded
	}

	if strings.TrimSpace(text) == "" {
		return FallbackUnknown, ErrDegraded
	}

	return text, nil
}

func classifyFailure(err error) string {
	if errors.Is(err, gemini.ErrNoAPIKey) {
		return FallbackNoCredential
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY") || strings.Contains(msg, "API key"):
		return FallbackBadKey
	case strings.Contains(msg, "quota") || strings.Contains(msg, "429") || strings.Contains(msg, "Too Many"):
		return FallbackQuota
	case strings.Contains(msg, "safety"):
		return FallbackSafety
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return FallbackNoModel
	default:
		return FallbackUnknown
	}
}
