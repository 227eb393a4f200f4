package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/llm/gemini"
)

type stubProvider struct {
	text string
	err  error

	gotPrompt string
}

func (p *stubProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.text, p.err
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.gotPrompt = prompt
	return p.text, p.err
}

func testPersona() Persona {
	return Persona{
		Name:         "Luna",
		Description:  "A thoughtful stargazer",
		Instructions: "Speak gently and reference the night sky.",
	}
}

func TestBuildPromptShape(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi, the sky is clear tonight"},
	}

	prompt := BuildPrompt(testPersona(), history, "what can I see tonight?")

	for _, want := range []string{
		"You are Luna.",
		"A thoughtful stargazer",
		"Instructions: Speak gently and reference the night sky.",
		"Recent conversation:",
		"User: hello",
		"Luna: hi, the sky is clear tonight",
		"User: what can I see tonight?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}

	// The prompt ends with the companion name cue so the model answers
	// in character instead of continuing the transcript.
	if !strings.HasSuffix(prompt, "Luna:") {
		t.Errorf("prompt should end with name cue, got tail %q", prompt[len(prompt)-20:])
	}
}

func TestBuildPromptTrimsHistory(t *testing.T) {
	history := make([]llm.Message, 0, 8)
	for _, content := range []string{"one", "two", "three", "four", "five", "six", "seven", "eight"} {
		history = append(history, llm.Message{Role: "user", Content: content})
	}

	prompt := BuildPrompt(testPersona(), history, "latest")

	if strings.Contains(prompt, "User: one") || strings.Contains(prompt, "User: three") {
		t.Errorf("prompt should only embed the last five history messages:\n%s", prompt)
	}
	for _, want := range []string{"User: four", "User: eight"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCompletePassesReplyThrough(t *testing.T) {
	provider := &stubProvider{text: "You can see Saturn tonight."}
	g := New(provider)

	reply, err := g.Complete(context.Background(), testPersona(), nil, "what can I see?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "You can see Saturn tonight." {
		t.Errorf("unexpected reply %q", reply)
	}
	if !strings.Contains(provider.gotPrompt, "what can I see?") {
		t.Errorf("provider prompt missing user message:\n%s", provider.gotPrompt)
	}
}

func TestCompleteDegradesByFailureCategory(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantFallback string
	}{
		{"missing key", gemini.ErrNoAPIKey, FallbackNoCredential},
		{"invalid key", errors.New("gemini: API key not valid"), FallbackBadKey},
		{"quota", errors.New("gemini: 429 Too Many Requests"), FallbackQuota},
		{"safety", errors.New("gemini: response blocked by safety filter"), FallbackSafety},
		{"missing model", errors.New("gemini: 404 model not found"), FallbackNoModel},
		{"anything else", errors.New("connection reset by peer"), FallbackUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&stubProvider{err: tt.err})

			reply, err := g.Complete(context.Background(), testPersona(), nil, "hi")
			if !errors.Is(err, ErrDegraded) {
				t.Fatalf("want ErrDegraded, got %v", err)
			}
			if reply != tt.wantFallback {
				t.Errorf("want fallback %q, got %q", tt.wantFallback, reply)
			}
		})
	}
}

func TestCompleteDegradesOnEmptyReply(t *testing.T) {
	g := New(&stubProvider{text: "   \n"})

	reply, err := g.Complete(context.Background(), testPersona(), nil, "hi")
	if !errors.Is(err, ErrDegraded) {
		t.Fatalf("want ErrDegraded, got %v", err)
	}
	if reply != FallbackUnknown {
		t.Errorf("want %q, got %q", FallbackUnknown, reply)
	}
}
