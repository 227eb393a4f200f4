package gateway

import (
	"fmt"
	"strings"

	"ai-companion-be/pkg/llm"
)

// Persona carries the companion fields the prompt embeds. The gateway
// takes a plain struct so it stays decoupled from the entity layer.
type Persona struct {
	Name         string
	Description  string
	Instructions string
}

// promptHistorySize is how many trailing history messages are embedded
// in the flattened prompt.
const promptHistorySize = 5

func buildSystemPrompt(persona Persona) string {
	return fmt.Sprintf(`You are %s. %s

Instructions: %s

Important rules:
- Always stay in character
- Answer the user's actual question, naturally and helpfully
- NEVER reply with just a greeting
- If asked about real-time information you do not have, say so plainly and explain what you do know about the topic`,
		persona.Name,
		persona.Description,
		persona.Instructions,
	)
}

func buildHistoryText(persona Persona, history []llm.Message) string {
	if len(history) > promptHistorySize {
		history = history[len(history)-promptHistorySize:]
	}

	var b strings.Builder
	for _, msg := range history {
		label := persona.Name
		if msg.Role == "user" {
			label = "User"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// BuildPrompt flattens persona, trailing history and the new user
// message into the single prompt string sent to the model.
func BuildPrompt(persona Persona, history []llm.Message, userMessage string) string {
	return fmt.Sprintf(`%s

Recent conversation:
%s
User: %s

Answer the question above in a detailed and helpful way. %s:`,
		buildSystemPrompt(persona),
		buildHistoryText(persona, history),
		userMessage,
		persona.Name,
	)
}
