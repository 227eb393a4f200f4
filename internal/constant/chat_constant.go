package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"

	// ContextWindowSize is how many trailing messages are loaded as
	// conversation context for a chat turn.
	ContextWindowSize = 10

	// PromptHistorySize is how many of those context messages end up
	// embedded in the completion prompt.
	PromptHistorySize = 5

	DefaultCategoryName  = "General"
	DefaultCompanionIcon = "🤖"
)
