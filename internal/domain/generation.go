package domain

import "context"

// Completer is the chat-completion contract between layers.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (CompletionResult, error)
}

// CompletionResult carries the generated text and token usage.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
