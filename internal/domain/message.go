package domain

import "fmt"

// Role tags a chat message with its author.
type Role string

const (
	// RoleSystem is reserved for the engine's persona message.
	RoleSystem Role = "system"
	// RoleUser marks a message written by the project manager.
	RoleUser Role = "user"
	// RoleAssistant marks a prior model reply.
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the conversation sent to the generation provider.
type ChatMessage struct {
	Role    Role
	Content string
}

// NewHistoryMessage validates a caller-supplied history entry. Only user and
// assistant roles are accepted; system messages belong to the engine.
func NewHistoryMessage(role, content string) (ChatMessage, error) {
	r := Role(role)
	if r != RoleUser && r != RoleAssistant {
		return ChatMessage{}, fmt.Errorf("history role %q: %w", role, ErrInvalidRole)
	}
	return ChatMessage{Role: r, Content: content}, nil
}
