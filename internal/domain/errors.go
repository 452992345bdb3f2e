package domain

import "errors"

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a chat-completion provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrInvalidUpload signals an unusable uploaded report (wrong type, unreadable, empty).
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrInvalidRole signals a chat message with an unsupported role.
	ErrInvalidRole = errors.New("invalid message role")
)
