// Package recommend suggests catalog sources for the user's collections.
// A chat-style AI provider produces the suggestions when one is configured;
// a local, no-network scorer is the fallback and never fails.
package recommend

import "context"

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Provider is a chat-style completion endpoint: ordered role/content
// messages in, a single text completion out.
type Provider interface {
	Name() string
	Complete(ctx context.Context, msgs []Message, maxTokens int) (string, error)
}
