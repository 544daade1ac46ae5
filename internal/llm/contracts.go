package llm

import "context"

// ChatCompleter is the one contract the parser depends on. Implementations
// may be a remote OpenAI-compatible endpoint, an on-device model, or a test
// double.
//
// The completion text is returned as-is. Every failure mode (network, auth,
// quota, timeout, provider error, cancelled context) collapses to a non-nil
// error; no structured error detail crosses this boundary.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
