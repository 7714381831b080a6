package llm

import "context"

// Provider is the external text-generation service behind every AI
// feature. It is constructed once at process start and injected into the
// adapters that need it.
type Provider interface {
	// Generate returns the full text for one prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// StreamAnswer returns a stream of text chunks (incremental).
	StreamAnswer(ctx context.Context, prompt string) (chunks <-chan string, errs <-chan error)
	Close() error
}
