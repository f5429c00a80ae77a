package ports

import "context"

// TextGenerator abstracts the external generative-language service as a
// prompt-in/text-out contract. Implementations make exactly one upstream
// call per invocation; no retries.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
