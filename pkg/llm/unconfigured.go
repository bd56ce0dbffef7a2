package llm

import "context"

// Unconfigured is a Generator that refuses every request. It stands in for
// the real client when no API key is configured, so callers get a clean
// ErrNotConfigured instead of a nil dereference.
type Unconfigured struct{}

// Generate always fails with ErrNotConfigured.
func (Unconfigured) Generate(_ context.Context, _ Request) (text string, err error) {
	err = ErrNotConfigured
	return text, err
}
