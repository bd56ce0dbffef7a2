package llm

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Sentinel errors callers branch on with errors.Is.
var (
	// ErrNotConfigured is returned immediately, with no network call, for
	// every generation attempted without a usable API key.
	ErrNotConfigured = errors.New("generation client not initialized: check API key configuration")

	// ErrRateLimited is returned once the retry budget is exhausted.
	ErrRateLimited = errors.New("generation service rate limit exceeded")
)

// ServiceError describes a non-2xx response from the generation service.
type ServiceError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error renders the service failure with its status detail.
func (e *ServiceError) Error() (msg string) {
	if e.Status != "" {
		msg = fmt.Sprintf("generation service error %d (%s): %s", e.StatusCode, e.Status, e.Message)
		return msg
	}
	msg = fmt.Sprintf("generation service error %d: %s", e.StatusCode, e.Message)
	return msg
}

// RateLimited reports whether err represents a rate-limit failure, either a
// single 429 response or the terminal error after retry exhaustion.
func RateLimited(err error) (limited bool) {
	if errors.Is(err, ErrRateLimited) {
		limited = true
		return limited
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		limited = svcErr.StatusCode == http.StatusTooManyRequests || svcErr.Status == "RESOURCE_EXHAUSTED"
		return limited
	}

	return limited
}
