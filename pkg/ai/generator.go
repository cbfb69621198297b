package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyResponse is returned when a provider answers without any text
	ErrEmptyResponse = errors.New("empty response from provider")
	// ErrQuotaExceeded is returned when a provider rejects the call for rate or quota reasons
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	// ErrContentBlocked is returned when a provider refuses the prompt on safety grounds
	ErrContentBlocked = errors.New("content blocked by provider")
)

// Generator produces text from a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Transcriber turns recorded audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
	Name() string
}

// StatusError reports a non-2xx answer from an upstream service
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// Temporary reports whether retrying the call may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
