package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[TRANSCRIPT_REQUIRED] Transcript is required", ErrTranscriptRequired().Error())

	raw := stdErrors.New("dial tcp: refused")
	err := ErrAISummaryFailed(raw)
	assert.Equal(t, "[AI_SUMMARY_FAILED] Failed to generate summary: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, raw)
}

func TestAppError_WithDetailDoesNotShareMaps(t *testing.T) {
	base := ErrSummaryNotFound("a")
	other := base.WithDetail("extra", "1")

	assert.Equal(t, map[string]string{"summary_id": "a"}, base.Details)
	assert.Equal(t, map[string]string{"summary_id": "a", "extra": "1"}, other.Details)
}

func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrUploadTooLarge(10))

	var appErr AppError
	assert.True(t, stdErrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPCode)
	assert.Equal(t, "10", appErr.Details["max_bytes"])
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "HTTP_OK", ErrorCode_HTTP_OK.String())
	assert.Equal(t, "SUMMARY_NOT_FOUND", ErrorCode_SUMMARY_NOT_FOUND.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(12345).String())
}
