package handler

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

const audioFormField = "audio"

// Transcription handles audio upload requests
type Transcription struct {
	svc            minutes.Service
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(svc minutes.Service, logger *zap.Logger, maxUploadBytes int64) *Transcription {
	return &Transcription{svc: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Transcribe handles POST /transcriptions
// @Summary      Transcribe a recording
// @Description  Converts an uploaded recording to text, and summarizes it when summarize=true
// @Tags         Transcriptions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio      formData  file    true   "Recorded audio"
// @Param        summarize  query     bool    false  "Also summarize the transcript"
// @Success      200        {object}  summary.TranscriptionResponse  "Transcription"
// @Failure      400        {object}  map[string]interface{}         "Missing audio file"
// @Failure      413        {object}  map[string]interface{}         "Upload too large"
// @Failure      415        {object}  map[string]interface{}         "Unsupported media type"
// @Failure      502        {object}  map[string]interface{}         "Transcription failed"
// @Failure      503        {object}  map[string]interface{}         "No transcriber configured"
// @Router       /transcriptions [post]
func (h *Transcription) Transcribe(c echo.Context) error {
	file, err := c.FormFile(audioFormField)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrUploadTooLarge(h.maxUploadBytes))
	}
	if ct := file.Header.Get("Content-Type"); !isAudioContentType(ct) {
		return HandleError(h.logger, c, errors.ErrUnsupportedMedia(ct))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("cannot read audio file"))
	}
	defer src.Close()

	ctx := c.Request().Context()
	text, err := h.svc.Transcribe(ctx, file.Filename, src)
	if err != nil {
		return HandleError(h.logger, c, transcriptionError(err))
	}

	resp := &summary.TranscriptionResponse{Transcription: text}
	if c.QueryParam("summarize") == "true" {
		record, err := h.svc.Summarize(ctx, minutes.SummarizeInput{
			UserID:     middleware.GetUserID(c),
			Transcript: text,
		})
		if err != nil {
			return HandleError(h.logger, c, toAppError(err, ""))
		}
		resp.Summary = presenter.ToSummaryResponse(record)
	}

	return HandleSuccess(h.logger, c, resp)
}

// transcriptionError keeps configuration and quota problems distinct from provider failures
func transcriptionError(err error) error {
	if stdErrors.Is(err, entities.ErrTranscriberDisabled) || stdErrors.Is(err, ai.ErrQuotaExceeded) {
		return toAppError(err, "")
	}
	return errors.ErrAITranscriptionFailed(err)
}

func isAudioContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return ct == "" ||
		strings.HasPrefix(ct, "audio/") ||
		strings.HasPrefix(ct, "video/") ||
		strings.HasPrefix(ct, "application/octet-stream")
}
