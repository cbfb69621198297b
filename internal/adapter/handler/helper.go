package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// toAppError translates domain errors into API errors
func toAppError(err error, id string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var storeErr *entities.StoreError
	if stdErrors.As(err, &storeErr) {
		return errors.ErrDBQueryFailed(storeErr.Op, storeErr.Err)
	}
	var archiveErr *entities.ArchiveError
	if stdErrors.As(err, &archiveErr) {
		return errors.ErrStorageFailed(archiveErr.Op, archiveErr.Err)
	}

	switch {
	case stdErrors.Is(err, entities.ErrTranscriptRequired):
		return errors.ErrTranscriptRequired()
	case stdErrors.Is(err, entities.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound(id)
	case stdErrors.Is(err, entities.ErrNotArchived):
		return errors.ErrSummaryNotArchived(id)
	case stdErrors.Is(err, entities.ErrArchiveDisabled):
		return errors.ErrArchiveUnavailable()
	case stdErrors.Is(err, entities.ErrTranscriberDisabled):
		return errors.ErrAIServiceUnavailable("transcription")
	case stdErrors.Is(err, ai.ErrQuotaExceeded):
		return errors.ErrAIQuotaExceeded()
	default:
		return errors.ErrInternal(err)
	}
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}
