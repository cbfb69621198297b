package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

// Summary handles meeting summary HTTP requests
type Summary struct {
	svc    minutes.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc minutes.Service, logger *zap.Logger) *Summary {
	return &Summary{svc: svc, logger: logger}
}

// CreateSummary handles POST /summaries
// @Summary      Summarize a transcript
// @Description  Generates structured meeting minutes from a transcript. Falls back to a template summary when the model is unavailable.
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      summary.CreateSummaryRequest  true  "Transcript to summarize"
// @Success      200      {object}  summary.SummaryResponse       "Summary created"
// @Failure      400      {object}  map[string]interface{}        "Transcript is required"
// @Failure      401      {object}  map[string]interface{}        "User not authenticated"
// @Failure      500      {object}  map[string]interface{}        "Failed to save summary"
// @Router       /summaries [post]
func (h *Summary) CreateSummary(c echo.Context) error {
	var req summary.CreateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return HandleError(h.logger, c, errors.ErrTranscriptRequired())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	record, err := h.svc.Summarize(c.Request().Context(), minutes.SummarizeInput{
		UserID:     middleware.GetUserID(c),
		Transcript: req.Transcript,
		Refresh:    req.Refresh,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(record))
}

// ListSummaries handles GET /summaries
// @Summary      List summaries
// @Description  Lists the caller's summaries, newest first
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Title search"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        page_size  query     int     false  "Page size"    default(20)
// @Success      200        {object}  summary.SummaryListResponse  "Summaries"
// @Failure      400        {object}  map[string]interface{}       "Invalid query"
// @Failure      401        {object}  map[string]interface{}       "User not authenticated"
// @Router       /summaries [get]
func (h *Summary) ListSummaries(c echo.Context) error {
	var req summary.ListSummariesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := minutes.ListInput{
		UserID:   middleware.GetUserID(c),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	in.Normalize()

	records, total, err := h.svc.List(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryListResponse(records, total, in.Page, in.PageSize))
}

// GetSummary handles GET /summaries/:id
// @Summary      Get a summary
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Summary ID (UUID)"
// @Success      200  {object}  summary.SummaryResponse  "Summary"
// @Failure      400  {object}  map[string]interface{}   "Invalid summary ID"
// @Failure      404  {object}  map[string]interface{}   "Summary not found"
// @Router       /summaries/{id} [get]
func (h *Summary) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid summary ID"))
	}

	record, err := h.svc.Get(c.Request().Context(), id, middleware.GetUserID(c))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(record))
}

// DeleteSummary handles DELETE /summaries/:id
// @Summary      Delete a summary
// @Description  Deletes a summary and its archived copies
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Summary ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Summary deleted"
// @Failure      400  {object}  map[string]interface{}  "Invalid summary ID"
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{id} [delete]
func (h *Summary) DeleteSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid summary ID"))
	}

	if err := h.svc.Delete(c.Request().Context(), id, middleware.GetUserID(c)); err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"id": id.String(), "deleted": true})
}

// ExportSummary handles GET /summaries/:id/export
// @Summary      Export a summary
// @Description  Returns a presigned URL for the archived summary JSON
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Summary ID (UUID)"
// @Success      200  {object}  summary.ExportResponse  "Presigned URL"
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Failure      409  {object}  map[string]interface{}  "Summary has no archived copy"
// @Failure      500  {object}  map[string]interface{}  "Presigning failed"
// @Failure      503  {object}  map[string]interface{}  "Archive not configured"
// @Router       /summaries/{id}/export [get]
func (h *Summary) ExportSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid summary ID"))
	}

	link, err := h.svc.ExportURL(c.Request().Context(), id, middleware.GetUserID(c))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, &summary.ExportResponse{
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt,
	})
}

// Extract handles POST /extract
// @Summary      Extract minutes from model output
// @Description  Parses text written in the summary template without calling a model
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      summary.ExtractRequest   true  "Raw model output"
// @Success      200      {object}  entities.MeetingSummary  "Extracted summary"
// @Failure      400      {object}  map[string]interface{}   "Invalid payload"
// @Router       /extract [post]
func (h *Summary) Extract(c echo.Context) error {
	var req summary.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	return HandleSuccess(h.logger, c, h.svc.Extract(req.Text))
}
