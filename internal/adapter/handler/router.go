package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// multipartOverhead is the allowance for form boundaries and part headers on top of the file size
const multipartOverhead = 64 << 10

// Router holds all handlers
type Router struct {
	auth          echo.MiddlewareFunc
	summary       *Summary
	transcription *Transcription
	health        *Health
}

// NewRouter creates a new router with all handlers
func NewRouter(auth echo.MiddlewareFunc, summary *Summary, transcription *Transcription, health *Health) *Router {
	return &Router{
		auth:          auth,
		summary:       summary,
		transcription: transcription,
		health:        health,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.health.Liveness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.GET("/llm/health", rt.health.LLMHealth)

	rt.setupSummaryRoutes(v1)
	rt.setupTranscriptionRoutes(v1)
}

// setupSummaryRoutes configures summary routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	summaries := g.Group("/summaries", rt.middleware()...)
	summaries.POST("", rt.summary.CreateSummary)
	summaries.GET("", rt.summary.ListSummaries)
	summaries.GET("/:id", rt.summary.GetSummary)
	summaries.DELETE("/:id", rt.summary.DeleteSummary)
	summaries.GET("/:id/export", rt.summary.ExportSummary)

	g.POST("/extract", rt.summary.Extract, rt.middleware()...)
}

// setupTranscriptionRoutes configures audio upload routes.
// Bodies far over the upload limit are refused before the form is parsed.
func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	mw := rt.middleware()
	if limit := rt.transcription.maxUploadBytes; limit > 0 {
		mw = append(mw, echomw.BodyLimit(fmt.Sprintf("%dB", limit+multipartOverhead)))
	}
	g.POST("/transcriptions", rt.transcription.Transcribe, mw...)
}

func (rt *Router) middleware() []echo.MiddlewareFunc {
	if rt.auth == nil {
		return nil
	}
	return []echo.MiddlewareFunc{rt.auth}
}
