package summary

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// SummaryResponse represents a stored meeting summary
type SummaryResponse struct {
	ID         string                  `json:"id"`
	Summary    entities.MeetingSummary `json:"summary"`
	Metadata   Metadata                `json:"metadata"`
	ArchiveKey string                  `json:"archive_key,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// Metadata describes how a summary was produced
type Metadata struct {
	ProcessingTimeMs   int64    `json:"processing_time_ms"`
	ModelUsed          string   `json:"model_used"`
	Source             string   `json:"source"`
	TranscriptLength   int      `json:"transcript_length"`
	TimestampsFound    int      `json:"timestamps_found"`
	SpeakersIdentified []string `json:"speakers_identified"`
}

// SummaryListResponse represents a page of summaries
type SummaryListResponse struct {
	Summaries  []*SummaryResponse         `json:"summaries"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// ExportResponse carries a presigned download URL for an archived summary
type ExportResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TranscriptionResponse represents transcribed audio and, optionally, its summary
type TranscriptionResponse struct {
	Transcription string           `json:"transcription"`
	Summary       *SummaryResponse `json:"summary,omitempty"`
}
