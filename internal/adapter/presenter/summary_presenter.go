package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

// ToSummaryResponse converts a SummaryRecord entity to SummaryResponse DTO
func ToSummaryResponse(r *entities.SummaryRecord) *summary.SummaryResponse {
	if r == nil {
		return nil
	}

	speakers := []string(r.Speakers)
	if speakers == nil {
		speakers = []string{}
	}

	return &summary.SummaryResponse{
		ID:      r.ID.String(),
		Summary: r.Summary(),
		Metadata: summary.Metadata{
			ProcessingTimeMs:   r.ProcessingTimeMs,
			ModelUsed:          r.ModelUsed,
			Source:             string(r.Source),
			TranscriptLength:   len(r.Transcript),
			TimestampsFound:    len(minutes.ExtractTimestamps(r.Transcript)),
			SpeakersIdentified: speakers,
		},
		ArchiveKey: r.ArchiveKey,
		CreatedAt:  r.CreatedAt,
	}
}

// ToSummaryListResponse converts a page of SummaryRecords to SummaryListResponse
func ToSummaryListResponse(records []*entities.SummaryRecord, total int64, page, pageSize int) *summary.SummaryListResponse {
	items := make([]*summary.SummaryResponse, len(records))
	for i, r := range records {
		items[i] = ToSummaryResponse(r)
	}

	return &summary.SummaryListResponse{
		Summaries:  items,
		Pagination: common.NewPagination(page, pageSize, total),
	}
}
