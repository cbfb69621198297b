package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SummarySource tells where the text behind a summary came from
type SummarySource string

const (
	SummarySourceModel SummarySource = "model" // Fresh reply from the language model
	SummarySourceCache SummarySource = "cache" // Reply served from the reply cache
	SummarySourceMock  SummarySource = "mock"  // Canned template used after a generation failure
)

// SummaryRecord is a stored meeting summary together with its provenance
type SummaryRecord struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID   string    `json:"user_id" gorm:"type:varchar(255);index"`
	Title    string    `json:"title" gorm:"type:text;not null"`
	Date     string    `json:"date" gorm:"type:text"`
	Duration string    `json:"duration" gorm:"type:text"`

	Participants datatypes.JSONSlice[string]     `json:"participants" gorm:"type:jsonb"`
	KeyPoints    datatypes.JSONSlice[string]     `json:"key_points" gorm:"type:jsonb"`
	Decisions    datatypes.JSONSlice[string]     `json:"decisions" gorm:"type:jsonb"`
	ActionItems  datatypes.JSONSlice[ActionItem] `json:"action_items" gorm:"type:jsonb"`
	NextSteps    datatypes.JSONSlice[string]     `json:"next_steps" gorm:"type:jsonb"`

	// Provenance
	Transcript       string                      `json:"-" gorm:"type:text"`
	RawResponse      string                      `json:"-" gorm:"type:text"`
	Speakers         datatypes.JSONSlice[string] `json:"speakers" gorm:"type:jsonb"`
	Source           SummarySource               `json:"source" gorm:"type:varchar(20);not null"`
	ModelUsed        string                      `json:"model_used" gorm:"type:varchar(100)"`
	ProcessingTimeMs int64                       `json:"processing_time_ms"`
	ArchiveKey       string                      `json:"archive_key,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (SummaryRecord) TableName() string {
	return "meeting_summaries"
}

// NewSummaryRecord wraps an extracted summary into a new record owned by userID
func NewSummaryRecord(userID string, s MeetingSummary) *SummaryRecord {
	now := time.Now()
	return &SummaryRecord{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        s.Title,
		Date:         s.Date,
		Duration:     s.Duration,
		Participants: datatypes.JSONSlice[string](s.Participants),
		KeyPoints:    datatypes.JSONSlice[string](s.KeyPoints),
		Decisions:    datatypes.JSONSlice[string](s.Decisions),
		ActionItems:  datatypes.JSONSlice[ActionItem](s.ActionItems),
		NextSteps:    datatypes.JSONSlice[string](s.NextSteps),
		Speakers:     datatypes.JSONSlice[string]{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Summary returns the meeting summary held by the record
func (r *SummaryRecord) Summary() MeetingSummary {
	return MeetingSummary{
		Title:        r.Title,
		Date:         r.Date,
		Duration:     r.Duration,
		Participants: orEmpty(r.Participants),
		KeyPoints:    orEmpty(r.KeyPoints),
		Decisions:    orEmpty(r.Decisions),
		ActionItems:  orEmpty(r.ActionItems),
		NextSteps:    orEmpty(r.NextSteps),
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
