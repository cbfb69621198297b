package summary

// CreateSummaryRequest represents the request to summarize a transcript
type CreateSummaryRequest struct {
	Transcript string `json:"transcript" validate:"notblank,max=500000"`
	Refresh    bool   `json:"refresh"` // Skip and replace any cached model reply
}

// ListSummariesRequest represents query parameters for listing summaries
type ListSummariesRequest struct {
	Search   string `query:"search" validate:"max=255"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ExtractRequest represents raw model output to run through the extractor.
// Empty text is allowed and yields the default summary.
type ExtractRequest struct {
	Text string `json:"text" validate:"max=500000"`
}
