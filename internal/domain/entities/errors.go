package entities

import "errors"

// Domain errors
var (
	// Summary errors
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrTranscriptRequired = errors.New("transcript is required")

	// Archive errors
	ErrArchiveDisabled = errors.New("summary archive is not configured")
	ErrNotArchived     = errors.New("summary has not been archived")

	// Provider errors
	ErrTranscriberDisabled = errors.New("no transcriber configured")
)

// StoreError reports a failed summary store query
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "summary store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ArchiveError reports a failed archive operation
type ArchiveError struct {
	Op  string
	Err error
}

func (e *ArchiveError) Error() string {
	return "summary archive " + e.Op + ": " + e.Err.Error()
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}
