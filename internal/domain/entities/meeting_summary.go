package entities

import "strings"

// Priority is the urgency of an action item
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps free text onto a known priority, falling back to medium
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// ActionItem is a task extracted from a numbered ACTION_ITEMS line.
// ID is the 1-based position of the item in the parsed reply.
type ActionItem struct {
	ID       int      `json:"id" yaml:"id"`
	Task     string   `json:"task" yaml:"task"`
	Assignee string   `json:"assignee" yaml:"assignee"`
	Deadline string   `json:"deadline" yaml:"deadline"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// MeetingSummary is the typed form of a model-generated meeting summary.
// List fields are never nil.
type MeetingSummary struct {
	Title        string       `json:"title" yaml:"title"`
	Date         string       `json:"date" yaml:"date"`
	Duration     string       `json:"duration" yaml:"duration"`
	Participants []string     `json:"participants" yaml:"participants"`
	KeyPoints    []string     `json:"keyPoints" yaml:"keyPoints"`
	Decisions    []string     `json:"decisions" yaml:"decisions"`
	ActionItems  []ActionItem `json:"actionItems" yaml:"actionItems"`
	NextSteps    []string     `json:"nextSteps" yaml:"nextSteps"`
}
