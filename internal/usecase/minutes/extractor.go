package minutes

import (
	"regexp"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Defaults used when the reply omits a scalar field
const (
	DefaultTitle    = "Meeting Summary"
	DefaultDuration = "30 minutes"

	// DateLayout renders dates as month/day/year without padding
	DateLayout = "1/2/2006"
)

// Template labels the model is asked to produce
const (
	labelTitle        = "MEETING_TITLE:"
	labelDate         = "DATE:"
	labelDuration     = "DURATION:"
	labelParticipants = "PARTICIPANTS:"

	headerKeyPoints   = "KEY_POINTS:"
	headerDecisions   = "DECISIONS:"
	headerActionItems = "ACTION_ITEMS:"
	headerNextSteps   = "NEXT_STEPS:"
)

type section int

const (
	sectionNone section = iota
	sectionKeyPoints
	sectionDecisions
	sectionActionItems
	sectionNextSteps
)

var (
	numberedLine = regexp.MustCompile(`^\d+\.`)
	actionLine   = regexp.MustCompile(`^\d+\.\s*(.+?)\s*\|\s*(.+?)\s*\|\s*(.+?)\s*\|\s*(.+)$`)
	bulletMarker = regexp.MustCompile(`^[-•]\s*`)
)

// SkippedLine is a non-empty line the extractor could not file anywhere
type SkippedLine struct {
	Number int    // 1-based line number in the raw text
	Text   string // trimmed line
	Reason string
}

// Extract converts a model reply that loosely follows the summary template
// into a MeetingSummary. It never fails: unrecognised or malformed lines are
// dropped. now supplies the default date.
func Extract(raw string, now time.Time) entities.MeetingSummary {
	summary, _ := ExtractWithDiagnostics(raw, now)
	return summary
}

// ExtractWithDiagnostics behaves like Extract and also returns the lines
// that were dropped.
func ExtractWithDiagnostics(raw string, now time.Time) (entities.MeetingSummary, []SkippedLine) {
	summary := entities.MeetingSummary{
		Title:        DefaultTitle,
		Date:         now.Format(DateLayout),
		Duration:     DefaultDuration,
		Participants: []string{},
		KeyPoints:    []string{},
		Decisions:    []string{},
		ActionItems:  []entities.ActionItem{},
		NextSteps:    []string{},
	}
	var skipped []SkippedLine
	skip := func(n int, line, reason string) {
		skipped = append(skipped, SkippedLine{Number: n, Text: line, Reason: reason})
	}

	current := sectionNone
	for i, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		n := i + 1

		switch {
		case strings.HasPrefix(line, labelTitle):
			summary.Title = strings.TrimSpace(strings.TrimPrefix(line, labelTitle))
		case strings.HasPrefix(line, labelDate):
			summary.Date = strings.TrimSpace(strings.TrimPrefix(line, labelDate))
		case strings.HasPrefix(line, labelDuration):
			summary.Duration = strings.TrimSpace(strings.TrimPrefix(line, labelDuration))
		case strings.HasPrefix(line, labelParticipants):
			summary.Participants = splitNames(strings.TrimPrefix(line, labelParticipants))

		case line == headerKeyPoints:
			current = sectionKeyPoints
		case line == headerDecisions:
			current = sectionDecisions
		case line == headerActionItems:
			current = sectionActionItems
		case line == headerNextSteps:
			current = sectionNextSteps

		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			content := bulletMarker.ReplaceAllString(line, "")
			switch current {
			case sectionKeyPoints:
				summary.KeyPoints = append(summary.KeyPoints, content)
			case sectionDecisions:
				summary.Decisions = append(summary.Decisions, content)
			case sectionNextSteps:
				summary.NextSteps = append(summary.NextSteps, content)
			default:
				skip(n, line, "bullet outside a list section")
			}

		case numberedLine.MatchString(line):
			m := actionLine.FindStringSubmatch(line)
			if m == nil {
				skip(n, line, "numbered line without task | assignee | deadline | priority")
				continue
			}
			summary.ActionItems = append(summary.ActionItems, entities.ActionItem{
				ID:       len(summary.ActionItems) + 1,
				Task:     strings.TrimSpace(m[1]),
				Assignee: strings.TrimSpace(m[2]),
				Deadline: strings.TrimSpace(m[3]),
				Priority: entities.ParsePriority(m[4]),
			})

		default:
			skip(n, line, "unrecognised line")
		}
	}

	return summary, skipped
}

// splitNames splits a comma separated list, dropping blank entries
func splitNames(s string) []string {
	names := []string{}
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
