package minutes

import (
	"regexp"
	"strings"
)

var (
	inaudibleTag    = regexp.MustCompile(`(?i)\[inaudible\]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	sentenceJoin    = regexp.MustCompile(`([.!?])\s*([A-Z])`)
	timestampPrefix = regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?)\s*:?\s*([^0-9\n]+)`)
	speakerLabel    = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*:`)
)

// TimestampedLine is a piece of transcript text introduced by a clock time
type TimestampedLine struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// CleanTranscript normalises a raw transcript before it is sent to a model
func CleanTranscript(text string) string {
	text = inaudibleTag.ReplaceAllString(text, "[unclear]")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = sentenceJoin.ReplaceAllString(text, "${1} ${2}")
	return strings.TrimSpace(text)
}

// ExtractTimestamps returns the "M:SS text" or "H:MM:SS text" fragments of a transcript
func ExtractTimestamps(transcript string) []TimestampedLine {
	matches := timestampPrefix.FindAllStringSubmatch(transcript, -1)
	out := make([]TimestampedLine, 0, len(matches))
	for _, m := range matches {
		out = append(out, TimestampedLine{
			Time: m[1],
			Text: strings.TrimSpace(m[2]),
		})
	}
	return out
}

// IdentifySpeakers returns the distinct "Name:" labels of a transcript in first-seen order
func IdentifySpeakers(transcript string) []string {
	seen := make(map[string]struct{})
	speakers := make([]string, 0)
	for _, m := range speakerLabel.FindAllStringSubmatch(transcript, -1) {
		speaker := m[1]
		if len(speaker) <= 1 || len(speaker) >= 50 {
			continue
		}
		if _, ok := seen[speaker]; ok {
			continue
		}
		seen[speaker] = struct{}{}
		speakers = append(speakers, speaker)
	}
	return speakers
}
