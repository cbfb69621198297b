package minutes

import (
	"fmt"
	"time"
)

const promptTemplate = `<|system|>
You are a meeting minutes assistant. Extract key information from transcripts and format them exactly as requested.

<|user|>
Analyze this meeting transcript and create a structured summary:

TRANSCRIPT:
%s

Format your response EXACTLY like this:

MEETING_TITLE: [Brief descriptive title]
DATE: %s
DURATION: [Estimate from content]
PARTICIPANTS: [Names mentioned in transcript]

KEY_POINTS:
- [Important discussion point 1]
- [Important discussion point 2]
- [Important discussion point 3]

DECISIONS:
- [Decision made 1]
- [Decision made 2]
- [Decision made 3]

ACTION_ITEMS:
1. [Task] | [Person] | [Date] | [high/medium/low]
2. [Task] | [Person] | [Date] | [high/medium/low]
3. [Task] | [Person] | [Date] | [high/medium/low]

NEXT_STEPS:
- [Next step 1]
- [Next step 2]
- [Next step 3]

<|assistant|>`

const mockTemplate = `
MEETING_TITLE: Quarterly Review Meeting
DATE: %s
DURATION: 45 minutes
PARTICIPANTS: John Smith, Sarah Johnson, Mike Chen, Lisa Rodriguez

KEY_POINTS:
- Reviewed Q3 performance metrics showing 15%% growth
- Discussed upcoming product launch timeline
- Analyzed customer feedback from recent surveys

DECISIONS:
- Approved additional marketing budget of $50k for product launch
- Decided to implement new customer support system by end of month
- Agreed to hire two additional developers for the mobile app team

ACTION_ITEMS:
1. Marketing campaign planning | John Smith | 2024-09-15 | high
2. Developer recruitment process | Sarah Johnson | 2024-09-10 | medium
3. Customer support system setup | Mike Chen | 2024-09-30 | high
4. Budget review documentation | Lisa Rodriguez | 2024-09-05 | low

NEXT_STEPS:
- Schedule follow-up meeting for product launch review
- Begin interviewing candidates for developer positions
- Prepare Q4 budget proposal presentation
- Conduct user testing for new features
`

// BuildPrompt asks the model to summarise a cleaned transcript in the summary template
func BuildPrompt(cleanedTranscript string, now time.Time) string {
	return fmt.Sprintf(promptTemplate, cleanedTranscript, now.Format(DateLayout))
}

// MockResponse is the canned reply used when the model cannot be reached.
// It follows the template exactly.
func MockResponse(now time.Time) string {
	return fmt.Sprintf(mockTemplate, now.Format(DateLayout))
}
