package llm

import "strings"

// BuildSystemPrompt composes the intent-extraction instruction with the
// caller's current date so relative expressions ("tomorrow 3pm") resolve to
// concrete ISO timestamps.
func BuildSystemPrompt(currentDate string) string {
	parts := []string{
		"You are an assistant that extracts executable actions from text.",
		"Output MUST be a single valid JSON object:",
		`{`,
		`  "type": "CREATE_CALENDAR" | "NAVIGATE" | "ADD_TODO" | "COPY_TEXT" | "UNKNOWN",`,
		`  "slots": {`,
		`    "title": "string (optional)",`,
		`    "time": "YYYY-MM-DDTHH:MM:SS (ISO 8601, optional)",`,
		`    "location": "string (optional)",`,
		`    "content": "string (optional)"`,
		`  },`,
		`  "confidence": 0.0-1.0,`,
		`  "original_text": "string"`,
		`}`,
		"",
		"Rules:",
		`1. Date/time plus an event -> CREATE_CALENDAR (e.g. "meeting tomorrow at 3pm", "dinner on Friday")`,
		`2. A place plus intent to go -> NAVIGATE (e.g. "go to the airport", "navigate to X", "how do I get to X")`,
		`3. A task or reminder -> ADD_TODO (e.g. "buy milk", "remind me to X", "remember to X")`,
		`4. Text worth keeping but with no other intent -> COPY_TEXT`,
		`5. No clear action intent at all -> UNKNOWN`,
		`6. confidence is your own certainty in the classification (0-1)`,
		"Output ONLY the JSON.",
	}
	return strings.Join(parts, "\n") + "\nCurrent date: " + strings.TrimSpace(currentDate)
}
