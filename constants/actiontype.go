package constants

import (
	"strings"
)

// ActionType is the closed set of actions a plan can carry.
type ActionType string

// Stable wire values (these exact strings appear in the LLM JSON contract).
const (
	CreateCalendar ActionType = "CREATE_CALENDAR"
	Navigate       ActionType = "NAVIGATE"
	AddTodo        ActionType = "ADD_TODO"
	CopyText       ActionType = "COPY_TEXT"
	Unknown        ActionType = "UNKNOWN"
)

var allActionTypes = []ActionType{
	CreateCalendar,
	Navigate,
	AddTodo,
	CopyText,
	Unknown,
}

func AsStringSlice() []string {
	result := make([]string, len(allActionTypes))
	for i, t := range allActionTypes {
		result[i] = string(t)
	}
	return result
}

// Canonicalize maps a wire string to its ActionType. Unrecognized or empty
// input resolves to Unknown with ok=false.
func Canonicalize(input string) (ActionType, bool) {
	if input == "" {
		return Unknown, false
	}

	normalized := strings.ToUpper(strings.TrimSpace(input))

	// synonyms map: labels some models emit instead of the wire enum
	synonyms := map[string]ActionType{
		"CALENDAR":    CreateCalendar,
		"EVENT":       CreateCalendar,
		"NAVIGATE_TO": Navigate,
		"NAVIGATION":  Navigate,
		"TODO":        AddTodo,
		"REMINDER":    AddTodo,
		"COPY":        CopyText,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range allActionTypes {
		if normalized == string(t) {
			return t, true
		}
	}

	return Unknown, false
}
