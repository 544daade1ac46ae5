package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"type\":\"NAVIGATE\"}\n```", `{"type":"NAVIGATE"}`},
		{"```\n{}\n```", "{}"},
		{`{"plain": true}`, `{"plain": true}`},
		{"  {}  ", "{}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripCodeFences(tc.in))
	}
}

func sanitized(t *testing.T, raw string) (map[string]any, []string) {
	t.Helper()
	out, dropped, err := NormalizeAndSanitizeJSON([]byte(raw), nil)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	return m, dropped
}

func TestSanitizeDropsUnknownTopLevelKeys(t *testing.T) {
	m, dropped := sanitized(t, `{"type":"NAVIGATE","explanation":"because","confidence":0.9}`)

	assert.NotContains(t, m, "explanation")
	assert.Contains(t, dropped, "explanation(unknown)")
}

func TestSanitizeRestrictsSlotVocabulary(t *testing.T) {
	m, dropped := sanitized(t, `{
		"type":"CREATE_CALENDAR",
		"slots":{"title":"Dentist","urgency":"high","location":"  ","time":1530}
	}`)

	slots := m["slots"].(map[string]any)
	assert.Equal(t, "Dentist", slots["title"])
	assert.Equal(t, "1530", slots["time"], "numeric slot values are stringified")
	assert.NotContains(t, slots, "urgency")
	assert.NotContains(t, slots, "location", "whitespace-only values are dropped")
	assert.Contains(t, dropped, "slots.urgency(unknown)")
	assert.Contains(t, dropped, "slots.location(empty)")
}

func TestSanitizeUppercasesType(t *testing.T) {
	m, _ := sanitized(t, `{"type":" navigate ","confidence":1}`)
	assert.Equal(t, "NAVIGATE", m["type"])
}

func TestSanitizeClampsConfidence(t *testing.T) {
	m, _ := sanitized(t, `{"type":"ADD_TODO","confidence":1.7}`)
	assert.Equal(t, 1.0, m["confidence"])

	m, _ = sanitized(t, `{"type":"ADD_TODO","confidence":-0.2}`)
	assert.Equal(t, 0.0, m["confidence"])

	m, _ = sanitized(t, `{"type":"ADD_TODO","confidence":"0.85"}`)
	assert.Equal(t, 0.85, m["confidence"])
}

func TestSanitizeDropsNonNumericConfidence(t *testing.T) {
	m, dropped := sanitized(t, `{"type":"ADD_TODO","confidence":"very high"}`)
	assert.NotContains(t, m, "confidence")
	assert.Contains(t, dropped, "confidence(type)")
}

func TestSanitizeRejectsNonJSON(t *testing.T) {
	_, _, err := NormalizeAndSanitizeJSON([]byte("I could not parse that"), nil)
	require.Error(t, err)
}
