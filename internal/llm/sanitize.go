package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/screenact/screenact/constants"
)

// StripCodeFences removes markdown fence markers models love to wrap JSON in
// (``` and ```json), leaving the payload intact.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// NormalizeAndSanitizeJSON
// - Removes unknown top-level keys (only the wire contract's keys survive)
// - Restricts slots to the fixed vocabulary; drops null/empty entries
// - Coerces numeric slot values to strings
// - Clamps confidence into [0,1]
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)

	// 1) remove unknown top-level keys
	allowed := map[string]struct{}{
		"type": {}, "slots": {}, "original_text": {}, "confidence": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 2) slots: keep the fixed vocabulary, stringify values, drop empties
	if rawSlots, ok := m["slots"]; ok {
		slots, ok := rawSlots.(map[string]any)
		if !ok {
			delete(m, "slots")
			dropped = append(dropped, "slots(type)")
		} else {
			clean := make(map[string]string, len(slots))
			for k, v := range slots {
				if _, known := constants.AllowedSlots[k]; !known {
					dropped = append(dropped, "slots."+k+"(unknown)")
					continue
				}
				s, ok := stringify(v)
				if !ok || strings.TrimSpace(s) == "" {
					dropped = append(dropped, "slots."+k+"(empty)")
					continue
				}
				clean[k] = strings.TrimSpace(s)
			}
			m["slots"] = clean
		}
	}

	// 3) type: trim and uppercase so the enum check is byte-exact
	if v, ok := m["type"].(string); ok {
		m["type"] = strings.ToUpper(strings.TrimSpace(v))
	}

	// 4) confidence: clamp into [0,1]; drop non-numeric values
	if v, ok := m["confidence"]; ok {
		switch t := v.(type) {
		case float64:
			if t < 0 {
				m["confidence"] = 0.0
			} else if t > 1 {
				m["confidence"] = 1.0
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				m["confidence"] = clamp01(f)
			} else {
				delete(m, "confidence")
				dropped = append(dropped, "confidence(type)")
			}
		default:
			delete(m, "confidence")
			dropped = append(dropped, "confidence(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.plan.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
