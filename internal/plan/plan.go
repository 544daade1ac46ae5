package plan

import (
	"encoding/json"
	"fmt"

	"github.com/screenact/screenact/constants"
)

// ActionPlan is a typed, slot-filled action derived from recognized text.
type ActionPlan struct {
	Type         constants.ActionType
	Slots        map[string]string
	OriginalText string
	Confidence   float64
}

// wirePlan is the JSON shape shared with the LLM contract and the UI layer.
// Enum mapping is explicit; unknown extra fields are ignored by the decoder.
type wirePlan struct {
	Type         string            `json:"type"`
	Slots        map[string]string `json:"slots,omitempty"`
	OriginalText string            `json:"original_text"`
	Confidence   float64           `json:"confidence"`
}

// Fallback builds the Unknown plan that every failure path resolves to.
// It keeps the input text so a caller can still show or copy it.
func Fallback(text string) ActionPlan {
	return ActionPlan{
		Type:         constants.Unknown,
		Slots:        map[string]string{},
		OriginalText: text,
		Confidence:   0.0,
	}
}

// Slot returns the named slot value, or "" when absent.
func (p ActionPlan) Slot(key string) string {
	if p.Slots == nil {
		return ""
	}
	return p.Slots[key]
}

// SlotOr returns the named slot value, or def when absent or empty.
func (p ActionPlan) SlotOr(key, def string) string {
	if v := p.Slot(key); v != "" {
		return v
	}
	return def
}

// Actionable reports whether the plan carries a recognized, dispatchable type.
func (p ActionPlan) Actionable() bool {
	return p.Type != constants.Unknown && p.Type != ""
}

// MarshalJSON encodes the plan in the wire shape.
func (p ActionPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePlan{
		Type:         string(p.Type),
		Slots:        p.Slots,
		OriginalText: p.OriginalText,
		Confidence:   p.Confidence,
	})
}

// UnmarshalJSON decodes the wire shape. A missing slots object becomes an
// empty map; an unrecognized type string is an error so callers fall back
// rather than dispatch garbage.
func (p *ActionPlan) UnmarshalJSON(data []byte) error {
	var w wirePlan
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t, ok := constants.Canonicalize(w.Type)
	if !ok && w.Type != string(constants.Unknown) {
		return fmt.Errorf("plan: unrecognized action type %q", w.Type)
	}
	if w.Slots == nil {
		w.Slots = map[string]string{}
	}
	p.Type = t
	p.Slots = w.Slots
	p.OriginalText = w.OriginalText
	p.Confidence = w.Confidence
	return nil
}

// ExecutionResult is the uniform outcome of dispatching a plan. It is always
// a normal return value; dispatch never propagates an error to its caller.
type ExecutionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(message string, data any) ExecutionResult {
	return ExecutionResult{Success: true, Message: message, Data: data}
}

func Failure(message string) ExecutionResult {
	return ExecutionResult{Success: false, Message: message}
}
