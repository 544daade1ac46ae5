package constants

// Slot keys form the fixed vocabulary the LLM may fill. Anything else in the
// slots object is dropped during sanitization.
const (
	SlotTitle    = "title"
	SlotTime     = "time"
	SlotLocation = "location"
	SlotContent  = "content"
)

// AllowedSlots holds the slot vocabulary as a set.
var AllowedSlots = map[string]struct{}{
	SlotTitle:    {},
	SlotTime:     {},
	SlotLocation: {},
	SlotContent:  {},
}

// TimeLayout is the ISO-8601 layout used for the "time" slot.
const TimeLayout = "2006-01-02T15:04:05"

// DateLayout is the layout for the current-date string injected into prompts.
const DateLayout = "2006-01-02"
