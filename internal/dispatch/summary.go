package dispatch

import (
	"strings"

	"github.com/screenact/screenact/constants"
	"github.com/screenact/screenact/internal/plan"
)

const summaryCopyMax = 50

// Summarize renders a one-paragraph human-readable view of a plan for
// confirmation UI. Pure formatting; nothing is executed.
func Summarize(p plan.ActionPlan) string {
	var b strings.Builder

	switch p.Type {
	case constants.CreateCalendar:
		b.WriteString("📅 Create calendar event\n")
		b.WriteString("Title: " + p.SlotOr(constants.SlotTitle, "unspecified") + "\n")
		b.WriteString("Time: " + p.SlotOr(constants.SlotTime, "unspecified"))
		if location := p.Slot(constants.SlotLocation); location != "" {
			b.WriteString("\nLocation: " + location)
		}

	case constants.Navigate:
		b.WriteString("🗺️ Start navigation\n")
		b.WriteString("Destination: " + p.SlotOr(constants.SlotLocation, "unspecified"))

	case constants.AddTodo:
		b.WriteString("✅ Add todo\n")
		b.WriteString("Item: " + p.SlotOr(constants.SlotTitle, "unspecified"))

	case constants.CopyText:
		b.WriteString("📋 Copy text\n")
		text := p.SlotOr(constants.SlotContent, p.OriginalText)
		if runes := []rune(text); len(runes) > summaryCopyMax {
			text = string(runes[:summaryCopyMax-3]) + "..."
		}
		b.WriteString("Content: " + text)

	default:
		b.WriteString("Unknown action")
	}

	return b.String()
}
