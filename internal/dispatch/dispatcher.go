// Package dispatch routes a selected ActionPlan to the provider that
// performs its real-world effect.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/screenact/screenact/constants"
	"github.com/screenact/screenact/internal/plan"
)

const defaultEventDuration = time.Hour

type Dispatcher struct {
	calendar  CalendarProvider
	nav       NavigationProvider
	todo      TodoProvider
	clipboard ClipboardProvider
	logger    *slog.Logger
	now       func() time.Time
}

func NewDispatcher(calendar CalendarProvider, nav NavigationProvider, todo TodoProvider, clipboard ClipboardProvider, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		calendar:  calendar,
		nav:       nav,
		todo:      todo,
		clipboard: clipboard,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute runs the plan's effect and reports the outcome as a value. It
// never panics and never returns an error: validation failures and provider
// failures both come back as ExecutionResult{Success: false} with a message
// fit for direct display.
func (d *Dispatcher) Execute(ctx context.Context, p plan.ActionPlan) (result plan.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch.panic", "type", p.Type, "panic", r)
			result = plan.Failure(fmt.Sprintf("execution failed: %v", r))
		}
	}()

	d.logger.Info("dispatch.execute", "type", p.Type, "slots", len(p.Slots), "confidence", p.Confidence)

	switch p.Type {
	case constants.CreateCalendar:
		return d.executeCreateCalendar(ctx, p)
	case constants.Navigate:
		return d.executeNavigate(ctx, p)
	case constants.AddTodo:
		return d.executeAddTodo(ctx, p)
	case constants.CopyText:
		return d.executeCopyText(p)
	default:
		return plan.Failure("action type not recognized")
	}
}

func (d *Dispatcher) executeCreateCalendar(ctx context.Context, p plan.ActionPlan) plan.ExecutionResult {
	title := p.SlotOr(constants.SlotTitle, "untitled event")
	location := p.Slot(constants.SlotLocation)
	description := p.Slot(constants.SlotContent)

	start, ok := parseEventTime(p.Slot(constants.SlotTime))
	if !ok {
		// No usable time slot: schedule an hour from now.
		start = d.now().Add(time.Hour)
	}
	end := start.Add(defaultEventDuration)

	id, err := d.calendar.CreateCalendarEntry(ctx, title, start, end, location, description)
	if err != nil {
		d.logger.Error("dispatch.calendar.failed", "title", title, "error", err)
		return plan.Failure("could not create calendar event: " + err.Error())
	}
	if id == "" {
		return plan.Failure("could not create calendar event; check that a calendar account is configured")
	}
	return plan.Success("calendar event created: "+title, id)
}

func (d *Dispatcher) executeNavigate(ctx context.Context, p plan.ActionPlan) plan.ExecutionResult {
	location := p.Slot(constants.SlotLocation)
	if location == "" {
		return plan.Failure("no destination found")
	}

	started, err := d.nav.StartNavigation(ctx, location)
	if err != nil {
		d.logger.Error("dispatch.navigate.failed", "location", location, "error", err)
		return plan.Failure("could not start navigation: " + err.Error())
	}
	if !started {
		return plan.Failure("could not start navigation")
	}
	return plan.Success("navigation started to: "+location, nil)
}

func (d *Dispatcher) executeAddTodo(ctx context.Context, p plan.ActionPlan) plan.ExecutionResult {
	title := p.SlotOr(constants.SlotTitle, "todo")
	content := p.Slot(constants.SlotContent)

	created, err := d.todo.CreateTodo(ctx, title, content)
	if err != nil {
		d.logger.Error("dispatch.todo.failed", "title", title, "error", err)
		return plan.Failure("could not create todo: " + err.Error())
	}
	if !created {
		return plan.Failure("could not create todo")
	}
	return plan.Success("todo created: "+title, nil)
}

func (d *Dispatcher) executeCopyText(p plan.ActionPlan) plan.ExecutionResult {
	text := p.Slot(constants.SlotContent)
	if text == "" {
		text = p.OriginalText
	}
	if text == "" {
		return plan.Failure("no text to copy")
	}

	if err := d.clipboard.WriteClipboard(text); err != nil {
		d.logger.Error("dispatch.copy.failed", "error", err)
		return plan.Failure("could not copy text: " + err.Error())
	}
	return plan.Success("text copied to clipboard", nil)
}

// parseEventTime parses the ISO-8601 "time" slot. The second ok return is
// false when the slot is absent or unparsable.
func parseEventTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
