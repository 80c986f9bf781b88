package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventDispatch  EventType = "dispatch"
	EventOutcome   EventType = "outcome"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted when the driver reaches an action.
type StepEvent struct {
	EventBase
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Method string `json:"method"`
}

// CommandEvent describes a dispatched command and, once known, its outcome.
type CommandEvent struct {
	EventBase
	Index    int           `json:"index"`
	Method   string        `json:"method"`
	Command  string        `json:"command"`
	Outcome  Outcome       `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for driver observability.
type LifecycleHooks struct {
	OnStep     func(context.Context, *StepEvent)
	OnDispatch func(context.Context, *CommandEvent)
	OnOutcome  func(context.Context, *CommandEvent)
}

// ChainHooks calls every set callback of each hooks value, in order.
func ChainHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			for _, h := range all {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnDispatch: func(ctx context.Context, e *CommandEvent) {
			for _, h := range all {
				if h.OnDispatch != nil {
					h.OnDispatch(ctx, e)
				}
			}
		},
		OnOutcome: func(ctx context.Context, e *CommandEvent) {
			for _, h := range all {
				if h.OnOutcome != nil {
					h.OnOutcome(ctx, e)
				}
			}
		},
	}
}
