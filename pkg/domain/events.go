package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepChange EventType = "step_change"
	EventDataChange EventType = "data_change"
	EventComplete   EventType = "complete"
	EventReset      EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents a move between wizard steps.
type StepEvent struct {
	EventBase
	From int `json:"from"`
	To   int `json:"to"`
}

// DataEvent represents a mutation of the answer record.
type DataEvent struct {
	EventBase
	Changed []Field `json:"changed"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnStepChange func(context.Context, *StepEvent)
	OnDataChange func(context.Context, *DataEvent)
	OnComplete   func(context.Context, *EventBase)
	OnReset      func(context.Context, *EventBase)
}
