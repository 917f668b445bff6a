package voice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types recorded by the assistant.
const (
	EventSystem               = "system"
	EventStatus               = "status"
	EventTranscriptionPartial = "transcription_partial"
	EventTranscriptionFinal   = "transcription_final"
	EventCommand              = "command"
)

// Event is a single entry in the assistant's activity feed.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// NotifyFunc receives every appended event. It must not block; slow
// consumers should buffer internally.
type NotifyFunc func(Event)

// EventLog is a fixed-capacity ring of recent events. When full, the
// oldest entries are discarded. All methods are thread-safe.
type EventLog struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	notify   NotifyFunc
}

// DefaultEventCapacity is the number of events retained by default.
const DefaultEventCapacity = 100

// NewEventLog creates an event log holding up to capacity entries.
// A capacity below one falls back to DefaultEventCapacity.
func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = DefaultEventCapacity
	}
	return &EventLog{capacity: capacity}
}

// SetNotify installs a hook called with every appended event. Pass nil
// to remove it.
func (el *EventLog) SetNotify(fn NotifyFunc) {
	el.mu.Lock()
	el.notify = fn
	el.mu.Unlock()
}

// Append records an event, evicting the oldest entries beyond capacity,
// and returns the stored event with its generated ID and timestamp.
func (el *EventLog) Append(eventType, message string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	el.mu.Lock()
	el.events = append(el.events, event)
	if excess := len(el.events) - el.capacity; excess > 0 {
		el.events = append([]Event(nil), el.events[excess:]...)
	}
	notify := el.notify
	el.mu.Unlock()

	if notify != nil {
		notify(event)
	}
	return event
}

// Recent returns up to limit events, oldest first, optionally filtered
// by type. A limit of zero or less returns all retained events.
func (el *EventLog) Recent(limit int, eventType string) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	filtered := el.events
	if eventType != "" {
		filtered = nil
		for _, e := range el.events {
			if e.Type == eventType {
				filtered = append(filtered, e)
			}
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return append([]Event(nil), filtered...)
}

// Clear discards all retained events.
func (el *EventLog) Clear() {
	el.mu.Lock()
	el.events = nil
	el.mu.Unlock()
}

// Len returns the number of retained events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}
