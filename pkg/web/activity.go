package web

import (
	"sync"
	"time"
)

// Event is one message crossing the web front-end, kept for the activity
// endpoint. Message text is truncated before it gets here.
type Event struct {
	Time      int64  `json:"time"`
	Direction string `json:"direction"`
	Identity  string `json:"identity"`
	Content   string `json:"content"`
}

// ActivityBuffer stores a ring buffer of recent events.
type ActivityBuffer struct {
	mu     sync.RWMutex
	events []Event
	size   int
}

// NewActivityBuffer creates a new ring buffer for activity.
func NewActivityBuffer(size int) *ActivityBuffer {
	return &ActivityBuffer{
		events: make([]Event, 0, size),
		size:   size,
	}
}

// Record adds an event, evicting the oldest when full.
func (ab *ActivityBuffer) Record(direction, identity, content string) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if len(ab.events) >= ab.size {
		ab.events = ab.events[1:]
	}
	ab.events = append(ab.events, Event{
		Time:      time.Now().UnixMilli(),
		Direction: direction,
		Identity:  identity,
		Content:   truncate(content, 80),
	})
}

// Events returns a copy of the recorded events.
func (ab *ActivityBuffer) Events() []Event {
	ab.mu.RLock()
	defer ab.mu.RUnlock()

	res := make([]Event, len(ab.events))
	copy(res, ab.events)
	return res
}

func truncate(s string, at int) string {
	runes := []rune(s)
	if len(runes) <= at {
		return s
	}
	return string(runes[:at]) + "..."
}
