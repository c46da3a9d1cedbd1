// Package events provides the event system that decouples the analysis
// session from its presentation layers.
package events

import (
	"strconv"
	"sync"
	"time"

	"github.com/SuryaShavi/ChatBotOrigin/pkg/types"
)

// UIEvent represents a session lifecycle event forwarded to UI subscribers
type UIEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Common event types
const (
	EventTypeAnalysisStarted   = "analysis_started"
	EventTypeAnalysisCompleted = "analysis_completed"
	EventTypeAnalysisFailed    = "analysis_failed"
	EventTypeAnalysisDiscarded = "analysis_discarded"
	EventTypeSessionReset      = "session_reset"
	EventTypeHistoryRecorded   = "history_recorded"
)

// EventBus manages event distribution between the session controller and
// any number of UI subscribers
type EventBus struct {
	subscribers map[string]chan UIEvent
	mutex       sync.RWMutex
	nextID      int64
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]chan UIEvent),
	}
}

// Subscribe adds a new subscriber to the event bus
func (eb *EventBus) Subscribe(name string) <-chan UIEvent {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	ch := make(chan UIEvent, 100) // Buffered channel
	eb.subscribers[name] = ch
	return ch
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(name string) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	if ch, exists := eb.subscribers[name]; exists {
		delete(eb.subscribers, name)
		close(ch)
	}
}

// Publish broadcasts an event to all subscribers
func (eb *EventBus) Publish(eventType string, data any) {
	eb.mutex.Lock()
	eb.nextID++
	event := UIEvent{
		ID:        generateEventID(eb.nextID),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
	subscribers := make([]chan UIEvent, 0, len(eb.subscribers))
	for _, ch := range eb.subscribers {
		subscribers = append(subscribers, ch)
	}
	eb.mutex.Unlock()

	// Publish to all subscribers without holding the lock
	for _, ch := range subscribers {
		select {
		case ch <- event:
		default:
			// Channel is full, skip this subscriber
			// This prevents blocking if a subscriber is slow
		}
	}
}

// generateEventID creates a unique event ID
func generateEventID(id int64) string {
	return time.Now().Format("20060102-150405") + "-" + strconv.FormatInt(id, 10)
}

// Helper functions for creating specific event types

// AnalysisStartedEvent creates an analysis started event
func AnalysisStartedEvent(language types.Language, codeLength int, generation uint64) map[string]interface{} {
	return map[string]interface{}{
		"language":    string(language),
		"code_length": codeLength,
		"generation":  generation,
	}
}

// AnalysisCompletedEvent creates an analysis completed event
func AnalysisCompletedEvent(result types.AnalysisResult, duration time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"verdict":     string(result.Verdict),
		"confidence":  result.Confidence,
		"model":       result.Model,
		"duration_ms": duration.Milliseconds(),
	}
}

// AnalysisFailedEvent creates an analysis failed event
func AnalysisFailedEvent(message string, err error) map[string]interface{} {
	data := map[string]interface{}{
		"message": message,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	return data
}

// AnalysisDiscardedEvent creates an event for a stale response that arrived
// after the session had moved on
func AnalysisDiscardedEvent(generation, current uint64) map[string]interface{} {
	return map[string]interface{}{
		"generation": generation,
		"current":    current,
	}
}

// HistoryRecordedEvent creates a history recorded event
func HistoryRecordedEvent(entryID int64, success bool) map[string]interface{} {
	return map[string]interface{}{
		"entry_id": entryID,
		"success":  success,
	}
}
