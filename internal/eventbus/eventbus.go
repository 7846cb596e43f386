package eventbus

import (
	"filedeck/internal/domain"
	"log"
	"runtime/debug"
	"sync"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventNavigationChanged     = domain.EventNavigationChanged
	EventSelectionChanged      = domain.EventSelectionChanged
	EventSelectionClearRequest = domain.EventSelectionClearRequest
	EventClipboardChanged      = domain.EventClipboardChanged
	EventTransferCompleted     = domain.EventTransferCompleted
	EventToast                 = domain.EventToast
	EventError                 = domain.EventError
	EventConfigLoaded          = domain.EventConfigLoaded
	EventConfigSaved           = domain.EventConfigSaved
	EventConfigChanged         = domain.EventConfigChanged
	EventIndexStatusChanged    = domain.EventIndexStatusChanged
	EventUploadProgress        = domain.EventUploadProgress
)

// Re-export domain event types
type NavigationChangedEvent = domain.NavigationChangedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type SelectionClearRequestedEvent = domain.SelectionClearRequestedEvent
type ClipboardChangedEvent = domain.ClipboardChangedEvent
type TransferCompletedEvent = domain.TransferCompletedEvent
type ToastEvent = domain.ToastEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type IndexStatusChangedEvent = domain.IndexStatusChangedEvent
type UploadProgressEvent = domain.UploadProgressEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// registration wraps a subscribed handler so unsubscription can identify it
// by pointer; function values themselves are not comparable.
type registration struct {
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]*registration
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]*registration),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventSelectionChanged, EventNavigationChanged, EventUploadProgress:
		// Too frequent to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	reg := &registration{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], reg)

	// Return unsubscribe function
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		regs := b.handlers[eventType]
		for i, r := range regs {
			if r == reg {
				b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Get handlers for this event type
			b.mu.RLock()
			regs := b.handlers[event.Type()]
			// Make a copy to avoid holding lock during handler execution
			handlersCopy := make([]EventHandler, len(regs))
			for i, r := range regs {
				handlersCopy[i] = r.handler
			}
			b.mu.RUnlock()

			// Call each handler
			for _, handler := range handlersCopy {
				// Call handler in a goroutine to avoid blocking
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}
