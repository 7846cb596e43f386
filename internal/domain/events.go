package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNavigationChanged     EventType = "NavigationChanged"
	EventSelectionChanged      EventType = "SelectionChanged"
	EventSelectionClearRequest EventType = "SelectionClearRequested"
	EventClipboardChanged      EventType = "ClipboardChanged"
	EventTransferCompleted     EventType = "TransferCompleted"
	EventToast                 EventType = "Toast"
	EventError                 EventType = "Error"
	EventConfigLoaded          EventType = "ConfigLoaded"
	EventConfigSaved           EventType = "ConfigSaved"
	EventConfigChanged         EventType = "ConfigChanged"
	EventIndexStatusChanged    EventType = "IndexStatusChanged"
	EventUploadProgress        EventType = "UploadProgress"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// NavigationChangedEvent is emitted whenever the navigation store moves to a
// new location (path change, history traversal, or entering/leaving search).
type NavigationChangedEvent struct {
	Path        string
	Offset      int
	IsSearching bool
	Query       string
}

func (e NavigationChangedEvent) Type() EventType { return EventNavigationChanged }

// SelectionChangedEvent is emitted when the multi-selection changes.
type SelectionChangedEvent struct {
	Total int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearRequestedEvent asks the owner of the navigation store to
// clear the selection. Emitted by code running off the UI goroutine (the
// transfer resolver), which must not mutate the store directly.
type SelectionClearRequestedEvent struct{}

func (e SelectionClearRequestedEvent) Type() EventType { return EventSelectionClearRequest }

// ClipboardChangedEvent is emitted when the copy/cut clipboard is replaced
// or cleared.
type ClipboardChangedEvent struct {
	Files     []string
	Operation ClipboardOp
}

func (e ClipboardChangedEvent) Type() EventType { return EventClipboardChanged }

// TransferCompletedEvent is emitted after a move/copy batch finishes.
type TransferCompletedEvent struct {
	Operation string // "move" or "copy"
	Performed int
	Skipped   int
	Failed    int
	Total     int
}

func (e TransferCompletedEvent) Type() EventType { return EventTransferCompleted }

// ToastEvent carries a transient user-facing notification.
type ToastEvent struct {
	Message string
	IsError bool
}

func (e ToastEvent) Type() EventType { return EventToast }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	ServerURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when UI preferences need to be persisted.
type ConfigChangedEvent struct {
	SidebarWidth int
	ViewMode     ViewMode
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// IndexStatusChangedEvent reports whether the server-side indexer is running.
type IndexStatusChangedEvent struct {
	Running bool
}

func (e IndexStatusChangedEvent) Type() EventType { return EventIndexStatusChanged }

// UploadProgressEvent reports bytes written for an in-flight upload.
type UploadProgressEvent struct {
	Name    string
	Written int64
	Total   int64
}

func (e UploadProgressEvent) Type() EventType { return EventUploadProgress }
