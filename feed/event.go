package feed

import "fmt"

// Event is a Server-Sent Event delivered to feed subscribers.
type Event struct {
	// Name is the SSE event type ("message" for new feed entries).
	Name string
	// Data is the payload, typically a JSON-encoded message.
	Data string
}

// Format renders the event in the text/event-stream wire format.
func (e Event) Format() string {
	if e.Name == "" {
		return fmt.Sprintf("data: %s\n\n", e.Data)
	}
	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Name, e.Data)
}
