package desktop

import "uberdrive/internal/asset"

type EventType int

const (
	EventAssetLoaded EventType = iota
	EventAssetFailed
	EventResize
)

type Event struct {
	Type EventType

	Model *asset.Model // EventAssetLoaded
	Err   error        // EventAssetFailed

	Width, Height int // EventResize, framebuffer pixels
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// resultEvent turns a finished import into the event it announces.
func resultEvent(res asset.Result) Event {
	if res.Err != nil {
		return Event{Type: EventAssetFailed, Err: res.Err}
	}
	return Event{Type: EventAssetLoaded, Model: res.Model}
}
