package application

// RadioEventKind enumerates the link-layer notifications emitted by the
// radio driver.
type RadioEventKind int

const (
	// RadioStationStarted is delivered once the radio is initialized and
	// ready to associate.
	RadioStationStarted RadioEventKind = iota

	// RadioGotAddress is delivered when the node holds a usable address on
	// the wireless network.
	RadioGotAddress

	// RadioDisconnected is delivered when the association is lost, from any
	// prior state.
	RadioDisconnected
)

// SessionEventKind enumerates the lifecycle notifications emitted by the
// session client.
type SessionEventKind int

const (
	SessionConnected SessionEventKind = iota
	SessionDisconnected
)

// Event is a single entry on the supervisor's dispatch queue.
type Event interface {
	isEvent()
}

type RadioEvent struct {
	Kind RadioEventKind
}

type SessionEvent struct {
	Kind SessionEventKind
}

// InboundMessage carries a message received on a subscribed topic. The
// payload is passed through the core untouched.
type InboundMessage struct {
	Topic   string
	Payload []byte
}

func (RadioEvent) isEvent()     {}
func (SessionEvent) isEvent()   {}
func (InboundMessage) isEvent() {}

// EventSink is the producer side of the dispatch queue. Drivers push their
// notifications through it from any goroutine.
type EventSink interface {
	Emit(e Event)
}

// Bus is the ordered event queue shared by the drivers and the supervisor.
// Events are dispatched in arrival order, one at a time.
type Bus struct {
	ch chan Event
}

func NewBus(size int) *Bus {
	return &Bus{ch: make(chan Event, size)}
}

// Emit queues an event without blocking. A full queue means the dispatch
// loop is no longer draining; the event is dropped so producers cannot wedge
// shutdown.
func (b *Bus) Emit(e Event) {
	select {
	case b.ch <- e:
	default:
	}
}

func (b *Bus) Events() <-chan Event {
	return b.ch
}

var _ EventSink = &Bus{}
