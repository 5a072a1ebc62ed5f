package application

// Radio is the wireless driver consumed by the supervisor. Commands are
// fire-and-forget at the protocol level; their outcomes arrive later as
// RadioEvents. A non-nil error is an initialization-class failure and aborts
// the supervisor.
type Radio interface {
	Configure(ssid, passphrase string) error
	Connect() error
	Disconnect() error
}

// SessionClient is the messaging driver consumed by the supervisor. Start
// and Stop never block; connection outcomes arrive as SessionEvents.
type SessionClient interface {
	Start(host string, port int, clientID, username, password string)
	Stop()
	Subscribe(topic string, qos byte) error
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Indicator is the physical connection indicator.
type Indicator interface {
	SetLevel(on bool)
}

// MessageSink receives every inbound message exactly as it arrived.
type MessageSink interface {
	Report(topic string, payload []byte, n int)
}
