package adapters

import (
	"fmt"
	"sync"
	"time"

	"mqtt-node-agent/application"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	MQTTDefaultConnectTimeout = 30 * time.Second
	MQTTDefaultPublishTimeout = 5 * time.Second
	MQTTDefaultStopQuiesceMs  = 250
)

var (
	ErrMQTTNotStarted     = fmt.Errorf("session not started")
	ErrMQTTPublishTimeout = fmt.Errorf("publish timeout")
)

type MQTTSessionParams struct {
	Events application.EventSink

	ConnectTimeout time.Duration
	PublishTimeout time.Duration
	StopQuiesceMs  uint

	NewClientFunc func(options *mqtt.ClientOptions) mqtt.Client

	Log zerolog.Logger
}

func (m *MQTTSessionParams) EnsureDefaults() {
	if m.ConnectTimeout == 0 {
		m.ConnectTimeout = MQTTDefaultConnectTimeout
	}

	if m.PublishTimeout == 0 {
		m.PublishTimeout = MQTTDefaultPublishTimeout
	}

	if m.StopQuiesceMs == 0 {
		m.StopQuiesceMs = MQTTDefaultStopQuiesceMs
	}

	if m.NewClientFunc == nil {
		m.NewClientFunc = mqtt.NewClient
	}
}

// MQTTSession drives a paho client under the supervisor's lifecycle.
// Auto-reconnect and connect retry are disabled: the supervisor decides when
// a session may exist, the client only reports outcomes through the event
// sink.
type MQTTSession struct {
	params MQTTSessionParams

	mu     sync.Mutex
	client mqtt.Client

	log zerolog.Logger
}

func NewMQTTSession(params MQTTSessionParams) (*MQTTSession, error) {
	if params.Events == nil {
		return nil, fmt.Errorf("Events is nil")
	}
	params.EnsureDefaults()

	return &MQTTSession{params: params, log: params.Log}, nil
}

// Start builds a fresh client and begins connecting. It never blocks: a
// successful connect surfaces as a SessionConnected event, a failed one is
// logged and the next link cycle retries.
func (m *MQTTSession) Start(host string, port int, clientID, username, password string) {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", host, port))
	opts.SetClientID(clientID)
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)

	opts.OnConnect = m.onConnect
	opts.OnConnectionLost = m.onConnectionLost

	client := m.params.NewClientFunc(opts)

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	m.log.Info().Str("host", host).Int("port", port).Msg("connecting")

	token := client.Connect()
	go func() {
		if !token.WaitTimeout(m.params.ConnectTimeout) {
			m.log.Warn().Msg("connect timeout")
			return
		}
		if err := token.Error(); err != nil {
			m.log.Warn().Err(err).Msg("connect failed")
		}
	}()
}

// Stop disconnects the current client, if any. Best effort: the link under
// the session may already be gone, so the disconnect handshake runs off the
// caller's goroutine and is not waited on.
func (m *MQTTSession) Stop() {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()

	if client == nil {
		return
	}

	m.log.Info().Msg("disconnecting")
	go client.Disconnect(m.params.StopQuiesceMs)
}

// Subscribe routes messages on topic into the event sink. The broker's
// acknowledgment is awaited off the caller's goroutine.
func (m *MQTTSession) Subscribe(topic string, qos byte) error {
	client := m.current()
	if client == nil {
		return ErrMQTTNotStarted
	}

	token := client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		m.params.Events.Emit(application.InboundMessage{Topic: msg.Topic(), Payload: msg.Payload()})
	})
	go func() {
		if token.Wait() && token.Error() != nil {
			m.log.Warn().Err(token.Error()).Str("topic", topic).Msg("subscribe failed")
		}
	}()
	return nil
}

func (m *MQTTSession) Publish(topic string, payload []byte, qos byte, retained bool) error {
	client := m.current()
	if client == nil {
		return ErrMQTTNotStarted
	}

	tc := time.NewTimer(m.params.PublishTimeout)
	defer tc.Stop()

	token := client.Publish(topic, qos, retained, payload)
	select {
	case <-tc.C:
		return ErrMQTTPublishTimeout
	case <-token.Done():
		return token.Error()
	}
}

func (m *MQTTSession) current() mqtt.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

func (m *MQTTSession) onConnect(client mqtt.Client) {
	m.log.Info().Msg("connected")
	m.params.Events.Emit(application.SessionEvent{Kind: application.SessionConnected})
}

func (m *MQTTSession) onConnectionLost(client mqtt.Client, err error) {
	m.log.Info().Msgf("connection lost: %v", err)
	m.params.Events.Emit(application.SessionEvent{Kind: application.SessionDisconnected})
}

var _ application.SessionClient = &MQTTSession{}
