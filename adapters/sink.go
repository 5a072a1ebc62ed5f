package adapters

import (
	"mqtt-node-agent/application"

	"github.com/rs/zerolog"
)

// LogMessageSink writes every inbound message to the log, payload unmodified.
type LogMessageSink struct {
	Log zerolog.Logger
}

func (l *LogMessageSink) Report(topic string, payload []byte, n int) {
	l.Log.Info().Str("topic", topic).Bytes("payload", payload).Int("len", n).Msg("incoming")
}

var _ application.MessageSink = &LogMessageSink{}
