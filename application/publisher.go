package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// publisher is the periodic publish activity. It holds no session state of
// its own: once started it publishes on every tick until its context is
// cancelled, and a failed publish is dropped rather than retried.
type publisher struct {
	session  SessionClient
	topic    string
	payload  []byte
	interval time.Duration

	log zerolog.Logger
}

func (p *publisher) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info().Str("topic", p.topic).Dur("interval", p.interval).Msg("start publishing")
	defer p.log.Info().Msg("stop publishing")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick may already be pending when the context is cancelled;
			// no publish may start once the handle is released.
			if ctx.Err() != nil {
				return
			}
			if err := p.session.Publish(p.topic, p.payload, 0, false); err != nil {
				p.log.Debug().Err(err).Msg("publish dropped")
			}
		}
	}
}
