package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

type linkState int

const (
	linkDown linkState = iota
	linkConnecting
	linkUp
)

type sessionState int

const (
	sessionDown sessionState = iota
	sessionUp
)

const DefaultQueueSize = 64

// Config is the agent's immutable configuration, read once at startup.
type Config struct {
	SSID       string
	Passphrase string

	BrokerHost string
	BrokerPort int
	ClientID   string
	Username   string
	Password   string

	PublishTopic    string
	SubscribeTopic  string
	PublishPayload  []byte
	PublishInterval time.Duration
}

type SupervisorParams struct {
	Radio     Radio
	Session   SessionClient
	Indicator Indicator
	Sink      MessageSink

	Events *Bus

	Config Config

	Log zerolog.Logger
}

func (p *SupervisorParams) EnsureDefaults() {
	if p.Config.PublishInterval == 0 {
		p.Config.PublishInterval = time.Second
	}
}

// Supervisor owns the connection lifecycle: the wireless association, the
// messaging session layered on it, and the publisher activity and indicator
// that follow the session. All driver events funnel through a single ordered
// queue and are handled one at a time, so state needs no locking.
type Supervisor struct {
	params SupervisorParams

	link    linkState
	session sessionState
	worker  *workerHandle

	workers *conc.WaitGroup

	log zerolog.Logger
}

func NewSupervisor(params SupervisorParams) (*Supervisor, error) {
	if params.Radio == nil {
		return nil, fmt.Errorf("Radio is nil")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("Session is nil")
	}
	if params.Indicator == nil {
		return nil, fmt.Errorf("Indicator is nil")
	}
	if params.Sink == nil {
		return nil, fmt.Errorf("Sink is nil")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("Events is nil")
	}
	params.EnsureDefaults()

	return &Supervisor{
		params:  params,
		workers: conc.NewWaitGroup(),
		log:     params.Log,
	}, nil
}

// Run consumes the event queue until ctx is cancelled. A worker panic or a
// failed radio command terminates the loop with an error.
func (s *Supervisor) Run(ctx context.Context) error {
	defer s.workers.Wait()
	defer s.releaseWorker()

	s.log.Info().Msg("dispatch loop started")
	defer s.log.Info().Msg("dispatch loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-s.params.Events.Events():
			if err := s.handle(e); err != nil {
				return err
			}
		}
	}
}

func (s *Supervisor) handle(e Event) error {
	switch ev := e.(type) {
	case RadioEvent:
		return s.handleRadio(ev)
	case SessionEvent:
		s.handleSession(ev)
	case InboundMessage:
		s.params.Sink.Report(ev.Topic, ev.Payload, len(ev.Payload))
	default:
		s.log.Warn().Msgf("unhandled event type: %T", e)
	}
	return nil
}

func (s *Supervisor) handleRadio(ev RadioEvent) error {
	switch ev.Kind {
	case RadioStationStarted:
		// Reset any prior association before configuring. Safe on cold start
		// and clears partial state after a restart.
		if err := s.params.Radio.Disconnect(); err != nil {
			return fmt.Errorf("radio disconnect: %w", err)
		}
		if err := s.params.Radio.Configure(s.params.Config.SSID, s.params.Config.Passphrase); err != nil {
			return fmt.Errorf("radio configure: %w", err)
		}
		if err := s.params.Radio.Connect(); err != nil {
			return fmt.Errorf("radio connect: %w", err)
		}
		s.link = linkConnecting
		s.log.Info().Str("ssid", s.params.Config.SSID).Msg("associating")

	case RadioGotAddress:
		if s.link == linkUp {
			// Repeated address notification; the session start already ran.
			return nil
		}
		s.link = linkUp
		s.log.Info().Msg("link up")
		s.startSession()

	case RadioDisconnected:
		s.link = linkDown
		s.log.Info().Msg("link down")
		s.dropSession()
		// Immediate retry; reconnect pacing is the radio driver's concern.
		if err := s.params.Radio.Connect(); err != nil {
			return fmt.Errorf("radio connect: %w", err)
		}
	}
	return nil
}

func (s *Supervisor) handleSession(ev SessionEvent) {
	switch ev.Kind {
	case SessionConnected:
		if s.link != linkUp {
			panic("session connected while link is down")
		}
		s.session = sessionUp
		s.log.Info().Msg("session up")
		s.params.Indicator.SetLevel(true)
		if err := s.params.Session.Subscribe(s.params.Config.SubscribeTopic, 0); err != nil {
			s.log.Warn().Err(err).Str("topic", s.params.Config.SubscribeTopic).Msg("subscribe failed")
		}
		s.acquireWorker()

	case SessionDisconnected:
		if s.session != sessionUp {
			// Duplicate notification, or the link-down path already tore the
			// session down.
			return
		}
		s.session = sessionDown
		s.log.Info().Msg("session down")
		s.params.Indicator.SetLevel(false)
		s.releaseWorker()
	}
}

// startSession begins a session if none is up. Repeated link-up signals are
// absorbed by the edge-triggering in handleRadio, but the state check keeps
// this idempotent regardless.
func (s *Supervisor) startSession() {
	if s.session == sessionUp {
		return
	}
	cfg := s.params.Config
	s.log.Info().Str("host", cfg.BrokerHost).Int("port", cfg.BrokerPort).Msg("starting session")
	s.params.Session.Start(cfg.BrokerHost, cfg.BrokerPort, cfg.ClientID, cfg.Username, cfg.Password)
}

// dropSession tears the session down after link loss. The transport under it
// is gone, so the stop is best-effort and the state flips immediately rather
// than waiting for an acknowledgment that can no longer arrive. The stop is
// unconditional: a session still connecting must be discarded too, or its
// late connect completion would arrive with the link down.
func (s *Supervisor) dropSession() {
	s.params.Session.Stop()
	s.session = sessionDown
	s.releaseWorker()
	s.params.Indicator.SetLevel(false)
}

type workerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Supervisor) acquireWorker() {
	if s.worker != nil {
		panic("publisher already active")
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &workerHandle{cancel: cancel, done: make(chan struct{})}
	s.worker = h

	cfg := s.params.Config
	p := &publisher{
		session:  s.params.Session,
		topic:    cfg.PublishTopic,
		payload:  cfg.PublishPayload,
		interval: cfg.PublishInterval,
		log:      s.log.With().Str("module", "publisher").Logger(),
	}
	s.workers.Go(func() {
		defer close(h.done)
		p.run(ctx)
	})
}

// releaseWorker stops the running publisher. The cancellation is observed
// before the next tick, so no publish starts after release; an in-flight
// publish may still complete. Releasing when none is active is a no-op.
func (s *Supervisor) releaseWorker() {
	if s.worker == nil {
		return
	}
	s.worker.cancel()
	s.worker = nil
}
