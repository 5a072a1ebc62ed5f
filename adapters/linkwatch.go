package adapters

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"mqtt-node-agent/application"

	"github.com/rs/zerolog"
)

const (
	LinkWatcherDefaultPollInterval = 2 * time.Second
	LinkWatcherDefaultMaxInterval  = 30 * time.Second
	LinkWatcherDefaultMultiplier   = 2.0
)

type LinkWatcherParams struct {
	// Interface is the network interface carrying the wireless association,
	// e.g. "wlan0".
	Interface string

	Events application.EventSink

	// PollInterval is the probe period while the link is up or freshly lost.
	// While the link stays down the period grows by Multiplier up to
	// MaxInterval, so a long outage is not probed at full rate.
	PollInterval time.Duration
	MaxInterval  time.Duration
	Multiplier   float64

	ProbeFunc func(iface string) (bool, error)

	Log zerolog.Logger
}

func (p *LinkWatcherParams) EnsureDefaults() {
	if p.PollInterval == 0 {
		p.PollInterval = LinkWatcherDefaultPollInterval
	}

	if p.MaxInterval == 0 {
		p.MaxInterval = LinkWatcherDefaultMaxInterval
	}

	if p.Multiplier == 0 {
		p.Multiplier = LinkWatcherDefaultMultiplier
	}

	if p.ProbeFunc == nil {
		p.ProbeFunc = probeInterface
	}
}

// LinkWatcher is the radio driver for a Linux host, where the association
// itself belongs to the OS supplicant. It observes the configured interface
// and reports address acquisition and loss as radio events. Connect and
// Disconnect arm and disarm the watch; reconnect pacing lives here, not in
// the supervisor.
type LinkWatcher struct {
	params LinkWatcherParams

	armed atomic.Bool

	log zerolog.Logger
}

func NewLinkWatcher(params LinkWatcherParams) (*LinkWatcher, error) {
	if params.Interface == "" {
		return nil, fmt.Errorf("Interface is empty")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("Events is nil")
	}
	params.EnsureDefaults()

	return &LinkWatcher{params: params, log: params.Log}, nil
}

// Configure records the target network. The credentials are handed to the OS
// supplicant's configuration out of band; an empty SSID means the node has
// nothing to associate with and cannot start.
func (w *LinkWatcher) Configure(ssid, passphrase string) error {
	if ssid == "" {
		return fmt.Errorf("ssid is empty")
	}
	w.log.Info().Str("ssid", ssid).Str("interface", w.params.Interface).Msg("configured")
	return nil
}

func (w *LinkWatcher) Connect() error {
	w.armed.Store(true)
	return nil
}

func (w *LinkWatcher) Disconnect() error {
	w.armed.Store(false)
	return nil
}

// Run emits RadioStationStarted once, then probes the interface until ctx is
// cancelled, emitting RadioGotAddress and RadioDisconnected on transitions.
func (w *LinkWatcher) Run(ctx context.Context) error {
	w.params.Events.Emit(application.RadioEvent{Kind: application.RadioStationStarted})

	delay := w.params.PollInterval
	up := false

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		if !w.armed.Load() {
			up = false
			delay = w.params.PollInterval
			timer.Reset(delay)
			continue
		}

		ok, err := w.params.ProbeFunc(w.params.Interface)
		if err != nil {
			w.log.Debug().Err(err).Msg("probe failed")
			ok = false
		}

		switch {
		case ok && !up:
			up = true
			delay = w.params.PollInterval
			w.log.Info().Str("interface", w.params.Interface).Msg("address acquired")
			w.params.Events.Emit(application.RadioEvent{Kind: application.RadioGotAddress})
		case !ok && up:
			up = false
			w.log.Info().Str("interface", w.params.Interface).Msg("address lost")
			w.params.Events.Emit(application.RadioEvent{Kind: application.RadioDisconnected})
		case !ok:
			delay = time.Duration(float64(delay) * w.params.Multiplier)
			if delay > w.params.MaxInterval {
				delay = w.params.MaxInterval
			}
		}

		timer.Reset(delay)
	}
}

// probeInterface reports whether iface is up and holds a global unicast
// address.
func probeInterface(iface string) (bool, error) {
	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return false, err
	}

	if ifi.Flags&net.FlagUp == 0 {
		return false, nil
	}

	addrs, err := ifi.Addrs()
	if err != nil {
		return false, err
	}

	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ipnet.IP.IsGlobalUnicast() {
			return true, nil
		}
	}
	return false, nil
}

var _ application.Radio = &LinkWatcher{}
