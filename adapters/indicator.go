package adapters

import (
	"fmt"

	"mqtt-node-agent/application"

	"github.com/rs/zerolog"
	gpiod "github.com/warthog618/go-gpiocdev"
)

type GPIOIndicatorParams struct {
	// Chip is the GPIO character device, e.g. "gpiochip0".
	Chip string
	Line int

	// Inverted drives the line active-low, for an LED wired between the pin
	// and the supply rail.
	Inverted bool

	Log zerolog.Logger
}

// GPIOIndicator drives a single output line as the connection indicator.
type GPIOIndicator struct {
	params GPIOIndicatorParams

	line *gpiod.Line

	log zerolog.Logger
}

func NewGPIOIndicator(params GPIOIndicatorParams) (*GPIOIndicator, error) {
	if params.Chip == "" {
		return nil, fmt.Errorf("Chip is empty")
	}

	line, err := gpiod.RequestLine(params.Chip, params.Line, gpiod.AsOutput(level(false, params.Inverted)))
	if err != nil {
		return nil, fmt.Errorf("request line %s:%d: %w", params.Chip, params.Line, err)
	}

	return &GPIOIndicator{params: params, line: line, log: params.Log}, nil
}

func (g *GPIOIndicator) SetLevel(on bool) {
	if err := g.line.SetValue(level(on, g.params.Inverted)); err != nil {
		g.log.Warn().Err(err).Msg("set level failed")
	}
}

func (g *GPIOIndicator) Close() error {
	return g.line.Close()
}

func level(on, inverted bool) int {
	if on != inverted {
		return 1
	}
	return 0
}

var _ application.Indicator = &GPIOIndicator{}

// LogIndicator reports connection state through the log only. It stands in
// for the LED when no GPIO chip is configured.
type LogIndicator struct {
	Log zerolog.Logger
}

func (l *LogIndicator) SetLevel(on bool) {
	l.Log.Info().Bool("connected", on).Msg("indicator")
}

var _ application.Indicator = &LogIndicator{}
