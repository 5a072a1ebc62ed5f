package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mqtt-node-agent/adapters"
	"mqtt-node-agent/application"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var Flags = []cli.Flag{
	FlagLogLevel,
	FlagLogWriter,
	FlagWifiSSID,
	FlagWifiPassphrase,
	FlagNetInterface,
	FlagMQTTHost,
	FlagMQTTPort,
	FlagMQTTClientID,
	FlagMQTTUsername,
	FlagMQTTPassword,
	FlagPublishTopic,
	FlagSubscribeTopic,
	FlagPublishPayload,
	FlagPublishInterval,
	FlagLEDChip,
	FlagLEDLine,
	FlagLEDInverted,
}

func main() {
	var logger zerolog.Logger

	app := cli.App{
		Name:    "mqtt-node-agent",
		Version: "v0.0.1",
		Flags:   Flags,
		Before: func(ctx *cli.Context) error {
			var logWriter io.Writer
			if ctx.String(FlagLogWriter.Name) == "console" {
				logWriter = zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: time.RFC3339Nano,
				}
			} else if ctx.String(FlagLogWriter.Name) == "json" {
				logWriter = os.Stderr
			}

			logger = zerolog.New(logWriter).With().Timestamp().
				Str("service", "mqtt-node-agent").
				Str("module", "main").
				Logger()

			level, err := zerolog.ParseLevel(ctx.String(FlagLogLevel.Name))
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(level)

			return nil
		},
		Action: func(ctx *cli.Context) error {
			logger.Info().Msg("agent starting...")

			appCtx, cancel := context.WithCancel(logger.WithContext(context.Background()))
			go func() {
				c := make(chan os.Signal, 1)
				signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

				<-c

				logger.Warn().Msg("interrupt signal received")
				cancel()
			}()

			cfg := application.Config{
				SSID:       ctx.String(FlagWifiSSID.Name),
				Passphrase: ctx.String(FlagWifiPassphrase.Name),

				BrokerHost: ctx.String(FlagMQTTHost.Name),
				BrokerPort: ctx.Int(FlagMQTTPort.Name),
				ClientID:   ctx.String(FlagMQTTClientID.Name),
				Username:   ctx.String(FlagMQTTUsername.Name),
				Password:   ctx.String(FlagMQTTPassword.Name),

				PublishTopic:    ctx.String(FlagPublishTopic.Name),
				SubscribeTopic:  ctx.String(FlagSubscribeTopic.Name),
				PublishPayload:  []byte(ctx.String(FlagPublishPayload.Name)),
				PublishInterval: ctx.Duration(FlagPublishInterval.Name),
			}

			bus := application.NewBus(application.DefaultQueueSize)

			var indicator application.Indicator
			if chip := ctx.String(FlagLEDChip.Name); chip != "" {
				gpioIndicator, err := adapters.NewGPIOIndicator(adapters.GPIOIndicatorParams{
					Chip:     chip,
					Line:     ctx.Int(FlagLEDLine.Name),
					Inverted: ctx.Bool(FlagLEDInverted.Name),
					Log:      logger.With().Str("module", "indicator").Logger(),
				})
				if err != nil {
					return err
				}
				defer gpioIndicator.Close()
				indicator = gpioIndicator
			} else {
				indicator = &adapters.LogIndicator{
					Log: logger.With().Str("module", "indicator").Logger(),
				}
			}

			linkWatcher, err := adapters.NewLinkWatcher(adapters.LinkWatcherParams{
				Interface: ctx.String(FlagNetInterface.Name),
				Events:    bus,
				Log:       logger.With().Str("module", "link-watcher").Logger(),
			})
			if err != nil {
				return err
			}

			session, err := adapters.NewMQTTSession(adapters.MQTTSessionParams{
				Events: bus,
				Log:    logger.With().Str("module", "mqtt-session").Logger(),
			})
			if err != nil {
				return err
			}

			supervisor, err := application.NewSupervisor(application.SupervisorParams{
				Radio:     linkWatcher,
				Session:   session,
				Indicator: indicator,
				Sink: &adapters.LogMessageSink{
					Log: logger.With().Str("module", "messages").Logger(),
				},
				Events: bus,
				Config: cfg,
				Log:    logger.With().Str("module", "supervisor").Logger(),
			})
			if err != nil {
				return err
			}

			logger.Info().Msg("agent started")

			g, runCtx := errgroup.WithContext(appCtx)
			g.Go(func() error {
				return supervisor.Run(runCtx)
			})
			g.Go(func() error {
				return linkWatcher.Run(runCtx)
			})
			err = g.Wait()
			if err != nil {
				return err
			}

			logger.Info().Msg("agent terminating...")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Err(err).Msg("agent terminated")
	}
}
