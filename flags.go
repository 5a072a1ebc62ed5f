package main

import (
	"time"

	"github.com/urfave/cli/v2"
)

var FlagLogLevel = &cli.StringFlag{
	Name:     "log-level",
	EnvVars:  []string{"LOG_LEVEL"},
	Value:    "info",
	Required: false,
}

var FlagLogWriter = &cli.StringFlag{
	Name:     "log-writer",
	EnvVars:  []string{"LOG_WRITER"},
	Value:    "console",
	Required: false,
}

var FlagWifiSSID = &cli.StringFlag{
	Name:     "wifi-ssid",
	Usage:    "wireless network name",
	EnvVars:  []string{"WIFI_SSID"},
	Required: true,
}

var FlagWifiPassphrase = &cli.StringFlag{
	Name:     "wifi-passphrase",
	Usage:    "wireless network passphrase",
	EnvVars:  []string{"WIFI_PASS"},
	Required: true,
}

var FlagNetInterface = &cli.StringFlag{
	Name:     "net-interface",
	Usage:    "interface carrying the wireless association",
	EnvVars:  []string{"NET_INTERFACE"},
	Value:    "wlan0",
	Required: false,
}

var FlagMQTTHost = &cli.StringFlag{
	Name:     "mqtt-host",
	EnvVars:  []string{"MQTT_HOST"},
	Required: true,
}

var FlagMQTTPort = &cli.IntFlag{
	Name:     "mqtt-port",
	EnvVars:  []string{"MQTT_PORT"},
	Value:    1883,
	Required: false,
}

var FlagMQTTClientID = &cli.StringFlag{
	Name:     "mqtt-client-id",
	EnvVars:  []string{"MQTT_CLIENT_ID"},
	Value:    "esp-mqtt",
	Required: false,
}

var FlagMQTTUsername = &cli.StringFlag{
	Name:     "mqtt-username",
	EnvVars:  []string{"MQTT_USERNAME"},
	Required: true,
}

var FlagMQTTPassword = &cli.StringFlag{
	Name:     "mqtt-password",
	EnvVars:  []string{"MQTT_PASSWORD"},
	Required: true,
}

var FlagPublishTopic = &cli.StringFlag{
	Name:     "publish-topic",
	EnvVars:  []string{"PUBLISH_TOPIC"},
	Value:    "hello",
	Required: false,
}

var FlagSubscribeTopic = &cli.StringFlag{
	Name:     "subscribe-topic",
	EnvVars:  []string{"SUBSCRIBE_TOPIC"},
	Value:    "hello",
	Required: false,
}

var FlagPublishPayload = &cli.StringFlag{
	Name:     "publish-payload",
	EnvVars:  []string{"PUBLISH_PAYLOAD"},
	Value:    "world",
	Required: false,
}

var FlagPublishInterval = &cli.DurationFlag{
	Name:     "publish-interval",
	EnvVars:  []string{"PUBLISH_INTERVAL"},
	Value:    time.Second,
	Required: false,
}

var FlagLEDChip = &cli.StringFlag{
	Name:     "led-chip",
	Usage:    "GPIO chip for the connection LED, empty for log-only",
	EnvVars:  []string{"LED_CHIP"},
	Required: false,
}

var FlagLEDLine = &cli.IntFlag{
	Name:     "led-line",
	Usage:    "GPIO line offset for the connection LED",
	EnvVars:  []string{"LED_LINE"},
	Required: false,
}

var FlagLEDInverted = &cli.BoolFlag{
	Name:     "led-inverted",
	Usage:    "drive the LED active-low",
	EnvVars:  []string{"LED_INVERTED"},
	Value:    true,
	Required: false,
}
