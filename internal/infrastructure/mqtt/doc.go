// Package mqtt wraps paho.mqtt.golang for the incubator device bridge.
//
// The incubator hardware publishes readings to a broker topic; this
// client subscribes to that topic and hands payloads to a handler. It
// manages the connection lifecycle: auto-reconnect with backoff,
// re-subscription after reconnect, a Last Will and Testament on the
// system status topic so other services can see when the backend drops,
// and a graceful offline status on shutdown.
//
// All methods are safe for concurrent use.
package mqtt
