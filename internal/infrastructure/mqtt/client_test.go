package mqtt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/incubadora-iot/core/internal/infrastructure/config"
)

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Host:     "broker.local",
		Port:     1883,
		ClientID: "incubadora-test",
		Username: "dev",
		Password: "secret",
		QoS:      1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("server count = %d, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker url = %q, want tcp://broker.local:1883", got)
	}
	if opts.ClientID != "incubadora-test" {
		t.Errorf("client id = %q", opts.ClientID)
	}
	if opts.Username != "dev" {
		t.Errorf("username = %q", opts.Username)
	}
	if !opts.AutoReconnect {
		t.Error("auto-reconnect should be enabled")
	}
}

func TestBuildClientOptions_TLSScheme(t *testing.T) {
	cfg := config.MQTTConfig{Host: "broker.local", Port: 8883, TLS: true, ClientID: "x"}

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Error("TLS config should be set")
	}
}

func TestStatusPayload(t *testing.T) {
	var decoded map[string]string

	online := statusPayload("online", "incubadora-core", "")
	if err := json.Unmarshal([]byte(online), &decoded); err != nil {
		t.Fatalf("online payload is not valid JSON: %v", err)
	}
	if decoded["status"] != "online" || decoded["client_id"] != "incubadora-core" {
		t.Errorf("unexpected online payload: %s", online)
	}
	if _, ok := decoded["reason"]; ok {
		t.Error("online payload should not carry a reason")
	}

	offline := statusPayload("offline", "incubadora-core", "graceful_shutdown")
	if err := json.Unmarshal([]byte(offline), &decoded); err != nil {
		t.Fatalf("offline payload is not valid JSON: %v", err)
	}
	if decoded["reason"] != "graceful_shutdown" {
		t.Errorf("unexpected offline payload: %s", offline)
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := config.MQTTConfig{Host: "broker.local", Port: 1883, ClientID: "incubadora-core"}
	opts := buildClientOptions(cfg)

	configureLWT(opts, cfg.ClientID)

	if opts.WillTopic != SystemStatusTopic {
		t.Errorf("will topic = %q, want %q", opts.WillTopic, SystemStatusTopic)
	}
	if !opts.WillRetained {
		t.Error("LWT should be retained")
	}
	if !strings.Contains(string(opts.WillPayload), "unexpected_disconnect") {
		t.Errorf("will payload = %s", opts.WillPayload)
	}
}

func TestSubscribe_Validation(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}

	if err := c.Subscribe("", 1, func(string, []byte) error { return nil }); err != ErrInvalidTopic {
		t.Errorf("empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe("incubadora/data", 1, nil); err == nil {
		t.Error("nil handler should be rejected")
	}
}
