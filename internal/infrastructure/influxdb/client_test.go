package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/incubadora-iot/core/internal/infrastructure/config"
	"github.com/incubadora-iot/core/internal/record"
)

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("error = %v, want ErrDisabled", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	c := &Client{}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
}

func TestWriteReading_DroppedWhenDisconnected(t *testing.T) {
	c := &Client{}

	// Must not panic despite the nil write API.
	c.WriteReading(&record.Record{
		Kind:  record.KindSensor,
		Name:  "temperatura",
		Value: record.NumberValue(36.7),
	})
}

func TestFlush_SafeWhenDisconnected(t *testing.T) {
	c := &Client{}
	c.Flush()
}
