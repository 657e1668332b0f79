package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/incubadora-iot/core/internal/record"
)

// WriteReading mirrors a stored reading into the readings measurement.
//
// Only values coercible to a number are written; string readings are
// skipped since the bucket is numeric telemetry. The write is
// non-blocking and silently dropped when disconnected.
func (c *Client) WriteReading(rec *record.Record) {
	if !c.IsConnected() {
		return
	}

	value, ok := rec.Value.Float()
	if !ok {
		return
	}

	ts := rec.RecordedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	point := write.NewPoint(
		"readings",
		map[string]string{
			"tipo":   string(rec.Kind),
			"nombre": rec.Name,
			"unidad": rec.Unit,
		},
		map[string]interface{}{
			"value": value,
		},
		ts,
	)

	c.writeAPI.WritePoint(point)
}
