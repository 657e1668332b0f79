// Package influxdb mirrors numeric incubator readings into a time-series
// bucket for dashboarding.
//
// SQLite remains the source of truth; this sink is optional and
// best-effort. Writes are non-blocking and batched, and a lost InfluxDB
// connection never fails a reading write.
package influxdb
