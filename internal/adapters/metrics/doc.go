// Package metrics provides ports.Diagnostics implementations that record
// widget refresh outcomes as metrics.
//
// Prometheus counters are exposed by the web host at /-/metrics. The
// OpenTelemetry reporter exports through whatever MeterProvider the
// telemetry package installed, which is a no-op when telemetry is disabled.
package metrics
