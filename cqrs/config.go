package cqrs

import "time"

// Config defines configuration options for the dispatcher and its standard
// decorator pipeline.
type Config struct {
	// ServiceName identifies the service in log events, spans, forwarded
	// message headers and alert reports.
	ServiceName string `yaml:"service_name" validate:"required"`

	// ServiceVersion is attached next to ServiceName wherever it appears.
	ServiceVersion string `yaml:"service_version" default:"unknown"`

	// Timeout bounds every handler execution. Zero disables the timeout
	// wrapper.
	Timeout time.Duration `yaml:"timeout" default:"30s"`

	// DisableTracing turns off the OpenTelemetry tracing wrappers.
	DisableTracing bool `yaml:"disable_tracing" default:"false"`

	// DisableMetrics turns off the go-metrics wrappers.
	DisableMetrics bool `yaml:"disable_metrics" default:"false"`
}
