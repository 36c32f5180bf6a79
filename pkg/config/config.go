package config

import (
	"os"

	osutils "github.com/itsfriday/itsfriday-controller/pkg/utils/os"
)

const (
	// ControllerName is used for the tracer, the meter and the logger names
	ControllerName = "itsfriday-controller"
	// DefaultServerPort is the port the admission server listens on
	DefaultServerPort = 443
	// DefaultExcludedDays excludes fridays when nothing else is configured
	DefaultExcludedDays = "4"
	// DefaultInstanceName is the label used outside of a pod
	DefaultInstanceName = "NOT_A_POD"
)

const (
	// ValidatingWebhookServicePath is the path for the validation webhook
	ValidatingWebhookServicePath = "/validate"
	// LivenessServicePath is the path for check liveness health
	LivenessServicePath = "/health"
	// ReadinessServicePath is the path for check readness health
	ReadinessServicePath = "/ready"
	// MetricsPath is the path prometheus metrics are served on
	MetricsPath = "/metrics"
)

const (
	instanceNameEnvVar = "APP_POD_NAME"
	excludedDaysEnvVar = "MY_FRIDAY"
)

// InstanceName returns the label prefixed to every admission message.
func InstanceName() string {
	return osutils.GetEnvWithFallback(instanceNameEnvVar, DefaultInstanceName)
}

// ExcludedDays returns the raw exclusion calendar from the environment.
// An explicitly empty value excludes nothing.
func ExcludedDays() string {
	if value, ok := os.LookupEnv(excludedDaysEnvVar); ok {
		return value
	}
	return DefaultExcludedDays
}
