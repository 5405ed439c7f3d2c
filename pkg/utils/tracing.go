package utils

import (
	"os"
	"strconv"
	"strings"
)

// IsTracingEnabled reports whether OTEL_TRACES_ENABLED is set to a truthy
// value. Tracing is opt-in.
func IsTracingEnabled() bool {
	v := strings.TrimSpace(os.Getenv("OTEL_TRACES_ENABLED"))
	if v == "" {
		return false
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}

	return b
}

// OTelServiceName returns the service name reported to the tracing backend.
func OTelServiceName() string {
	serviceName := strings.TrimSpace(os.Getenv("OTEL_SERVICE_NAME"))
	if serviceName == "" {
		serviceName = "storytime-api"
	}

	return serviceName
}
