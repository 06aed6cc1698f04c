package keys

import (
	"strings"
)

const (
	// PfxBookingMetadata is used for prefixing booking metadata cache keys
	PfxBookingMetadata = "bookingMetadata"
	// PfxHealthCheck is used for prefixing health check cache keys
	PfxHealthCheck = "healthcheck"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey is used to join the cache key by components
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
