package geolocators

import (
	"context"
	"net"

	"link-rotator/internal/models"
)

// Locator resolves a coarse location for an IP address. Lookups never fail
// the caller: anything short of a confident answer returns ok=false.
//
//go:generate mockgen -source=locator.go -destination=./mocks/locator_mock.go -package=mocks
type Locator interface {
	Locate(ctx context.Context, ip string) (models.Location, bool)
	Close()
}

type noopLocator struct{}

// NewNoopLocator is used when geolocation is disabled.
func NewNoopLocator() Locator {
	return noopLocator{}
}

func (noopLocator) Locate(context.Context, string) (models.Location, bool) {
	return models.Location{}, false
}

func (noopLocator) Close() {}

// isLocatable reports whether ip is worth a lookup. Loopback, unspecified
// and private addresses have no public location.
func isLocatable(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsUnspecified() && !parsed.IsPrivate()
}
