// Package device abstracts the positioning hardware. The CLI has no GPS,
// so the stock locator reads a fixed position from the environment.
package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"todocli/internal/service"
)

// ErrUnavailable is returned when no position can be obtained. Callers
// treat it as "proceed without location".
var ErrUnavailable = errors.New("location unavailable")

// LocationEnv is the environment variable holding "lat,lng".
const LocationEnv = "TODO_LOCATION"

// EnvLocator resolves the current position from TODO_LOCATION.
type EnvLocator struct{}

// CurrentLocation returns the configured position, or ErrUnavailable when
// the variable is unset or malformed.
func (EnvLocator) CurrentLocation(ctx context.Context) (service.Location, error) {
	v := os.Getenv(LocationEnv)
	if v == "" {
		return service.Location{}, ErrUnavailable
	}
	loc, err := ParseLocation(v)
	if err != nil {
		return service.Location{}, ErrUnavailable
	}
	return loc, nil
}

// ParseLocation parses a "lat,lng" pair in floating-point degrees.
func ParseLocation(s string) (service.Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return service.Location{}, fmt.Errorf("invalid location: %s", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return service.Location{}, fmt.Errorf("invalid latitude: %s", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return service.Location{}, fmt.Errorf("invalid longitude: %s", parts[1])
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return service.Location{}, fmt.Errorf("location out of range: %s", s)
	}
	return service.Location{Latitude: lat, Longitude: lng}, nil
}
