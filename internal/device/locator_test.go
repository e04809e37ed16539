package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocli/internal/service"
)

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("52.52,13.405")
	require.NoError(t, err)
	assert.Equal(t, service.Location{Latitude: 52.52, Longitude: 13.405}, loc)

	loc, err = ParseLocation(" -33.87 , 151.21 ")
	require.NoError(t, err)
	assert.Equal(t, -33.87, loc.Latitude)
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, s := range []string{"", "52.52", "52.52,13.405,7", "a,b", "91,0", "0,181", "-91,0"} {
		_, err := ParseLocation(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestEnvLocator(t *testing.T) {
	t.Setenv(LocationEnv, "52.52,13.405")

	loc, err := EnvLocator{}.CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 52.52, loc.Latitude)
	assert.Equal(t, 13.405, loc.Longitude)
}

func TestEnvLocator_Unset(t *testing.T) {
	t.Setenv(LocationEnv, "")

	_, err := EnvLocator{}.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEnvLocator_Malformed(t *testing.T) {
	t.Setenv(LocationEnv, "somewhere nice")

	_, err := EnvLocator{}.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
