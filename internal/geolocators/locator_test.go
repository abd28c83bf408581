package geolocators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLocator(t *testing.T) {
	t.Parallel()

	loc, ok := NewNoopLocator().Locate(context.Background(), "81.2.69.160")
	assert.False(t, ok)
	assert.Equal(t, "", loc.CountryCode)
}

func TestIsLocatable(t *testing.T) {
	t.Parallel()

	assert.True(t, isLocatable("81.2.69.160"))
	assert.True(t, isLocatable("2a00:1450:4007:80e::200e"))
	assert.False(t, isLocatable("127.0.0.1"))
	assert.False(t, isLocatable("0.0.0.0"))
	assert.False(t, isLocatable("172.16.4.2"))
	assert.False(t, isLocatable("garbage"))
}
