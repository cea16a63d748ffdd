package test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/infrastructure/maps"
)

func TestMapboxGeocoding(t *testing.T) {
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Skip("MAPBOX_TOKEN not set, skipping integration test")
	}

	provider := maps.NewMapboxGeocodingProvider(token)

	result, err := provider.Geocode(context.Background(), "1600 Pennsylvania Avenue NW, Washington DC")
	require.NoError(t, err)
	require.NotNil(t, result)

	log.Printf("📍 %s -> %v", result.PlaceName, result.Center)
	assert.NotEmpty(t, result.PlaceName)
	// Washington DC sits near (-77, 38.9).
	assert.InDelta(t, -77.0, result.Center[0], 1.0)
	assert.InDelta(t, 38.9, result.Center[1], 1.0)

	_, err = provider.Geocode(context.Background(), "")
	assert.Error(t, err)
}
