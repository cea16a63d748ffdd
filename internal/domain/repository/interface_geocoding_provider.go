package repository

import (
	"context"

	"AreaHelper-App/internal/domain/model"
)

// GeocodingProvider resolves a free-form address query to a place name
// and a center point.
type GeocodingProvider interface {
	Geocode(ctx context.Context, query string) (*model.GeocodeResult, error)
}
