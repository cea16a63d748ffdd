package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb"

	"AreaHelper-App/internal/domain/model"
)

// MapboxGeocodingProvider resolves address searches through the Mapbox
// forward-geocoding API.
type MapboxGeocodingProvider struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewMapboxGeocodingProvider creates a provider with the given access
// token.
func NewMapboxGeocodingProvider(accessToken string) *MapboxGeocodingProvider {
	return &MapboxGeocodingProvider{
		accessToken: accessToken,
		baseURL:     "https://api.mapbox.com/geocoding/v5/mapbox.places",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// mapboxGeocodeResponse is the slice of the API response we consume.
type mapboxGeocodeResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
	} `json:"features"`
}

// Geocode resolves a free-form query to the best-matching place.
func (m *MapboxGeocodingProvider) Geocode(ctx context.Context, query string) (*model.GeocodeResult, error) {
	if query == "" {
		return nil, errors.New("empty search query")
	}

	reqURL := fmt.Sprintf("%s/%s.json?%s",
		m.baseURL,
		url.PathEscape(query),
		url.Values{"access_token": {m.accessToken}, "limit": {"1"}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned error status: %s", resp.Status)
	}

	var apiResp mapboxGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	if len(apiResp.Features) == 0 {
		return nil, errors.New("no matching place found")
	}

	best := apiResp.Features[0]
	if len(best.Center) < 2 {
		return nil, errors.New("geocoding result has no center")
	}

	return &model.GeocodeResult{
		PlaceName: best.PlaceName,
		Center:    orb.Point{best.Center[0], best.Center[1]},
	}, nil
}
