package model

import "github.com/paulmach/orb"

// GeocodeResult is a resolved address search: the display name and the
// place center, remembered on the session for export headers.
type GeocodeResult struct {
	PlaceName string    `json:"place_name"`
	Center    orb.Point `json:"center"`
}
