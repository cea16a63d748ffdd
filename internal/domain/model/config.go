package model

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// WidgetConfig is the per-session configuration surface, mirroring the
// embeddable component's attributes.
type WidgetConfig struct {
	Token    string
	Units    Units
	Center   orb.Point
	Zoom     float64
	MapStyle string

	// PostMessage enables forwarding of measurement results to a host
	// message channel. TargetOrigin must be explicit; a wildcard origin
	// is accepted only when AllowWildcardOrigin is set, as a documented
	// trust tradeoff.
	PostMessage         bool
	TargetOrigin        string
	AllowWildcardOrigin bool

	// Persistence gateway connection. Table falls back to
	// DefaultMeasurementsTable when URL and key are present.
	SupabaseURL   string
	SupabaseKey   string
	SupabaseTable string

	Tuning DrawingTuning
}

// ApplyDefaults fills unset fields with the widget defaults.
func (c *WidgetConfig) ApplyDefaults() {
	if c.Units != UnitsMetric {
		c.Units = UnitsImperial
	}
	if c.Center == (orb.Point{}) {
		c.Center = DefaultCenter
	}
	if c.Zoom == 0 {
		c.Zoom = DefaultZoom
	}
	if c.MapStyle == "" {
		c.MapStyle = DefaultMapStyle
	}
	if c.SupabaseURL != "" && c.SupabaseKey != "" && c.SupabaseTable == "" {
		c.SupabaseTable = DefaultMeasurementsTable
	}
	if c.Tuning == (DrawingTuning{}) {
		c.Tuning = DefaultDrawingTuning()
	}
}

// PersistenceConfigured reports whether the save gateway attributes are
// present. When absent the save feature is hidden, not an error.
func (c *WidgetConfig) PersistenceConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// ParseCenter parses a "lng,lat" attribute string.
func ParseCenter(attr string) (orb.Point, bool) {
	if attr == "" {
		return orb.Point{}, false
	}
	parts := strings.Split(attr, ",")
	if len(parts) != 2 {
		return orb.Point{}, false
	}
	lng, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return orb.Point{}, false
	}
	return orb.Point{lng, lat}, true
}
