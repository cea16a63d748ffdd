package model

import "github.com/paulmach/orb"

// Default view state for a new session: continental US center, country
// zoom, satellite-streets base style.
var DefaultCenter = orb.Point{-98.5795, 39.8283}

const (
	DefaultZoom     = 4.0
	DefaultMapStyle = "mapbox://styles/mapbox/satellite-streets-v12"
)

// DefaultMeasurementsTable is used when persistence is configured
// without an explicit table name.
const DefaultMeasurementsTable = "measurements"

// FreehandPreviewID names the overlay source/layer carrying the live
// freehand preview line.
const FreehandPreviewID = "freehand-preview"

// Overlay draw-plugin modes.
const (
	DrawModePolygon = "draw_polygon"
	DrawModeSelect  = "simple_select"
)

// DrawingTuning carries the numeric behavior of the drawing engine.
// The defaults are long-standing tuned values; treat them as
// configuration, not invariants.
type DrawingTuning struct {
	// SampleThresholdBase scales the zoom-adaptive move filter: a move
	// sample is accepted once |dlng| or |dlat| exceeds
	// base * 2^(referenceZoom - zoom), keeping screen-space path
	// density consistent across zoom levels.
	SampleThresholdBase float64 `json:"sample_threshold_base"`
	ReferenceZoom       float64 `json:"reference_zoom"`

	// SimplifyTolerance is the Douglas-Peucker tolerance applied to a
	// finished freehand path before smoothing.
	SimplifyTolerance float64 `json:"simplify_tolerance"`

	// SplineResolution and SplineSharpness drive the closed-curve
	// smoothing that rounds freehand paths.
	SplineResolution float64 `json:"spline_resolution"`
	SplineSharpness  float64 `json:"spline_sharpness"`

	// CircleSteps is the segment count of the circle approximation.
	CircleSteps int `json:"circle_steps"`
}

// DefaultDrawingTuning returns the tuned defaults.
func DefaultDrawingTuning() DrawingTuning {
	return DrawingTuning{
		SampleThresholdBase: 0.00002,
		ReferenceZoom:       15,
		SimplifyTolerance:   0.00005,
		SplineResolution:    10000,
		SplineSharpness:     0.5,
		CircleSteps:         128,
	}
}
