package model

import (
	"fmt"
	"math"

	"github.com/paulmach/orb/geojson"
)

// Units is the widget-instance unit preference.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// ParseUnits validates a units string.
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsImperial, UnitsMetric:
		return Units(s), nil
	}
	return "", fmt.Errorf("invalid units %q (expected imperial or metric)", s)
}

// Unit conversion constants. Live display and every export format derive
// from these exact values so the two can never disagree.
const (
	SqFtPerSqM  = 10.76391041671
	FeetPerKm   = 3280.8398950131
	MetersPerKm = 1000.0
)

// MeasurementSummary is the aggregated measurement state across all
// committed shapes. It is recomputed wholesale on every shape-set
// mutation and unit toggle, never mutated in place. Area/Perimeter carry
// the unit-selected convenience values; the *_Sq/M/Ft fields are the
// canonical unit-independent values downstream consumers use.
type MeasurementSummary struct {
	Features    *geojson.FeatureCollection `json:"geojson"`
	Area        float64                    `json:"area"`
	Perimeter   float64                    `json:"perimeter"`
	AreaSqM     float64                    `json:"area_sq_m"`
	AreaSqFt    float64                    `json:"area_sq_ft"`
	PerimeterM  float64                    `json:"perimeter_m"`
	PerimeterFt float64                    `json:"perimeter_ft"`
	Units       Units                      `json:"units"`
}

// ShapeCount returns the number of committed shapes in the summary.
func (m *MeasurementSummary) ShapeCount() int {
	if m.Features == nil {
		return 0
	}
	return len(m.Features.Features)
}

// HasShapes reports whether the summary reflects at least one shape.
// An empty set is the "no shapes" display state, not a zero-valued card.
func (m *MeasurementSummary) HasShapes() bool {
	return m.ShapeCount() > 0
}

// AreaLabel returns the display label for the selected area unit.
func (m *MeasurementSummary) AreaLabel() string {
	if m.Units == UnitsImperial {
		return "sq ft"
	}
	return "sq m"
}

// PerimeterLabel returns the display label for the selected length unit.
func (m *MeasurementSummary) PerimeterLabel() string {
	if m.Units == UnitsImperial {
		return "ft"
	}
	return "m"
}

// MeasurementSnapshot is the rounded public snapshot handed to host
// pages (the get-data surface).
type MeasurementSnapshot struct {
	Units       Units                      `json:"units"`
	Area        float64                    `json:"area"`
	Perimeter   float64                    `json:"perimeter"`
	AreaSqM     float64                    `json:"area_sq_m"`
	AreaSqFt    float64                    `json:"area_sq_ft"`
	PerimeterM  float64                    `json:"perimeter_m"`
	PerimeterFt float64                    `json:"perimeter_ft"`
	Features    *geojson.FeatureCollection `json:"features"`
}

// Snapshot rounds the canonical values to two decimals for host pages.
func (m *MeasurementSummary) Snapshot() *MeasurementSnapshot {
	features := m.Features
	if features == nil {
		features = geojson.NewFeatureCollection()
	}
	return &MeasurementSnapshot{
		Units:       m.Units,
		Area:        Round2(m.Area),
		Perimeter:   Round2(m.Perimeter),
		AreaSqM:     Round2(m.AreaSqM),
		AreaSqFt:    Round2(m.AreaSqFt),
		PerimeterM:  Round2(m.PerimeterM),
		PerimeterFt: Round2(m.PerimeterFt),
		Features:    features,
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
