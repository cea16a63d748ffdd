package service

import (
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/helper"
	"AreaHelper-App/internal/domain/model"
)

// MeasurementService recomputes the aggregated area and perimeter
// across all committed shapes. It is the single source of truth for
// displayed and exported numbers: both derive from one Summarize call
// and the same conversion constants.
type MeasurementService struct {
	view MapView
}

// NewMeasurementService creates an aggregator over the given view.
func NewMeasurementService(view MapView) *MeasurementService {
	return &MeasurementService{view: view}
}

// Summarize re-queries the overlay and computes a fresh summary for
// the unit preference. A shape whose geometry cannot be measured is
// skipped silently; one malformed feature must not blank the whole
// summary.
func (s *MeasurementService) Summarize(units model.Units) *model.MeasurementSummary {
	features := s.view.Features()

	fc := geojson.NewFeatureCollection()
	var areaSqM, perimeterKm float64
	for _, f := range features {
		fc.Append(f)

		area, err := helper.FeatureAreaSqM(f)
		if err != nil {
			continue
		}
		perimeter, err := helper.FeaturePerimeterKm(f)
		if err != nil {
			continue
		}
		areaSqM += area
		perimeterKm += perimeter
	}

	areaSqFt := areaSqM * model.SqFtPerSqM
	perimeterM := perimeterKm * model.MetersPerKm
	perimeterFt := perimeterKm * model.FeetPerKm

	summary := &model.MeasurementSummary{
		Features:    fc,
		AreaSqM:     areaSqM,
		AreaSqFt:    areaSqFt,
		PerimeterM:  perimeterM,
		PerimeterFt: perimeterFt,
		Units:       units,
	}
	if units == model.UnitsImperial {
		summary.Area = areaSqFt
		summary.Perimeter = perimeterFt
	} else {
		summary.Area = areaSqM
		summary.Perimeter = perimeterM
	}
	return summary
}
