package model

import (
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
)

// ExportFormat selects the data export artifact kind.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// MeasurementRecord is the row handed to the persistence gateway. It
// carries only canonical values so the store never sees a
// double-converted number.
type MeasurementRecord struct {
	CreatedAt   time.Time                  `json:"created_at"`
	Units       Units                      `json:"units"`
	AreaSqM     float64                    `json:"area_sq_m"`
	AreaSqFt    float64                    `json:"area_sq_ft"`
	PerimeterM  float64                    `json:"perimeter_m"`
	PerimeterFt float64                    `json:"perimeter_ft"`
	GeoJSON     *geojson.FeatureCollection `json:"geojson"`
}

// ExportDocument is the structured (JSON) export artifact.
type ExportDocument struct {
	Timestamp string    `json:"timestamp"`
	Address   string    `json:"address"`
	Location  []float64 `json:"location"`
	*MeasurementSnapshot
}

// SketchRecord is a saved drawing session a host page can restore.
type SketchRecord struct {
	ID        string                     `json:"id"`
	Units     Units                      `json:"units"`
	GeoJSON   *geojson.FeatureCollection `json:"geojson"`
	CreatedAt time.Time                  `json:"created_at"`
	ExpiresAt time.Time                  `json:"expires_at"`
}

// SnapshotFileName is the fixed raster export name.
const SnapshotFileName = "area-snapshot.png"

// DatedExportFileName embeds the calendar date so CSV and JSON exports
// taken in the same session carry matching stamps.
func DatedExportFileName(format ExportFormat, now time.Time) string {
	return fmt.Sprintf("area-measurement-%s.%s", now.Format("2006-01-02"), format)
}
