package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/image/vector"

	"AreaHelper-App/internal/domain/helper"
	"AreaHelper-App/internal/domain/model"
)

// ErrNoShapes is returned when an export is requested with an empty
// shape set; the caller should prompt the user rather than emit an
// empty artifact.
var ErrNoShapes = errors.New("draw an area first")

// ErrViewNotReady is returned when the view has no usable raster
// buffer yet; the snapshot can be retried once the map has loaded.
var ErrViewNotReady = errors.New("snapshot failed, try again after the map fully loads")

// ExportService produces the three export artifacts — raster snapshot,
// tabular CSV report and structured JSON document — from the current
// measurement state. No artifact requires a live network call.
type ExportService struct {
	view    MapView
	measure *MeasurementService
}

// NewExportService creates an exporter over the given view and
// aggregator.
func NewExportService(view MapView, measure *MeasurementService) *ExportService {
	return &ExportService{view: view, measure: measure}
}

// CSVReport renders the human-readable tabular report: a title block,
// a summary block in both unit systems, then one row per shape. A row
// whose per-shape computation fails is rendered with explicit Error
// markers, never omitted, so row count always equals shape count.
func (s *ExportService) CSVReport(units model.Units, address string, now time.Time) ([]byte, string, error) {
	sum := s.measure.Summarize(units)
	if !sum.HasShapes() {
		return nil, "", ErrNoShapes
	}

	if address == "" {
		address = "No address specified"
	}
	center := s.view.Center()
	unitsLabel := "Metric (m/sq m)"
	if units == model.UnitsImperial {
		unitsLabel = "Imperial (ft/sq ft)"
	}

	var b strings.Builder
	b.WriteString("Area Measurement Report\n")
	fmt.Fprintf(&b, "Date/Time:,%s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Address:,%s\n", address)
	fmt.Fprintf(&b, "Map Center:,%.6f, %.6f\n", center.Lat(), center.Lon())
	fmt.Fprintf(&b, "Units:,%s\n", unitsLabel)
	b.WriteString("\n")
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Area (sq ft):,%.2f\n", sum.AreaSqFt)
	fmt.Fprintf(&b, "Total Area (sq m):,%.2f\n", sum.AreaSqM)
	fmt.Fprintf(&b, "Total Perimeter (ft):,%.2f\n", sum.PerimeterFt)
	fmt.Fprintf(&b, "Total Perimeter (m):,%.2f\n", sum.PerimeterM)
	fmt.Fprintf(&b, "Number of Shapes:,%d\n", sum.ShapeCount())
	b.WriteString("\n")
	b.WriteString("INDIVIDUAL SHAPES\n")
	b.WriteString("Shape #,Area (sq ft),Area (sq m),Perimeter (ft),Perimeter (m)\n")

	for i, f := range sum.Features.Features {
		areaSqM, errA := helper.FeatureAreaSqM(f)
		perimKm, errP := helper.FeaturePerimeterKm(f)
		if errA != nil || errP != nil {
			fmt.Fprintf(&b, "%d,Error,Error,Error,Error\n", i+1)
			continue
		}
		fmt.Fprintf(&b, "%d,%.2f,%.2f,%.2f,%.2f\n",
			i+1,
			areaSqM*model.SqFtPerSqM,
			areaSqM,
			perimKm*model.FeetPerKm,
			perimKm*model.MetersPerKm,
		)
	}

	return []byte(b.String()), model.DatedExportFileName(model.ExportCSV, now), nil
}

// JSONDocument renders the structured export: ISO timestamp, searched
// address (or an explicit marker), searched location or current map
// center, and the full canonical measurement payload.
func (s *ExportService) JSONDocument(units model.Units, address string, location *orb.Point, now time.Time) ([]byte, string, error) {
	sum := s.measure.Summarize(units)
	if !sum.HasShapes() {
		return nil, "", ErrNoShapes
	}

	if address == "" {
		address = "Not specified"
	}
	loc := s.view.Center()
	if location != nil {
		loc = *location
	}

	doc := model.ExportDocument{
		Timestamp:           now.UTC().Format(time.RFC3339),
		Address:             address,
		Location:            []float64{loc.Lon(), loc.Lat()},
		MeasurementSnapshot: sum.Snapshot(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode export document: %w", err)
	}
	return data, model.DatedExportFileName(model.ExportJSON, now), nil
}

// SnapshotPNG rasterizes the committed shapes over the current view
// buffer and encodes a PNG. An unready or empty buffer yields a
// retryable failure instead of a corrupt file.
func (s *ExportService) SnapshotPNG() ([]byte, string, error) {
	if !s.view.ViewReady() {
		return nil, "", ErrViewNotReady
	}
	width, height := s.view.ViewSize()
	if width <= 0 || height <= 0 {
		return nil, "", ErrViewNotReady
	}

	features := s.view.Features()
	if len(features) == 0 {
		return nil, "", ErrNoShapes
	}

	// Fit all shapes into the buffer with a small margin.
	bound := features[0].Geometry.Bound()
	for _, f := range features[1:] {
		bound = bound.Union(f.Geometry.Bound())
	}
	bound = bound.Pad(boundPadding(bound))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}), image.Point{}, draw.Src)

	spanX := bound.Max.Lon() - bound.Min.Lon()
	spanY := bound.Max.Lat() - bound.Min.Lat()
	project := func(p orb.Point) (float32, float32) {
		x := (p.Lon() - bound.Min.Lon()) / spanX * float64(width)
		y := (bound.Max.Lat() - p.Lat()) / spanY * float64(height)
		return float32(x), float32(y)
	}

	r := vector.NewRasterizer(width, height)
	for _, f := range features {
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			continue
		}
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			x, y := project(ring[0])
			r.MoveTo(x, y)
			for _, p := range ring[1:] {
				x, y = project(p)
				r.LineTo(x, y)
			}
			r.ClosePath()
		}
	}
	r.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xb0}), image.Point{})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), model.SnapshotFileName, nil
}

// boundPadding gives a 5% margin, with a floor for degenerate bounds
// so projection never divides by zero.
func boundPadding(b orb.Bound) float64 {
	spanX := b.Max.Lon() - b.Min.Lon()
	spanY := b.Max.Lat() - b.Min.Lat()
	pad := spanX
	if spanY > pad {
		pad = spanY
	}
	pad *= 0.05
	if pad < 1e-6 {
		pad = 1e-6
	}
	return pad
}
