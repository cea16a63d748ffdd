package model

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ShapeKind identifies how a committed shape was drawn.
type ShapeKind string

const (
	ShapeKindPolygon   ShapeKind = "polygon"
	ShapeKindRectangle ShapeKind = "rectangle"
	ShapeKindCircle    ShapeKind = "circle"
	ShapeKindFreehand  ShapeKind = "freehand"
)

// shapeKindProperty is the feature property carrying the shape kind.
const shapeKindProperty = "shape_kind"

// Shape is a committed geometric feature. The overlay is the source of
// truth for committed shapes; a Shape is always derived from an overlay
// feature, never stored independently.
type Shape struct {
	ID         string
	Kind       ShapeKind
	Ring       orb.Ring
	Properties geojson.Properties
}

// NewShape creates a shape from a closed ring. The ring must already be
// closed (first point repeated as last).
func NewShape(id string, kind ShapeKind, ring orb.Ring) (*Shape, error) {
	s := &Shape{
		ID:         id,
		Kind:       kind,
		Ring:       ring,
		Properties: geojson.Properties{shapeKindProperty: string(kind)},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the ring invariant: at least 4 points (3 distinct
// vertices plus the closing point) and first == last.
func (s *Shape) Validate() error {
	if len(s.Ring) < 4 {
		return fmt.Errorf("ring has %d points, need at least 4", len(s.Ring))
	}
	if !s.Ring.Closed() {
		return fmt.Errorf("ring is not closed")
	}
	return nil
}

// Feature converts the shape to a GeoJSON polygon feature for the overlay.
func (s *Shape) Feature() *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{s.Ring})
	f.ID = s.ID
	f.Properties = s.Properties
	return f
}

// ShapeFromFeature reads a committed overlay feature back into a Shape.
// Non-polygon features are rejected so callers can skip them.
func ShapeFromFeature(f *geojson.Feature) (*Shape, error) {
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok || len(poly) == 0 {
		return nil, fmt.Errorf("feature is not a polygon")
	}

	kind := ShapeKindPolygon
	if v, ok := f.Properties[shapeKindProperty].(string); ok && v != "" {
		kind = ShapeKind(v)
	}

	id := ""
	if f.ID != nil {
		id = fmt.Sprintf("%v", f.ID)
	}

	s := &Shape{
		ID:         id,
		Kind:       kind,
		Ring:       poly[0],
		Properties: f.Properties,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
