package strategy

import (
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/model"
)

// Canvas is the slice of the map surface a drawing strategy works
// against: the vector overlay, the draw store, pan lock, zoom and
// cursor. The full map view implements it.
type Canvas interface {
	// Vector overlay sources and layers (live previews).
	AddSource(id string, fc *geojson.FeatureCollection)
	HasSource(id string) bool
	SetSourceData(id string, fc *geojson.FeatureCollection)
	AddLayer(id, sourceID, layerType string)
	HasLayer(id string) bool
	RemoveLayer(id string)
	RemoveSource(id string)

	// Draw store (committed shapes).
	AddFeature(f *geojson.Feature) string
	ChangeMode(mode string)

	// View state.
	EnablePan()
	DisablePan()
	Zoom() float64
	SetCursor(cursor string)
}

// DrawingStrategy is one interaction mode's shape-construction
// behavior. Cancel must be idempotent: the controller tears every
// strategy down eagerly on each mode switch so two modes can never
// hold in-flight gestures at once.
type DrawingStrategy interface {
	Mode() model.Mode
	Cancel(c Canvas)
}
