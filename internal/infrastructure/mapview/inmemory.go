// Package mapview provides the in-process map view collaborator: a
// projected viewport plus the vector overlay that owns the committed
// shape set.
package mapview

import (
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/model"
)

type source struct {
	data *geojson.FeatureCollection
}

type layer struct {
	sourceID  string
	layerType string
}

// InMemoryMapView is the authoritative holder of committed shapes and
// view state for one session. All methods are safe for concurrent use;
// each call completes fully before the next mutates the same state,
// which gives the overlay last-write-wins semantics.
type InMemoryMapView struct {
	mu sync.Mutex

	sources map[string]*source
	layers  map[string]*layer

	order    []string
	features map[string]*geojson.Feature

	drawMode     string
	drawVertices []orb.Point

	center     orb.Point
	zoom       float64
	panEnabled bool
	cursor     string

	width, height int
	ready         bool
}

// NewInMemoryMapView creates a view at the given center and zoom with
// a raster buffer of the given size.
func NewInMemoryMapView(center orb.Point, zoom float64, width, height int) *InMemoryMapView {
	return &InMemoryMapView{
		sources:    map[string]*source{},
		layers:     map[string]*layer{},
		features:   map[string]*geojson.Feature{},
		drawMode:   model.DrawModeSelect,
		center:     center,
		zoom:       zoom,
		panEnabled: true,
		width:      width,
		height:     height,
		ready:      width > 0 && height > 0,
	}
}

// AddSource registers an overlay source.
func (v *InMemoryMapView) AddSource(id string, fc *geojson.FeatureCollection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sources[id] = &source{data: fc}
}

// HasSource reports whether the source exists.
func (v *InMemoryMapView) HasSource(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.sources[id]
	return ok
}

// SetSourceData replaces the source's feature collection.
func (v *InMemoryMapView) SetSourceData(id string, fc *geojson.FeatureCollection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.sources[id]; ok {
		s.data = fc
	}
}

// SourceData returns the source's current feature collection.
func (v *InMemoryMapView) SourceData(id string) (*geojson.FeatureCollection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.sources[id]
	if !ok {
		return nil, false
	}
	return s.data, true
}

// AddLayer registers a styled layer over a source.
func (v *InMemoryMapView) AddLayer(id, sourceID, layerType string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.layers[id] = &layer{sourceID: sourceID, layerType: layerType}
}

// HasLayer reports whether the layer exists.
func (v *InMemoryMapView) HasLayer(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.layers[id]
	return ok
}

// RemoveLayer removes a layer.
func (v *InMemoryMapView) RemoveLayer(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.layers, id)
}

// RemoveSource removes a source.
func (v *InMemoryMapView) RemoveSource(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.sources, id)
}

// AddFeature commits a feature to the draw store and returns its id.
func (v *InMemoryMapView) AddFeature(f *geojson.Feature) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := ""
	if f.ID != nil {
		if s, ok := f.ID.(string); ok {
			id = s
		}
	}
	if id == "" {
		id = uuid.New().String()
		f.ID = id
	}
	if _, exists := v.features[id]; !exists {
		v.order = append(v.order, id)
	}
	v.features[id] = f
	return id
}

// Features returns the committed shape set in insertion order.
func (v *InMemoryMapView) Features() []*geojson.Feature {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*geojson.Feature, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.features[id])
	}
	return out
}

// DeleteAllFeatures empties the draw store.
func (v *InMemoryMapView) DeleteAllFeatures() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order = nil
	v.features = map[string]*geojson.Feature{}
}

// ChangeMode switches the draw store mode; leaving polygon drawing
// discards any in-progress vertices.
func (v *InMemoryMapView) ChangeMode(mode string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if mode != model.DrawModePolygon {
		v.drawVertices = nil
	}
	v.drawMode = mode
}

// DrawMode returns the draw store mode.
func (v *InMemoryMapView) DrawMode() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drawMode
}

// DrawClick adds a vertex to the in-progress native polygon.
func (v *InMemoryMapView) DrawClick(p orb.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.drawMode != model.DrawModePolygon {
		return
	}
	v.drawVertices = append(v.drawVertices, p)
}

// DrawComplete closes and commits the in-progress polygon
// (double-click). Fewer than 3 vertices discards the attempt.
func (v *InMemoryMapView) DrawComplete() (*geojson.Feature, bool) {
	v.mu.Lock()
	vertices := v.drawVertices
	v.drawVertices = nil
	v.mu.Unlock()

	if len(vertices) < 3 {
		return nil, false
	}

	ring := make(orb.Ring, 0, len(vertices)+1)
	ring = append(ring, vertices...)
	ring = append(ring, vertices[0])

	shape, err := model.NewShape(uuid.New().String(), model.ShapeKindPolygon, ring)
	if err != nil {
		return nil, false
	}
	f := shape.Feature()
	v.AddFeature(f)
	return f, true
}

// EnablePan re-enables drag panning.
func (v *InMemoryMapView) EnablePan() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panEnabled = true
}

// DisablePan locks drag panning (freehand drags would otherwise move
// the map).
func (v *InMemoryMapView) DisablePan() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panEnabled = false
}

// PanEnabled reports the pan lock state.
func (v *InMemoryMapView) PanEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panEnabled
}

// Zoom returns the current zoom level.
func (v *InMemoryMapView) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

// SetZoom updates the zoom level (client view sync).
func (v *InMemoryMapView) SetZoom(zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = zoom
}

// Center returns the current map center.
func (v *InMemoryMapView) Center() orb.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center
}

// SetCenter updates the map center (client view sync, geocoder jumps).
func (v *InMemoryMapView) SetCenter(p orb.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = p
}

// SetCursor updates the cursor hint shown to clients.
func (v *InMemoryMapView) SetCursor(cursor string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cursor = cursor
}

// Cursor returns the cursor hint.
func (v *InMemoryMapView) Cursor() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

// ViewSize returns the raster buffer dimensions.
func (v *InMemoryMapView) ViewSize() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// ViewReady reports whether the raster buffer is usable.
func (v *InMemoryMapView) ViewReady() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}
