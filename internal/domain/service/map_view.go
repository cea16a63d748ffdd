package service

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/strategy"
)

// MapView is the map collaborator surface the engine draws against.
// The committed shape set lives in the view's draw store and nowhere
// else: every aggregation and export re-queries it, which is what keeps
// the core and the overlay from diverging.
type MapView interface {
	strategy.Canvas

	// Draw store reads. Features returns the committed shape set in
	// insertion order.
	Features() []*geojson.Feature
	DeleteAllFeatures()
	DrawMode() string

	// Native polygon drawing: clicks add vertices, DrawComplete closes
	// and commits the in-progress polygon (double-click/tap).
	DrawClick(p orb.Point)
	DrawComplete() (*geojson.Feature, bool)

	// View state.
	SetZoom(zoom float64)
	Center() orb.Point
	SetCenter(p orb.Point)
	PanEnabled() bool
	Cursor() string

	// Snapshot buffer. ViewReady is false until the view has a usable
	// raster surface.
	ViewSize() (width, height int)
	ViewReady() bool
}
