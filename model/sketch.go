package model

import (
	domain "AreaHelper-App/internal/domain/model"
)

// PointerEventRequest is one input event relayed by the host page.
type PointerEventRequest struct {
	Type   string    `json:"type" validate:"required,oneof=press move release click dblclick"`
	Point  []float64 `json:"point"`  // [lng, lat]
	Shift  bool      `json:"shift"`  // shift-drag starts freehand from any mode
	Source string    `json:"source"` // mouse | touch
}

// PointerEventResponse reports what the event did to the drawing state.
type PointerEventResponse struct {
	Committed      bool   `json:"committed"`       // a shape was finalized
	ShapeID        string `json:"shape_id,omitempty"`
	AwaitingRadius bool   `json:"awaiting_radius"` // circle armed, radius entry expected
	PreventDefault bool   `json:"prevent_default"` // host page should suppress native handling
	Changed        bool   `json:"changed"`
}

// CircleRadiusRequest commits a radius entry for an armed circle, in
// the session's selected units (feet or meters).
type CircleRadiusRequest struct {
	Radius float64 `json:"radius" validate:"required"`
}

// SearchRequest geocodes a free-form address query.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// SearchResponse is the best-matching place.
type SearchResponse struct {
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [lng, lat]
}

// SaveResponse confirms a persisted measurement and echoes the stored
// record.
type SaveResponse struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message"`
	Record  *domain.MeasurementRecord `json:"record"`
}

// SaveSketchRequest snapshots the current drawing for later restore.
type SaveSketchRequest struct {
	TTLHours int `json:"ttl_hours"`
}

// SaveSketchResponse returns the restore handle.
type SaveSketchResponse struct {
	SketchID string `json:"sketch_id"`
}
