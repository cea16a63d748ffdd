package model

// EventType names an outbound widget notification. The abh: prefix is
// the component's historical event namespace and is part of the host
// page contract.
type EventType string

const (
	EventChange EventType = "abh:change"
	EventUnits  EventType = "abh:units"
	EventSaved  EventType = "abh:saved"
)

// Event is a fire-and-forget outbound notification. Detail is the
// JSON-encodable payload for the event type: a MeasurementSummary for
// change events, a UnitsDetail for unit toggles, a MeasurementRecord
// after a successful save.
type Event struct {
	Type   EventType `json:"type"`
	Detail any       `json:"payload"`
}

// UnitsDetail is the payload of a units-changed notification.
type UnitsDetail struct {
	Units Units `json:"units"`
}
