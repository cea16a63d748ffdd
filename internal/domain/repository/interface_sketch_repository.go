package repository

import (
	"context"

	"AreaHelper-App/internal/domain/model"
)

// SketchRepository stores saved drawing sessions so a host page can
// resume one later. Records expire; expired records read as not found.
type SketchRepository interface {
	// SaveSketch persists a sketch with the given time-to-live and
	// returns its id.
	SaveSketch(ctx context.Context, sketch *model.SketchRecord, ttlHours int) (string, error)

	// GetSketch fetches an unexpired sketch by id.
	GetSketch(ctx context.Context, id string) (*model.SketchRecord, error)

	// DeleteSketch removes a sketch.
	DeleteSketch(ctx context.Context, id string) error
}
