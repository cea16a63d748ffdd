package repository

import (
	"context"

	"AreaHelper-App/internal/domain/model"
)

// MeasurementsRepository is the optional persistence gateway for
// measurement records. An unconfigured gateway hides the save feature;
// it is never an error.
type MeasurementsRepository interface {
	// Save persists one measurement record. No partial state is saved
	// on failure.
	Save(ctx context.Context, record *model.MeasurementRecord) error
}
