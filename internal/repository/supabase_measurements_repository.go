package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/repository"
	"AreaHelper-App/internal/infrastructure/database"
)

// SupabaseMeasurementsRepository persists measurement records through
// the Supabase REST API.
type SupabaseMeasurementsRepository struct {
	client *database.SupabaseClient
	table  string
}

// NewSupabaseMeasurementsRepository creates the repository over the
// given client and table.
func NewSupabaseMeasurementsRepository(client *database.SupabaseClient, table string) repository.MeasurementsRepository {
	if table == "" {
		table = model.DefaultMeasurementsTable
	}
	return &SupabaseMeasurementsRepository{
		client: client,
		table:  table,
	}
}

// Save inserts one measurement row. The row carries only canonical
// values plus the GeoJSON shape collection.
func (r *SupabaseMeasurementsRepository) Save(ctx context.Context, record *model.MeasurementRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement record: %w", err)
	}

	_, _, err = r.client.GetClient().From(r.table).Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save measurement: %w", err)
	}

	return nil
}
