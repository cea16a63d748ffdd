package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/repository"
	"AreaHelper-App/internal/infrastructure/database"
)

// PostgresMeasurementsRepository persists measurement records over a
// direct Postgres connection, for self-hosted deployments.
type PostgresMeasurementsRepository struct {
	client *database.PostgreSQLClient
	table  string
}

// NewPostgresMeasurementsRepository creates the repository over the
// given client and table.
func NewPostgresMeasurementsRepository(client *database.PostgreSQLClient, table string) repository.MeasurementsRepository {
	if table == "" {
		table = model.DefaultMeasurementsTable
	}
	return &PostgresMeasurementsRepository{
		client: client,
		table:  table,
	}
}

// Save inserts one measurement row; the shape collection is stored as
// a JSONB document like the REST gateway does.
func (r *PostgresMeasurementsRepository) Save(ctx context.Context, record *model.MeasurementRecord) error {
	geojsonData, err := json.Marshal(record.GeoJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal shape collection: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (created_at, units, area_sq_m, area_sq_ft, perimeter_m, perimeter_ft, geojson)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.table,
	)

	_, err = r.client.DB.ExecContext(ctx, query,
		record.CreatedAt,
		string(record.Units),
		record.AreaSqM,
		record.AreaSqFt,
		record.PerimeterM,
		record.PerimeterFt,
		geojsonData,
	)
	if err != nil {
		return fmt.Errorf("failed to save measurement: %w", err)
	}

	return nil
}
