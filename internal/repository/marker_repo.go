package repository

import (
	"context"

	"github.com/event-content-pipeline/internal/database"
)

// markerRepo is the concrete implementation of MarkerRepository
type markerRepo struct {
	db *database.DB
}

// NewMarkerRepo creates a new marker repository
func NewMarkerRepo(db *database.DB) MarkerRepository {
	return &markerRepo{db: db}
}

// ProcessedEventIDs returns the ids of every event that already has an article
func (r *markerRepo) ProcessedEventIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT event_id FROM processed_events")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the total number of markers
func (r *markerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM processed_events").Scan(&count)
	return count, err
}
