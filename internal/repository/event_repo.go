package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/event-content-pipeline/internal/database"
	"github.com/event-content-pipeline/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{
	"id", "title", "description", "venue_name", "venue_address", "category",
	"start_date", "end_date", "price", "cover_image", "image_url", "thumbnail",
	"booking_url", "affiliate_url", "is_active", "created_at", "updated_at",
}

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	db *database.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{db: db}
}

// eligibleWhere applies the shared eligibility conditions
func eligibleWhere(b sq.SelectBuilder, from time.Time) sq.SelectBuilder {
	return b.
		Where(sq.Eq{"is_active": true}).
		Where(sq.NotEq{"affiliate_url": nil}).
		Where(sq.Expr(`affiliate_url ~ '\S'`)). // same test as strings.TrimSpace != ""
		Where(sq.GtOrEq{"start_date": from.Format("2006-01-02")})
}

// eligibleQuery builds the soonest-first eligible events query
func eligibleQuery(filter EligibleFilter) sq.SelectBuilder {
	q := eligibleWhere(psql.Select(eventColumns...).From("events"), filter.From)

	// NOT IN () is invalid SQL, so the exclusion only applies when there is something to exclude
	if len(filter.Exclude) > 0 {
		q = q.Where(sq.NotEq{"id": filter.Exclude})
	}

	q = q.OrderBy("start_date ASC", "id ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	return q
}

// ListEligible returns active events with an affiliate link starting on or after filter.From
func (r *eventRepo) ListEligible(ctx context.Context, filter EligibleFilter) ([]*models.Event, error) {
	query, args, err := eligibleQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build eligible query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query eligible events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CountEligible counts events that would be eligible if nothing were processed yet
func (r *eventRepo) CountEligible(ctx context.Context, from time.Time) (int, error) {
	query, args, err := eligibleWhere(psql.Select("COUNT(*)").From("events"), from).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count eligible events: %w", err)
	}
	return count, nil
}

func scanEvent(rows *sql.Rows) (*models.Event, error) {
	var (
		e                                              models.Event
		description, venueName, venueAddress, category sql.NullString
		price, cover, image, thumbnail                 sql.NullString
		booking, affiliate                             sql.NullString
		endDate                                        sql.NullTime
	)

	err := rows.Scan(
		&e.ID, &e.Title, &description, &venueName, &venueAddress, &category,
		&e.StartDate, &endDate, &price, &cover, &image, &thumbnail,
		&booking, &affiliate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = description.String
	e.VenueName = venueName.String
	e.VenueAddress = venueAddress.String
	e.Category = category.String
	e.Price = price.String
	e.CoverImage = cover.String
	e.ImageURL = image.String
	e.Thumbnail = thumbnail.String
	e.BookingURL = booking.String
	e.AffiliateURL = affiliate.String
	if endDate.Valid {
		e.EndDate = &endDate.Time
	}

	return &e, nil
}
