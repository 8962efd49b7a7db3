package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/kutanig/explore-with-me/internal/entity"
)

const eventColumns = `id, title, annotation, description, category_id, initiator_id,
		lat, lon, paid, participant_limit, request_moderation,
		event_date, created_on, published_on, state`

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (
			title, annotation, description, category_id, initiator_id,
			lat, lon, paid, participant_limit, request_moderation,
			event_date, created_on, state
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Annotation,
		event.Description,
		event.CategoryID,
		event.InitiatorID,
		event.Location.Lat,
		event.Location.Lon,
		event.Paid,
		event.ParticipantLimit,
		event.RequestModeration,
		event.EventDate,
		event.CreatedOn,
		event.State,
	).Scan(&event.ID)
}

func scanEvent(row interface{ Scan(...interface{}) error }) (*entity.Event, error) {
	var event entity.Event
	var publishedOn sql.NullTime
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Annotation,
		&event.Description,
		&event.CategoryID,
		&event.InitiatorID,
		&event.Location.Lat,
		&event.Location.Lon,
		&event.Paid,
		&event.ParticipantLimit,
		&event.RequestModeration,
		&event.EventDate,
		&event.CreatedOn,
		&publishedOn,
		&event.State,
	)
	if err != nil {
		return nil, err
	}
	if publishedOn.Valid {
		t := publishedOn.Time
		event.PublishedOn = &t
	}
	return &event, nil
}

func (r *eventRepository) getOne(ctx context.Context, query string, args ...interface{}) (*entity.Event, error) {
	event, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *eventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND initiator_id = $2`
	return r.getOne(ctx, query, id, initiatorID)
}

func (r *eventRepository) GetByIDAndState(ctx context.Context, id int64, state entity.EventState) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND state = $2`
	return r.getOne(ctx, query, id, state)
}

func (r *eventRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) GetByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE initiator_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	return r.queryMany(ctx, query, initiatorID, from, size)
}

func (r *eventRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1) ORDER BY id`
	return r.queryMany(ctx, query, pq.Array(ids))
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, annotation = $2, description = $3, category_id = $4,
		    lat = $5, lon = $6, paid = $7, participant_limit = $8,
		    request_moderation = $9, event_date = $10, published_on = $11, state = $12
		WHERE id = $13
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Annotation,
		event.Description,
		event.CategoryID,
		event.Location.Lat,
		event.Location.Lon,
		event.Paid,
		event.ParticipantLimit,
		event.RequestModeration,
		event.EventDate,
		event.PublishedOn,
		event.State,
		event.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

// SearchPublished ищет только опубликованные события; текст ищется без
// учета регистра в аннотации и описании
func (r *eventRepository) SearchPublished(ctx context.Context, filter *PublishedEventsFilter) ([]*entity.Event, error) {
	conditions := []string{"state = 'PUBLISHED'"}
	var args []interface{}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Text != "" {
		p := next("%" + filter.Text + "%")
		conditions = append(conditions, fmt.Sprintf("(annotation ILIKE %s OR description ILIKE %s)", p, p))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = ANY(%s)", next(pq.Array(filter.Categories))))
	}
	if filter.Paid != nil {
		conditions = append(conditions, fmt.Sprintf("paid = %s", next(*filter.Paid)))
	}
	conditions = append(conditions, fmt.Sprintf("event_date >= %s", next(filter.RangeStart)))
	if filter.RangeEnd != nil {
		conditions = append(conditions, fmt.Sprintf("event_date <= %s", next(*filter.RangeEnd)))
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY event_date
		OFFSET ` + next(filter.From) + ` LIMIT ` + next(filter.Size)

	return r.queryMany(ctx, query, args...)
}

func (r *eventRepository) SearchAdmin(ctx context.Context, filter *AdminEventsFilter) ([]*entity.Event, error) {
	conditions := []string{"TRUE"}
	var args []interface{}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Users) > 0 {
		conditions = append(conditions, fmt.Sprintf("initiator_id = ANY(%s)", next(pq.Array(filter.Users))))
	}
	if len(filter.States) > 0 {
		states := make([]string, len(filter.States))
		for i, s := range filter.States {
			states[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("state = ANY(%s)", next(pq.Array(states))))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = ANY(%s)", next(pq.Array(filter.Categories))))
	}
	if filter.RangeStart != nil {
		conditions = append(conditions, fmt.Sprintf("event_date >= %s", next(*filter.RangeStart)))
	}
	if filter.RangeEnd != nil {
		conditions = append(conditions, fmt.Sprintf("event_date <= %s", next(*filter.RangeEnd)))
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY id
		OFFSET ` + next(filter.From) + ` LIMIT ` + next(filter.Size)

	return r.queryMany(ctx, query, args...)
}

func (r *eventRepository) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE category_id = $1)`
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check events by category: %w", err)
	}
	return exists, nil
}
