package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kutanig/explore-with-me/internal/entity"
)

const requestColumns = `id, event_id, requester_id, status, created`

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

// lockEvent блокирует строку события до конца транзакции, чтобы
// проверка лимита и вставка заявки были атомарны
func lockEvent(ctx context.Context, tx *sql.Tx, eventID int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	event, err := scanEvent(tx.QueryRowContext(ctx, query, eventID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}
	return event, nil
}

func countConfirmedTx(ctx context.Context, tx *sql.Tx, eventID int64) (int64, error) {
	var confirmed int64
	query := `SELECT COUNT(*) FROM participation_requests WHERE event_id = $1 AND status = 'CONFIRMED'`
	if err := tx.QueryRowContext(ctx, query, eventID).Scan(&confirmed); err != nil {
		return 0, fmt.Errorf("failed to count confirmed requests: %w", err)
	}
	return confirmed, nil
}

func (r *requestRepository) Create(ctx context.Context, eventID, requesterID int64) (*entity.ParticipationRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	if event.InitiatorID == requesterID {
		return nil, entity.ErrOwnEventRequest
	}
	if event.State != entity.EventStatePublished {
		return nil, entity.ErrEventNotPublished
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM participation_requests
			WHERE event_id = $1 AND requester_id = $2 AND status <> 'CANCELED'
		)`, eventID, requesterID).Scan(&duplicate)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate request: %w", err)
	}
	if duplicate {
		return nil, entity.ErrRequestExists
	}

	if event.ParticipantLimit > 0 {
		confirmed, err := countConfirmedTx(ctx, tx, eventID)
		if err != nil {
			return nil, err
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return nil, entity.ErrParticipantLimit
		}
	}

	// Без модерации или без лимита заявка подтверждается сразу
	status := entity.RequestStatusPending
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		status = entity.RequestStatusConfirmed
	}

	request := &entity.ParticipationRequest{
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      status,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO participation_requests (event_id, requester_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created
	`, eventID, requesterID, status).Scan(&request.ID, &request.Created)
	if err != nil {
		return nil, fmt.Errorf("failed to insert request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return request, nil
}

func scanRequest(row interface{ Scan(...interface{}) error }) (*entity.ParticipationRequest, error) {
	var request entity.ParticipationRequest
	err := row.Scan(
		&request.ID,
		&request.EventID,
		&request.RequesterID,
		&request.Status,
		&request.Created,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*entity.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE id = $1`
	request, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

func (r *requestRepository) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*entity.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE id = $1 AND requester_id = $2`
	request, err := scanRequest(r.db.QueryRowContext(ctx, query, id, requesterID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

func (r *requestRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*entity.ParticipationRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ParticipationRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

func (r *requestRepository) GetByRequester(ctx context.Context, requesterID int64) ([]*entity.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE requester_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, requesterID)
}

func (r *requestRepository) GetByEvent(ctx context.Context, eventID int64) ([]*entity.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE event_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, eventID)
}

func (r *requestRepository) CancelByRequester(ctx context.Context, id, requesterID int64) (*entity.ParticipationRequest, error) {
	query := `
		UPDATE participation_requests
		SET status = 'CANCELED'
		WHERE id = $1 AND requester_id = $2
		RETURNING ` + requestColumns
	request, err := scanRequest(r.db.QueryRowContext(ctx, query, id, requesterID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}
	return request, nil
}

// BulkUpdateStatus переводит группу заявок в CONFIRMED или REJECTED.
// Подтверждение выполняется по принципу "все или ничего": если лимит не
// вмещает всю группу, ни одна заявка не подтверждается
func (r *requestRepository) BulkUpdateStatus(ctx context.Context, eventID int64, ids []int64, status entity.RequestStatus) ([]*entity.ParticipationRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State == entity.EventStateCanceled {
		return nil, entity.ErrEventCanceledRequest
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM participation_requests
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}

	found := make(map[int64]*entity.ParticipationRequest, len(ids))
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		found[request.ID] = request
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	// Порядок результата повторяет порядок входных идентификаторов
	requests := make([]*entity.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		request, ok := found[id]
		if !ok {
			return nil, entity.ErrRequestNotFound
		}
		if request.EventID != eventID {
			return nil, entity.ErrForeignRequest
		}
		if request.Status != entity.RequestStatusPending {
			return nil, entity.ErrRequestNotPending
		}
		requests = append(requests, request)
	}

	if status == entity.RequestStatusConfirmed && event.ParticipantLimit > 0 {
		confirmed, err := countConfirmedTx(ctx, tx, eventID)
		if err != nil {
			return nil, err
		}
		if confirmed+int64(len(requests)) > int64(event.ParticipantLimit) {
			return nil, entity.ErrParticipantLimit
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE participation_requests SET status = $1 WHERE id = ANY($2)
	`, status, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to update requests: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, request := range requests {
		request.Status = status
	}

	return requests, nil
}

func (r *requestRepository) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	var confirmed int64
	query := `SELECT COUNT(*) FROM participation_requests WHERE event_id = $1 AND status = 'CONFIRMED'`
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&confirmed); err != nil {
		return 0, fmt.Errorf("failed to count confirmed requests: %w", err)
	}
	return confirmed, nil
}

func (r *requestRepository) CountConfirmedForEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, COUNT(*)
		FROM participation_requests
		WHERE event_id = ANY($1) AND status = 'CONFIRMED'
		GROUP BY event_id
	`, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count confirmed requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, count int64
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[eventID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	return counts, nil
}
