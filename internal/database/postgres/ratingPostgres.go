package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kutanig/explore-with-me/internal/entity"
)

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert сохраняет оценку; повторная оценка того же события
// перезаписывает предыдущую
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (user_id, event_id, type, created_on)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, event_id) DO UPDATE SET type = EXCLUDED.type
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		rating.UserID,
		rating.EventID,
		rating.Type,
		rating.CreatedOn,
	).Scan(&rating.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

func (r *ratingRepository) DeleteByUserAndEvent(ctx context.Context, userID, eventID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRatingNotFound
	}

	return nil
}

func (r *ratingRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*entity.Rating, error) {
	var rating entity.Rating
	query := `SELECT id, user_id, event_id, type, created_on FROM ratings WHERE user_id = $1 AND event_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.EventID,
		&rating.Type,
		&rating.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func (r *ratingRepository) GetEventRating(ctx context.Context, eventID int64) (int64, int64, error) {
	var likes, dislikes int64
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'LIKE'),
			COUNT(*) FILTER (WHERE type = 'DISLIKE')
		FROM ratings
		WHERE event_id = $1
	`
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&likes, &dislikes); err != nil {
		return 0, 0, fmt.Errorf("failed to get event rating: %w", err)
	}
	return likes, dislikes, nil
}

func (r *ratingRepository) GetEventRatings(ctx context.Context, eventIDs []int64) (map[int64]*entity.EventRating, error) {
	ratings := make(map[int64]*entity.EventRating, len(eventIDs))
	if len(eventIDs) == 0 {
		return ratings, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id,
			COUNT(*) FILTER (WHERE type = 'LIKE'),
			COUNT(*) FILTER (WHERE type = 'DISLIKE')
		FROM ratings
		WHERE event_id = ANY($1)
		GROUP BY event_id
	`, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query event ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, likes, dislikes int64
		if err := rows.Scan(&eventID, &likes, &dislikes); err != nil {
			return nil, fmt.Errorf("failed to scan event rating: %w", err)
		}
		ratings[eventID] = entity.NewEventRating(eventID, likes, dislikes)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event ratings: %w", err)
	}

	return ratings, nil
}

// GetUserRating агрегирует оценки по всем событиям, которые создал пользователь
func (r *ratingRepository) GetUserRating(ctx context.Context, userID int64) (*entity.UserRating, error) {
	var name string
	var likes, dislikes, eventsCount int64
	query := `
		SELECT u.name,
			COUNT(r.id) FILTER (WHERE r.type = 'LIKE'),
			COUNT(r.id) FILTER (WHERE r.type = 'DISLIKE'),
			COUNT(DISTINCT e.id)
		FROM users u
		LEFT JOIN events e ON e.initiator_id = u.id
		LEFT JOIN ratings r ON r.event_id = e.id
		WHERE u.id = $1
		GROUP BY u.name
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&name, &likes, &dislikes, &eventsCount)
	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user rating: %w", err)
	}
	return entity.NewUserRating(userID, name, likes, dislikes, eventsCount), nil
}

func (r *ratingRepository) GetTopUsers(ctx context.Context, count int) ([]*entity.UserRating, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name,
			COUNT(r.id) FILTER (WHERE r.type = 'LIKE'),
			COUNT(r.id) FILTER (WHERE r.type = 'DISLIKE'),
			COUNT(DISTINCT e.id)
		FROM users u
		JOIN events e ON e.initiator_id = u.id
		JOIN ratings r ON r.event_id = e.id
		GROUP BY u.id, u.name
		ORDER BY (COUNT(r.id) FILTER (WHERE r.type = 'LIKE') - COUNT(r.id) FILTER (WHERE r.type = 'DISLIKE'))::float
			/ COUNT(r.id) DESC
		LIMIT $1
	`, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	var users []*entity.UserRating
	for rows.Next() {
		var userID, likes, dislikes, eventsCount int64
		var name string
		if err := rows.Scan(&userID, &name, &likes, &dislikes, &eventsCount); err != nil {
			return nil, fmt.Errorf("failed to scan user rating: %w", err)
		}
		users = append(users, entity.NewUserRating(userID, name, likes, dislikes, eventsCount))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ratings: %w", err)
	}

	return users, nil
}
