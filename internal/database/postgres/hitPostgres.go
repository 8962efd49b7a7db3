package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kutanig/explore-with-me/internal/entity"
)

type hitRepository struct {
	db *sql.DB
}

func NewHitRepository(db *sql.DB) HitRepository {
	return &hitRepository{db: db}
}

func (r *hitRepository) Save(ctx context.Context, hit *entity.EndpointHit) error {
	query := `
		INSERT INTO endpoint_hits (app, uri, ip, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, hit.App, hit.URI, hit.IP, hit.Timestamp).Scan(&hit.ID)
	if err != nil {
		return fmt.Errorf("failed to save hit: %w", err)
	}
	return nil
}

// CountViews считает просмотры по каждому uri; при unique каждый IP
// учитывается один раз
func (r *hitRepository) CountViews(ctx context.Context, app string, uris []string, start, end time.Time, unique bool) (map[string]int64, error) {
	views := make(map[string]int64, len(uris))
	if len(uris) == 0 {
		return views, nil
	}

	counter := "COUNT(*)"
	if unique {
		counter = "COUNT(DISTINCT ip)"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT uri, `+counter+`
		FROM endpoint_hits
		WHERE app = $1 AND uri = ANY($2) AND timestamp BETWEEN $3 AND $4
		GROUP BY uri
	`, app, pq.Array(uris), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uri string
		var count int64
		if err := rows.Scan(&uri, &count); err != nil {
			return nil, fmt.Errorf("failed to scan views: %w", err)
		}
		views[uri] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating views: %w", err)
	}

	return views, nil
}

func (r *hitRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM endpoint_hits WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old hits: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
