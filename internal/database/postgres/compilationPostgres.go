package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kutanig/explore-with-me/internal/entity"
)

type compilationRepository struct {
	db *sql.DB
}

func NewCompilationRepository(db *sql.DB) CompilationRepository {
	return &compilationRepository{db: db}
}

func replaceCompilationEvents(ctx context.Context, tx *sql.Tx, compilationID int64, eventIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM compilation_events WHERE compilation_id = $1`, compilationID); err != nil {
		return fmt.Errorf("failed to clear compilation events: %w", err)
	}
	for _, eventID := range eventIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)
		`, compilationID, eventID); err != nil {
			return fmt.Errorf("failed to add event to compilation: %w", err)
		}
	}
	return nil
}

func (r *compilationRepository) Create(ctx context.Context, compilation *entity.Compilation, eventIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id
	`, compilation.Title, compilation.Pinned).Scan(&compilation.ID)
	if err != nil {
		return fmt.Errorf("failed to create compilation: %w", err)
	}

	if err := replaceCompilationEvents(ctx, tx, compilation.ID, eventIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *compilationRepository) Update(ctx context.Context, compilation *entity.Compilation, eventIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE compilations SET title = $1, pinned = $2 WHERE id = $3
	`, compilation.Title, compilation.Pinned, compilation.ID)
	if err != nil {
		return fmt.Errorf("failed to update compilation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCompilationNotFound
	}

	// nil означает "состав не менялся", пустой срез очищает подборку
	if eventIDs != nil {
		if err := replaceCompilationEvents(ctx, tx, compilation.ID, eventIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *compilationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete compilation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCompilationNotFound
	}

	return nil
}

func (r *compilationRepository) GetByID(ctx context.Context, id int64) (*entity.Compilation, error) {
	var compilation entity.Compilation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id).
		Scan(&compilation.ID, &compilation.Title, &compilation.Pinned)
	if err == sql.ErrNoRows {
		return nil, entity.ErrCompilationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compilation: %w", err)
	}
	return &compilation, nil
}

func (r *compilationRepository) GetAll(ctx context.Context, pinned *bool, from, size int) ([]*entity.Compilation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if pinned != nil {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, title, pinned FROM compilations
			WHERE pinned = $1
			ORDER BY id
			OFFSET $2 LIMIT $3
		`, *pinned, from, size)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, title, pinned FROM compilations
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, from, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query compilations: %w", err)
	}
	defer rows.Close()

	var compilations []*entity.Compilation
	for rows.Next() {
		var compilation entity.Compilation
		if err := rows.Scan(&compilation.ID, &compilation.Title, &compilation.Pinned); err != nil {
			return nil, fmt.Errorf("failed to scan compilation: %w", err)
		}
		compilations = append(compilations, &compilation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating compilations: %w", err)
	}

	return compilations, nil
}

func (r *compilationRepository) GetEventIDs(ctx context.Context, compilationID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id FROM compilation_events WHERE compilation_id = $1 ORDER BY event_id
	`, compilationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query compilation events: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan event id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event ids: %w", err)
	}

	return ids, nil
}
