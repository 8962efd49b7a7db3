package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/kutanig/explore-with-me/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Read migration files and execute them
	// This is a simplified version - you might want to use a proper migration tool
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(254) UNIQUE NOT NULL,
			name VARCHAR(250) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title VARCHAR(120) NOT NULL,
			annotation VARCHAR(2000) NOT NULL,
			description VARCHAR(7000),
			category_id INTEGER NOT NULL REFERENCES categories(id),
			initiator_id INTEGER NOT NULL REFERENCES users(id),
			lat DOUBLE PRECISION NOT NULL DEFAULT 0,
			lon DOUBLE PRECISION NOT NULL DEFAULT 0,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			participant_limit INTEGER NOT NULL DEFAULT 0 CHECK (participant_limit >= 0),
			request_moderation BOOLEAN NOT NULL DEFAULT TRUE,
			event_date TIMESTAMP NOT NULL,
			created_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			published_on TIMESTAMP,
			state VARCHAR(10) NOT NULL DEFAULT 'PENDING'
		)`,

		`CREATE TABLE IF NOT EXISTS participation_requests (
			id SERIAL PRIMARY KEY,
			event_id INTEGER NOT NULL REFERENCES events(id),
			requester_id INTEGER NOT NULL REFERENCES users(id),
			status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ratings (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			event_id INTEGER NOT NULL REFERENCES events(id),
			type VARCHAR(7) NOT NULL,
			created_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, event_id)
		)`,

		`CREATE TABLE IF NOT EXISTS compilations (
			id SERIAL PRIMARY KEY,
			title VARCHAR(50) NOT NULL,
			pinned BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS compilation_events (
			compilation_id INTEGER NOT NULL REFERENCES compilations(id) ON DELETE CASCADE,
			event_id INTEGER NOT NULL REFERENCES events(id),
			PRIMARY KEY (compilation_id, event_id)
		)`,

		`CREATE TABLE IF NOT EXISTS endpoint_hits (
			id SERIAL PRIMARY KEY,
			app VARCHAR(64) NOT NULL,
			uri VARCHAR(255) NOT NULL,
			ip VARCHAR(45) NOT NULL,
			timestamp TIMESTAMP NOT NULL
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_events_initiator ON events(initiator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_state_date ON events(state, event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_category ON events(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_event ON participation_requests(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_requester ON participation_requests(requester_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_event_status ON participation_requests(event_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_event ON ratings(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_app_uri_ts ON endpoint_hits(app, uri, timestamp)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
