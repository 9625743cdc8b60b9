package migrations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migration описывает одну миграцию схемы: уникальный идентификатор и SQL для применения.
type Migration struct {
	ID    string
	UpSQL string
}

// DB подмножество методов пула соединений, нужное для миграций.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var allMigrations = []Migration{
	{
		ID: "20240101120000_create_articles_table",
		UpSQL: `CREATE TABLE articles (
		id serial PRIMARY KEY,
		title TEXT NOT NULL,
		link TEXT UNIQUE NOT NULL,
		pub_date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL,
		publisher TEXT NOT NULL,
		publisher_image TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		ID:    "20240101120100_index_articles_fetched_at",
		UpSQL: `CREATE INDEX articles_fetched_at_idx ON articles (fetched_at DESC);`,
	},
}

// Migrations возвращает список миграций в порядке применения.
func Migrations() []Migration {
	sorted := make([]Migration, len(allMigrations))
	copy(sorted, allMigrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Apply применяет все необходимые миграции к базе данных.
func Apply(ctx context.Context, log *slog.Logger, db DB) error {
	log = log.With(slog.String("component", "migrations"))
	log.Info("Starting database migrations check")
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (id TEXT PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	rows, err := db.Query(ctx, "SELECT id FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to scan migration id: %w", err)
	}
	appliedMigrations := make(map[string]bool, len(applied))
	for _, id := range applied {
		appliedMigrations[id] = true
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback(ctx)
		}
	}()
	appliedCount := 0
	for _, m := range Migrations() {
		if appliedMigrations[m.ID] {
			continue
		}
		log.Info("Applying migration", slog.String("id", m.ID))
		if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (id) VALUES ($1)", m.ID); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.ID, err)
		}
		appliedCount++
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migrations transaction: %w", err)
	}
	committed = true
	if appliedCount > 0 {
		log.Info("Database migrations applied successfully", slog.Int("count", appliedCount))
	} else {
		log.Info("Database is up to date, no new migrations found")
	}
	return nil
}
