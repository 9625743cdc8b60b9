package storage

import (
	"context"
	"fmt"
	"log/slog"

	"tamilnews/internal/config"
	"tamilnews/internal/domain"

	"github.com/jackc/pgx/v5"
)

const upsertArticleQuery = `INSERT INTO articles (title, link, pub_date, description, image_url, publisher, publisher_image, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (link) DO UPDATE SET title = EXCLUDED.title, pub_date = EXCLUDED.pub_date, description = EXCLUDED.description, image_url = EXCLUDED.image_url, publisher = EXCLUDED.publisher, publisher_image = EXCLUDED.publisher_image, fetched_at = EXCLUDED.fetched_at`

const selectArticlesQuery = `SELECT title, link, pub_date, description, image_url, publisher, publisher_image
FROM articles
ORDER BY fetched_at DESC, id DESC
LIMIT $1`

// PostgresArticleDB архив обогащенных статей в PostgreSQL.
type PostgresArticleDB struct {
	pool             Pool
	log              *slog.Logger
	defaultNewsLimit int
}

// NewPostgresArticleDB создает архив поверх пула соединений.
// Лимит выборки по умолчанию берется из конфигурации приложения.
func NewPostgresArticleDB(pool Pool, appCfg config.AppConfig, log *slog.Logger) *PostgresArticleDB {
	log = log.With(slog.String("component", "storage"))
	log.Info("Initializing Postgres article archive")
	return &PostgresArticleDB{
		pool:             pool,
		log:              log,
		defaultNewsLimit: appCfg.DefaultNewsLimit,
	}
}

// Close закрывает пул соединений с БД.
func (db *PostgresArticleDB) Close() {
	db.log.Info("Closing database connection pool")
	db.pool.Close()
}

// SaveArticles сохраняет статьи одной транзакцией. Статьи без ссылки пропускаются,
// существующие по ссылке обновляются. Возвращает количество записанных статей.
func (db *PostgresArticleDB) SaveArticles(ctx context.Context, articles []domain.Article) (saved int, err error) {
	const op = "storage.postgres.SaveArticles"
	log := db.log.With(slog.String("op", op))
	if len(articles) == 0 {
		return 0, nil
	}
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(context.Background()); rollbackErr != nil {
				log.Error("Failed to rollback transaction", slog.Any("error", rollbackErr))
			}
		}
	}()

	skipped := 0
	for _, a := range articles {
		if a.Link == "" {
			skipped++
			continue
		}
		if _, err = tx.Exec(ctx, upsertArticleQuery,
			a.Title,
			a.Link,
			a.PubDate,
			a.Description,
			a.ImageURL,
			a.Publisher,
			a.PublisherImage,
		); err != nil {
			log.Error("Failed to upsert article", slog.String("link", a.Link), slog.Any("error", err))
			return 0, fmt.Errorf("%s: failed to upsert article: %w", op, err)
		}
		saved++
	}
	if err = tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	if skipped > 0 {
		log.Warn("Articles without link were not archived", slog.Int("skipped", skipped))
	}
	return saved, nil
}

// GetArticles возвращает не более n последних сохраненных статей.
// При n <= 0 используется лимит из конфигурации.
func (db *PostgresArticleDB) GetArticles(ctx context.Context, n int) ([]domain.Article, error) {
	limit := n
	if limit <= 0 {
		limit = db.defaultNewsLimit
	}
	const op = "storage.postgres.GetArticles"
	log := db.log.With(slog.String("op", op), slog.Int("limit", limit))

	rows, err := db.pool.Query(ctx, selectArticlesQuery, limit)
	if err != nil {
		log.Error("Database query failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()
	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Article, error) {
		var a domain.Article
		err := row.Scan(
			&a.Title,
			&a.Link,
			&a.PubDate,
			&a.Description,
			&a.ImageURL,
			&a.Publisher,
			&a.PublisherImage,
		)
		return a, err
	})
	if err != nil {
		log.Error("Failed to collect rows", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
	}
	log.Debug("Archived articles retrieved", slog.Int("count", len(articles)))
	return articles, nil
}
