package storage

import (
	"context"

	"tamilnews/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage определяет общий интерфейс архива статей.
// Объединяет методы для сохранения и получения статей, а также закрытия соединения.
type Storage interface {
	SaveArticles(ctx context.Context, articles []domain.Article) (int, error)
	GetArticles(ctx context.Context, n int) ([]domain.Article, error)
	Close()
}

// Pool подмножество методов *pgxpool.Pool, которое нужно хранилищу.
// Позволяет подменять пул в тестах.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}
