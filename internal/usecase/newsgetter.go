package usecase

import (
	"context"

	"tamilnews/internal/domain"
)

// NewsStorage определяет интерфейс для чтения архива статей.
type NewsStorage interface {
	GetArticles(ctx context.Context, n int) ([]domain.Article, error)
}

// NewsGetterUseCase предоставляет доступ к архиву ранее загруженных статей.
type NewsGetterUseCase struct {
	storage NewsStorage
}

func NewNewsGetterUseCase(s NewsStorage) *NewsGetterUseCase {
	return &NewsGetterUseCase{storage: s}
}

// GetArchive возвращает не более limit последних архивных статей.
func (us *NewsGetterUseCase) GetArchive(ctx context.Context, limit int) ([]domain.Article, error) {
	return us.storage.GetArticles(ctx, limit)
}
