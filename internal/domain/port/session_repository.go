package port

import (
	"context"

	"pcb-inspector/internal/domain/entity"
)

// SessionRepository интерфейс хранилища незавершённых проверок
type SessionRepository interface {
	// Get возвращает сессию пользователя, создаёт пустую если не найдена
	Get(ctx context.Context, userID int64) (*entity.Session, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error

	// Delete удаляет сессию пользователя
	Delete(ctx context.Context, userID int64) error
}
