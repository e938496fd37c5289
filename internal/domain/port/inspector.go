package port

import (
	"context"

	"pcb-inspector/internal/domain/entity"
)

// ComponentInspector интерфейс проверки платы по манифесту компонентов
type ComponentInspector interface {
	// Inspect сравнивает проверяемое фото с эталоном по областям манифеста.
	// Возвращает результат и проверяемое фото с разметкой в JPEG.
	Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*entity.InspectionResult, []byte, error)
}
