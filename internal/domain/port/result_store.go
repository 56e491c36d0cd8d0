package port

import (
	"context"

	"tray-check/internal/domain/entity"
)

// CheckStore интерфейс архива результатов проверок
type CheckStore interface {
	// Save сохраняет проверку и возвращает путь к записи
	Save(ctx context.Context, check *entity.TrayCheck, name string) (string, error)
}
