package port

import (
	"context"

	"tray-check/internal/domain/entity"
)

// ItemDetector интерфейс детектора предметов на подносе
type ItemDetector interface {
	// Detect анализирует изображение и возвращает найденные предметы
	Detect(ctx context.Context, imageData []byte) (*entity.DetectionReport, error)

	// Highlight создаёт изображение с подписанными рамками предметов
	Highlight(imageData []byte, report *entity.DetectionReport) ([]byte, error)
}
