package port

import (
	"tray-check/internal/domain/entity"
)

// CheckDescriber интерфейс, превращающий результат сверки в текст
type CheckDescriber interface {
	// Describe формирует человекочитаемый отчёт по проверке
	Describe(check *entity.TrayCheck) string
}
