package vision

import (
	"context"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

// Сценарии мок-детектора
const (
	ScenarioOK           = "ok"            // всё на месте
	ScenarioMissingItem  = "missing_item"  // нет картошки
	ScenarioMissingSauce = "missing_sauce" // наггетсы есть, соуса нет
)

// Scenarios перечисляет поддерживаемые сценарии
var Scenarios = []string{ScenarioOK, ScenarioMissingItem, ScenarioMissingSauce}

// MockDetector не смотрит на изображение и возвращает поднос по сценарию
type MockDetector struct {
	Scenario string
}

// NewMockDetector создаёт мок-детектор. Неизвестный сценарий работает как "ok".
func NewMockDetector(scenario string) *MockDetector {
	return &MockDetector{Scenario: scenario}
}

// Detect возвращает полный поднос без предметов, выкинутых сценарием
func (d *MockDetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var skip string
	switch d.Scenario {
	case ScenarioMissingItem:
		skip = "fries"
	case ScenarioMissingSauce:
		skip = "sauce"
	}

	objects := make([]entity.DetectedObject, 0, 5)
	for _, class := range []string{"burger", "fries", "drink", "nuggets", "sauce"} {
		if class == skip {
			continue
		}
		objects = append(objects, entity.DetectedObject{Class: class, Confidence: 1})
	}

	return &entity.DetectionReport{Objects: objects}, nil
}

// Highlight мок не умеет рисовать, картинки с подсветкой не будет
func (d *MockDetector) Highlight(imageData []byte, report *entity.DetectionReport) ([]byte, error) {
	return nil, nil
}

var _ port.ItemDetector = (*MockDetector)(nil)
