package reconcile

import (
	"fmt"

	"tray-check/internal/domain/entity"
)

// Aggregate суммирует количества по классам.
// Класс попадает в результат, только если его назвала хотя бы одна запись.
func Aggregate(detections []entity.Detection) (entity.ItemCount, error) {
	counts := make(entity.ItemCount, len(detections))
	for i, d := range detections {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("detection #%d: %w", i, err)
		}
		counts[d.Class] += d.Count
	}
	return counts, nil
}
