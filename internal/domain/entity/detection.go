package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Detection запись детектора: класс и сколько раз он встретился
type Detection struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

// UnmarshalJSON разбирает запись, count по умолчанию 1
func (d *Detection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Class *string         `json:"class"`
		Count json.RawMessage `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: detection must be an object with a string class", ErrInvalidInput)
	}
	if raw.Class == nil {
		return fmt.Errorf("%w: detection without class", ErrInvalidInput)
	}

	count := 1
	if len(raw.Count) > 0 && string(raw.Count) != "null" {
		n, err := parseCount(raw.Count)
		if err != nil {
			return fmt.Errorf("detection %q: %w", *raw.Class, err)
		}
		count = n
	}

	d.Class = *raw.Class
	d.Count = count
	return d.Validate()
}

// Validate проверяет запись
func (d Detection) Validate() error {
	if strings.TrimSpace(d.Class) == "" {
		return fmt.Errorf("%w: detection without class", ErrInvalidInput)
	}
	if d.Count < 0 {
		return fmt.Errorf("%w: negative count %d for %q", ErrInvalidInput, d.Count, d.Class)
	}
	return nil
}

// ParseDetections разбирает JSON массив записей детектора
func ParseDetections(data []byte) ([]Detection, error) {
	var detections []Detection
	if err := json.Unmarshal(data, &detections); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return detections, nil
}

// DetectedObject один предмет, найденный на изображении
type DetectedObject struct {
	Class      string      // имя класса
	Confidence float64     // уверенность модели
	Box        BoundingBox // где предмет находится
}

// DetectionReport хранит итог анализа изображения.
type DetectionReport struct {
	ImageWidth  int              // ширина изображения
	ImageHeight int              // высота изображения
	Objects     []DetectedObject // найденные предметы
}

// Detections сворачивает найденные предметы в записи "класс -> количество".
// Записи отсортированы по имени класса.
func (r *DetectionReport) Detections() []Detection {
	if r == nil {
		return []Detection{}
	}

	counts := make(ItemCount)
	for _, obj := range r.Objects {
		counts[obj.Class]++
	}

	out := make([]Detection, 0, len(counts))
	for _, class := range counts.Classes() {
		out = append(out, Detection{Class: class, Count: counts[class]})
	}
	return out
}

// HasObjects сообщает, найдено ли хоть что-нибудь
func (r *DetectionReport) HasObjects() bool {
	return r != nil && len(r.Objects) > 0
}
