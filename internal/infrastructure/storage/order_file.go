package storage

import (
	"fmt"
	"os"

	"tray-check/internal/domain/entity"
)

// LoadOrder читает заказ из JSON файла вида {"items": {...}}
func LoadOrder(path string) (*entity.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read order %s: %w", path, err)
	}

	order, err := entity.ParseOrder(data)
	if err != nil {
		return nil, fmt.Errorf("parse order %s: %w", path, err)
	}
	return order, nil
}
