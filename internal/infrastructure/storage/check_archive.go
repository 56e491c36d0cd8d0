package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

// FileCheckStore складывает результаты проверок JSON файлами в каталог
type FileCheckStore struct {
	dir string
}

// NewFileCheckStore создаёт архив в указанном каталоге
func NewFileCheckStore(dir string) *FileCheckStore {
	return &FileCheckStore{dir: dir}
}

// Save пишет проверку в <dir>/<name>.result.json. Без имени используется ID проверки.
func (s *FileCheckStore) Save(ctx context.Context, check *entity.TrayCheck, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		name = check.ID
	}
	if name == "" {
		return "", fmt.Errorf("%w: check has neither name nor id", entity.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(check, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode check: %w", err)
	}

	path := filepath.Join(s.dir, name+".result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write check: %w", err)
	}
	return path, nil
}

var _ port.CheckStore = (*FileCheckStore)(nil)
