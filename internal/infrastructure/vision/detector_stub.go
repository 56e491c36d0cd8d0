//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// YOLODetector заглушка для сборки без OpenCV.
type YOLODetector struct {
	cfg YOLOConfig
}

// NewYOLODetector возвращает ошибку, если сборка без тега gocv.
func NewYOLODetector(cfg YOLOConfig) (*YOLODetector, error) {
	_ = cfg
	return nil, errNoGoCV
}

// Close ничего не делает.
func (d *YOLODetector) Close() error {
	return nil
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionReport, error) {
	_ = ctx
	_ = imageData
	return nil, errNoGoCV
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Highlight(imageData []byte, report *entity.DetectionReport) ([]byte, error) {
	_ = imageData
	_ = report
	return nil, errNoGoCV
}

var _ port.ItemDetector = (*YOLODetector)(nil)
