//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"

	"gocv.io/x/gocv"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

// YOLODetector прогоняет фото через YOLO модель в формате ONNX.
// gocv.Net не потокобезопасен, поэтому вызовы сети идут под мьютексом.
type YOLODetector struct {
	cfg YOLOConfig
	mu  sync.Mutex
	net gocv.Net
}

// NewYOLODetector загружает модель
func NewYOLODetector(cfg YOLOConfig) (*YOLODetector, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model %s", cfg.ModelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set target: %w", err)
	}

	return &YOLODetector{cfg: cfg, net: net}, nil
}

// Close освобождает модель
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// Detect находит предметы на фото подноса.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	size := d.cfg.InputSize
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	d.mu.Unlock()
	defer out.Close()

	objects, err := d.parseOutput(out, mat.Cols(), mat.Rows())
	if err != nil {
		return nil, err
	}

	return &entity.DetectionReport{
		ImageWidth:  mat.Cols(),
		ImageHeight: mat.Rows(),
		Objects:     objects,
	}, nil
}

// parseOutput разбирает выход вида [1, 4+классы, кандидаты]:
// первые четыре строки cx, cy, w, h, дальше уверенность по каждому классу.
func (d *YOLODetector) parseOutput(out gocv.Mat, imgW, imgH int) ([]entity.DetectedObject, error) {
	dims := out.Size()
	if len(dims) != 3 || dims[1] <= 4 {
		return nil, fmt.Errorf("unexpected model output shape %v", dims)
	}
	rows, cols := dims[1], dims[2]

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read model output: %w", err)
	}
	if len(data) < rows*cols {
		return nil, fmt.Errorf("model output is truncated: %d < %d", len(data), rows*cols)
	}

	xFactor := float64(imgW) / float64(d.cfg.InputSize)
	yFactor := float64(imgH) / float64(d.cfg.InputSize)

	var (
		boxes   []image.Rectangle
		scores  []float32
		classes []int
	)
	for i := 0; i < cols; i++ {
		bestID, bestScore := -1, float32(0)
		for c := 0; c < rows-4; c++ {
			if s := data[(4+c)*cols+i]; s > bestScore {
				bestID, bestScore = c, s
			}
		}
		if bestID < 0 || float64(bestScore) < d.cfg.Confidence {
			continue
		}

		cx, cy := float64(data[i]), float64(data[cols+i])
		w, h := float64(data[2*cols+i]), float64(data[3*cols+i])
		left := int((cx - w/2) * xFactor)
		top := int((cy - h/2) * yFactor)
		boxes = append(boxes, image.Rect(left, top, left+int(w*xFactor), top+int(h*yFactor)))
		scores = append(scores, bestScore)
		classes = append(classes, bestID)
	}

	if len(boxes) == 0 {
		return []entity.DetectedObject{}, nil
	}

	keep := gocv.NMSBoxes(boxes, scores, float32(d.cfg.Confidence), float32(d.cfg.NMSThreshold))

	objects := make([]entity.DetectedObject, 0, len(keep))
	for _, idx := range keep {
		name, ok := d.cfg.className(classes[idx])
		if !ok {
			continue
		}
		r := boxes[idx]
		objects = append(objects, entity.DetectedObject{
			Class:      name,
			Confidence: float64(scores[idx]),
			Box: entity.BoundingBox{
				X:      r.Min.X,
				Y:      r.Min.Y,
				Width:  r.Dx(),
				Height: r.Dy(),
			},
		})
	}
	return objects, nil
}

// Highlight рисует рамки и подписи найденных предметов и возвращает JPEG.
func (d *YOLODetector) Highlight(imageData []byte, report *entity.DetectionReport) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	green := color.RGBA{G: 255, A: 255}
	for _, obj := range report.Objects {
		b := obj.Box
		rect := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
		gocv.Rectangle(&mat, rect, green, 2)

		// подпись центрируем над рамкой
		label := fmt.Sprintf("%s %.2f", obj.Class, obj.Confidence)
		textSize := gocv.GetTextSize(label, gocv.FontHersheySimplex, 0.5, 1)
		cx, _ := b.Center()
		gocv.PutText(&mat, label, image.Pt(maxInt(cx-textSize.X/2, 0), maxInt(b.Y-6, 12)), gocv.FontHersheySimplex, 0.5, green, 1)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ port.ItemDetector = (*YOLODetector)(nil)
