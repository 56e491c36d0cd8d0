package vision

import (
	"fmt"
	"strings"
)

// DefaultClasses классы модели в порядке их индексов
var DefaultClasses = []string{"burger", "drink", "fries", "nuggets", "sauce"}

// YOLOConfig параметры ONNX детектора
type YOLOConfig struct {
	ModelPath    string   // путь к .onnx модели
	Classes      []string // имена классов по индексу выхода модели
	Confidence   float64  // минимальная уверенность
	NMSThreshold float64  // порог IoU для подавления дублей
	InputSize    int      // сторона квадратного входа сети
}

// withDefaults подставляет значения по умолчанию для незаданных полей
func (c YOLOConfig) withDefaults() YOLOConfig {
	if len(c.Classes) == 0 {
		c.Classes = DefaultClasses
	}
	if c.Confidence <= 0 {
		c.Confidence = 0.25
	}
	if c.NMSThreshold <= 0 {
		c.NMSThreshold = 0.45
	}
	if c.InputSize <= 0 {
		c.InputSize = 640
	}
	return c
}

func (c YOLOConfig) validate() error {
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("model path is empty")
	}
	for i, class := range c.Classes {
		if strings.TrimSpace(class) == "" {
			return fmt.Errorf("class #%d has empty name", i)
		}
	}
	return nil
}

// className возвращает имя класса по индексу; индексы вне списка отбрасываются
func (c YOLOConfig) className(id int) (string, bool) {
	if id < 0 || id >= len(c.Classes) {
		return "", false
	}
	return c.Classes[id], true
}
