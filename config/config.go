package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tray-check/internal/infrastructure/logger"
)

// Режимы детектора
const (
	DetectorMock = "mock" // сценарный мок без модели
	DetectorGoCV = "gocv" // YOLO модель через OpenCV
)

type Config struct {
	TelegramToken      string
	DetectorMode       string
	ModelPath          string
	ModelClasses       []string
	DetectorConfidence float64
	MockScenario       string
	RulesPath          string
	OutputDir          string
	Log                logger.Config
}

// Load читает .env и переменные окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("telegram_token", "")
	v.SetDefault("detector_mode", DetectorMock)
	v.SetDefault("model_path", "models/best.onnx")
	v.SetDefault("model_classes", "burger,drink,fries,nuggets,sauce")
	v.SetDefault("detector_confidence", 0.25)
	v.SetDefault("mock_scenario", "ok")
	v.SetDefault("rules_path", "")
	v.SetDefault("output_dir", "outputs")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.AutomaticEnv()

	cfg := &Config{
		TelegramToken:      v.GetString("telegram_token"),
		DetectorMode:       strings.ToLower(strings.TrimSpace(v.GetString("detector_mode"))),
		ModelPath:          v.GetString("model_path"),
		ModelClasses:       splitList(v.GetString("model_classes")),
		DetectorConfidence: v.GetFloat64("detector_confidence"),
		MockScenario:       v.GetString("mock_scenario"),
		RulesPath:          v.GetString("rules_path"),
		OutputDir:          v.GetString("output_dir"),
		Log: logger.Config{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DetectorMode {
	case DetectorMock, DetectorGoCV:
	default:
		return fmt.Errorf("unknown DETECTOR_MODE %q (want %s or %s)", c.DetectorMode, DetectorMock, DetectorGoCV)
	}
	if c.DetectorConfidence <= 0 || c.DetectorConfidence >= 1 {
		return fmt.Errorf("DETECTOR_CONFIDENCE must be in (0, 1), got %v", c.DetectorConfidence)
	}
	return nil
}

// splitList разбирает список через запятую, пустые элементы отбрасываются
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
