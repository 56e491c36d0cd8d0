package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tray-check/config"
	"tray-check/internal/container"
	"tray-check/internal/domain/port"
	"tray-check/internal/infrastructure/logger"
	"tray-check/internal/infrastructure/report"
	"tray-check/internal/infrastructure/storage"
	"tray-check/internal/infrastructure/vision"
)

var rootCmd = &cobra.Command{
	Use:   "tray-check",
	Short: "Проверка подноса по заказу",
	Long: `tray-check находит предметы на фото подноса и сверяет их с заказом,
включая правила комплектации (например, к наггетсам нужен соус).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(botCmd, checkCmd, rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		l, logErr := logger.New(logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

// appEnv собранное приложение и функция освобождения ресурсов
type appEnv struct {
	cfg       *config.Config
	logger    *zap.Logger
	container *container.Container
	close     func()
}

// buildApp читает конфиг, поднимает логгер, детектор и сервисы.
// scenario переопределяет MOCK_SCENARIO, если не пустой.
func buildApp(scenario string) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rules, err := storage.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, err
	}

	if scenario == "" {
		scenario = cfg.MockScenario
	}

	var (
		detector port.ItemDetector
		closeFn  = func() { _ = l.Sync() }
	)
	switch cfg.DetectorMode {
	case config.DetectorGoCV:
		yolo, err := vision.NewYOLODetector(vision.YOLOConfig{
			ModelPath:  cfg.ModelPath,
			Classes:    cfg.ModelClasses,
			Confidence: cfg.DetectorConfidence,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load detector: %w", err)
		}
		detector = yolo
		closeFn = func() {
			_ = yolo.Close()
			_ = l.Sync()
		}
	default:
		detector = vision.NewMockDetector(scenario)
	}

	l.Info("detector ready",
		zap.String("mode", cfg.DetectorMode),
		zap.String("scenario", scenario),
		zap.Int("rules", len(rules)),
	)

	c := container.New(container.Deps{
		UserRepo:  storage.NewMemoryUserRepository(),
		Detector:  detector,
		Describer: report.NewTextDescriber(),
		Store:     storage.NewFileCheckStore(cfg.OutputDir),
		Rules:     rules,
		Logger:    l,
	})

	return &appEnv{cfg: cfg, logger: l, container: c, close: closeFn}, nil
}
