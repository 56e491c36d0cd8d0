package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	app "tray-check/internal/application"
	"tray-check/internal/infrastructure/storage"
	"tray-check/internal/infrastructure/vision"
)

var (
	orderPath   string
	imagePaths  []string
	scenario    string
	parallelism int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Проверить фото подноса по заказу из файла",
	Long: `Проверяет одно или несколько фото подноса по заказу из JSON файла,
печатает отчёт и сохраняет результат в OUTPUT_DIR.

Примеры:
  tray-check check --order orders/order_001.json --image demo_images/test_001.jpg
  tray-check check --order orders/order_001.json --image a.jpg --image b.jpg
  tray-check check --order orders/order_001.json --image a.jpg --scenario missing_sauce`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&orderPath, "order", "", "путь к JSON заказа, например orders/order_001.json")
	checkCmd.Flags().StringArrayVar(&imagePaths, "image", nil, "путь к фото подноса (можно несколько раз)")
	checkCmd.Flags().StringVar(&scenario, "scenario", "", "сценарий мок-детектора: ok, missing_item, missing_sauce")
	checkCmd.Flags().IntVar(&parallelism, "parallel", 4, "сколько фото проверять одновременно")
	_ = checkCmd.MarkFlagRequired("order")
	_ = checkCmd.MarkFlagRequired("image")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateScenario(scenario); err != nil {
		return err
	}

	a, err := buildApp(scenario)
	if err != nil {
		return err
	}
	defer a.close()

	order, err := storage.LoadOrder(orderPath)
	if err != nil {
		return err
	}

	usedScenario := scenario
	if usedScenario == "" {
		usedScenario = a.cfg.MockScenario
	}

	reqs := make([]app.CheckRequest, 0, len(imagePaths))
	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		reqs = append(reqs, app.CheckRequest{
			Order:       order,
			Image:       data,
			OrderFile:   orderPath,
			ImageFile:   path,
			Scenario:    usedScenario,
			ArchiveName: archiveName(orderPath, path, usedScenario, len(imagePaths) > 1),
		})
	}

	outs, err := a.container.CheckService.RunBatch(cmd.Context(), reqs, parallelism)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, out := range outs {
		if len(outs) > 1 {
			fmt.Fprintf(w, "\n=== %s\n", reqs[i].ImageFile)
		}
		fmt.Fprintln(w, out.Text)
		if out.ArchivePath != "" {
			a.logger.Info("result saved", zap.String("path", out.ArchivePath))
		}
	}

	return nil
}

// validateScenario пропускает пустой сценарий (берётся из конфига) и известные мок-сценарии
func validateScenario(s string) error {
	if s == "" || slices.Contains(vision.Scenarios, s) {
		return nil
	}
	return fmt.Errorf("unknown scenario %q (want one of %s)", s, strings.Join(vision.Scenarios, ", "))
}

// archiveName строит имя <заказ>__<сценарий>; при нескольких фото добавляется имя фото
func archiveName(orderPath, imagePath, scenario string, withImage bool) string {
	name := strings.TrimSuffix(filepath.Base(orderPath), filepath.Ext(orderPath)) + "__" + scenario
	if withImage {
		name += "__" + strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	}
	return name
}
