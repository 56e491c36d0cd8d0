package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
	"tray-check/internal/domain/reconcile"
)

// CheckService проверяет фото подноса по заказу
type CheckService struct {
	users     *UserService
	detector  port.ItemDetector
	describer port.CheckDescriber
	store     port.CheckStore
	rules     entity.RuleSet
	logger    *zap.Logger
	now       func() time.Time
}

// CheckRequest одна проверка: заказ и фото
type CheckRequest struct {
	Order       *entity.Order
	Image       []byte
	OrderFile   string // откуда взят заказ, для архива
	ImageFile   string // откуда взято фото, для архива
	Scenario    string // сценарий мок-детектора, для архива
	ArchiveName string // имя файла в архиве, по умолчанию ID проверки
}

// CheckOutput содержит результат проверки, текст отчёта и картинку с подсветкой.
type CheckOutput struct {
	Check       *entity.TrayCheck
	Text        string
	Highlighted []byte
	ArchivePath string
}

// NewCheckService создаёт сервис проверки подносов.
// store и describer можно не передавать: тогда архива и текста не будет.
func NewCheckService(
	users *UserService,
	detector port.ItemDetector,
	describer port.CheckDescriber,
	store port.CheckStore,
	rules entity.RuleSet,
	logger *zap.Logger,
) *CheckService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckService{
		users:     users,
		detector:  detector,
		describer: describer,
		store:     store,
		rules:     rules,
		logger:    logger,
		now:       time.Now,
	}
}

// Rules возвращает действующие правила зависимостей
func (s *CheckService) Rules() entity.RuleSet {
	return s.rules
}

// Run запускает детектор и сверяет найденное с заказом.
func (s *CheckService) Run(ctx context.Context, req CheckRequest) (*CheckOutput, error) {
	if s.detector == nil {
		return nil, entity.ErrDetectorNotConfigured
	}
	if req.Order == nil {
		return nil, entity.ErrOrderNotSet
	}

	report, err := s.detector.Detect(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	detections := report.Detections()
	result, err := reconcile.Check(req.Order.Items, detections, s.rules)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	check := &entity.TrayCheck{
		ID:            uuid.NewString(),
		Timestamp:     s.now().Truncate(time.Second),
		OrderFile:     req.OrderFile,
		ImageFile:     req.ImageFile,
		Scenario:      req.Scenario,
		OrderItems:    req.Order.Items,
		DetectedItems: detections,
		Result:        result,
	}
	log := s.logger.With(zap.String("check_id", check.ID))

	out := &CheckOutput{Check: check}
	if report.HasObjects() {
		highlighted, err := s.detector.Highlight(req.Image, report)
		if err != nil {
			log.Warn("highlight failed", zap.Error(err))
		}
		out.Highlighted = highlighted
	}

	if s.describer != nil {
		out.Text = s.describer.Describe(check)
	}

	if s.store != nil {
		path, err := s.store.Save(ctx, check, req.ArchiveName)
		if err != nil {
			log.Warn("archive check failed", zap.Error(err))
		}
		out.ArchivePath = path
	}

	log.Info("tray checked",
		zap.Bool("satisfied", result.Satisfied()),
		zap.Int("missing", len(result.Missing)),
		zap.Int("extra", len(result.Extra)),
		zap.Int("rule_missing", len(result.RuleMissing)),
	)

	return out, nil
}

// RunBatch проверяет несколько фото параллельно. Порядок результатов
// совпадает с порядком запросов; первая ошибка отменяет остальные проверки.
func (s *CheckService) RunBatch(ctx context.Context, reqs []CheckRequest, parallelism int) ([]*CheckOutput, error) {
	outputs := make([]*CheckOutput, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, req := range reqs {
		g.Go(func() error {
			out, err := s.Run(gctx, req)
			if err != nil {
				return fmt.Errorf("check #%d: %w", i, err)
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// CheckPhoto проверяет фото, присланное пользователем, по его текущему заказу
// и возвращает его в главное меню.
func (s *CheckService) CheckPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*CheckOutput, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if user.Order == nil {
		return nil, entity.ErrOrderNotSet
	}
	order := user.Order

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	out, runErr := s.Run(ctx, CheckRequest{Order: order, Image: photo})

	if runErr != nil {
		// даём переснять фото по тому же заказу
		if _, err := s.users.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto); err != nil {
			return nil, err
		}
		return nil, runErr
	}

	if _, err := s.users.Cancel(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return out, nil
}
