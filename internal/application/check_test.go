package app

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tray-check/internal/domain/entity"
	"tray-check/internal/infrastructure/report"
	"tray-check/internal/infrastructure/storage"
	"tray-check/internal/infrastructure/vision"
)

type fakeDetector struct {
	report       *entity.DetectionReport
	err          error
	highlighted  []byte
	highlightErr error
}

func (d *fakeDetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectionReport, error) {
	return d.report, d.err
}

func (d *fakeDetector) Highlight(imageData []byte, r *entity.DetectionReport) ([]byte, error) {
	return d.highlighted, d.highlightErr
}

func fullOrder() *entity.Order {
	return &entity.Order{Items: entity.ItemCount{"burger": 1, "fries": 1, "drink": 1, "nuggets": 1}}
}

func newService(t *testing.T, detector *fakeDetector, withStore bool) *CheckService {
	t.Helper()
	users := NewUserService(storage.NewMemoryUserRepository())

	var svc *CheckService
	if withStore {
		svc = NewCheckService(users, detector, report.NewTextDescriber(), storage.NewFileCheckStore(t.TempDir()), entity.DefaultRules(), nil)
	} else {
		svc = NewCheckService(users, detector, report.NewTextDescriber(), nil, entity.DefaultRules(), nil)
	}
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCheckService_RunWithMockScenarios(t *testing.T) {
	users := NewUserService(storage.NewMemoryUserRepository())
	cases := []struct {
		scenario    string
		missing     entity.ItemCount
		ruleMissing entity.ItemCount
	}{
		{scenario: vision.ScenarioOK, missing: entity.ItemCount{}, ruleMissing: entity.ItemCount{}},
		{scenario: vision.ScenarioMissingItem, missing: entity.ItemCount{"fries": 1}, ruleMissing: entity.ItemCount{}},
		{scenario: vision.ScenarioMissingSauce, missing: entity.ItemCount{}, ruleMissing: entity.ItemCount{"sauce": 1}},
	}

	for _, tc := range cases {
		t.Run(tc.scenario, func(t *testing.T) {
			svc := NewCheckService(users, vision.NewMockDetector(tc.scenario), report.NewTextDescriber(), nil, entity.DefaultRules(), nil)

			out, err := svc.Run(context.Background(), CheckRequest{Order: fullOrder(), Scenario: tc.scenario})
			require.NoError(t, err)
			require.Equal(t, tc.missing, out.Check.Result.Missing)
			require.Empty(t, out.Check.Result.Extra)
			require.Equal(t, tc.ruleMissing, out.Check.Result.RuleMissing)
			require.Nil(t, out.Highlighted)
			require.NotEmpty(t, out.Text)
			require.Empty(t, out.ArchivePath)
		})
	}
}

func TestCheckService_RunArchivesAndHighlights(t *testing.T) {
	detector := &fakeDetector{
		report: &entity.DetectionReport{Objects: []entity.DetectedObject{
			{Class: "burger", Confidence: 0.9},
			{Class: "burger", Confidence: 0.8},
		}},
		highlighted: []byte("jpeg"),
	}
	svc := newService(t, detector, true)

	out, err := svc.Run(context.Background(), CheckRequest{
		Order:       &entity.Order{Items: entity.ItemCount{"burger": 1}},
		OrderFile:   "orders/order_001.json",
		ArchiveName: "order_001__ok",
	})
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), out.Highlighted)
	require.Equal(t, entity.ItemCount{"burger": 1}, out.Check.Result.Extra)
	require.Equal(t, []entity.Detection{{Class: "burger", Count: 2}}, out.Check.DetectedItems)
	require.NotEmpty(t, out.Check.ID)
	require.Equal(t, 2026, out.Check.Timestamp.Year())

	require.FileExists(t, out.ArchivePath)
	data, err := os.ReadFile(out.ArchivePath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"order_file": "orders/order_001.json"`)
}

func TestCheckService_RunHighlightErrorIsNotFatal(t *testing.T) {
	detector := &fakeDetector{
		report:       &entity.DetectionReport{Objects: []entity.DetectedObject{{Class: "burger"}}},
		highlightErr: errors.New("boom"),
	}
	svc := newService(t, detector, false)

	out, err := svc.Run(context.Background(), CheckRequest{Order: &entity.Order{Items: entity.ItemCount{"burger": 1}}})
	require.NoError(t, err)
	require.Nil(t, out.Highlighted)
	require.True(t, out.Check.Result.Satisfied())
}

func TestCheckService_RunErrors(t *testing.T) {
	users := NewUserService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	svc := NewCheckService(users, nil, nil, nil, nil, nil)
	_, err := svc.Run(ctx, CheckRequest{Order: fullOrder()})
	require.ErrorIs(t, err, entity.ErrDetectorNotConfigured)

	svc = newService(t, &fakeDetector{report: &entity.DetectionReport{}}, false)
	_, err = svc.Run(ctx, CheckRequest{})
	require.ErrorIs(t, err, entity.ErrOrderNotSet)

	detectErr := errors.New("camera on fire")
	svc = newService(t, &fakeDetector{err: detectErr}, false)
	_, err = svc.Run(ctx, CheckRequest{Order: fullOrder()})
	require.ErrorIs(t, err, detectErr)

	svc = newService(t, &fakeDetector{report: &entity.DetectionReport{}}, false)
	_, err = svc.Run(ctx, CheckRequest{Order: &entity.Order{Items: entity.ItemCount{"burger": -1}}})
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestCheckService_RunBatch(t *testing.T) {
	users := NewUserService(storage.NewMemoryUserRepository())
	svc := NewCheckService(users, vision.NewMockDetector(vision.ScenarioMissingItem), nil, nil, entity.DefaultRules(), nil)

	reqs := make([]CheckRequest, 8)
	for i := range reqs {
		reqs[i] = CheckRequest{Order: fullOrder(), ImageFile: string(rune('a' + i))}
	}

	outs, err := svc.RunBatch(context.Background(), reqs, 3)
	require.NoError(t, err)
	require.Len(t, outs, len(reqs))
	for i, out := range outs {
		require.Equal(t, reqs[i].ImageFile, out.Check.ImageFile)
		require.Equal(t, entity.ItemCount{"fries": 1}, out.Check.Result.Missing)
	}
}

func TestCheckService_RunBatchFails(t *testing.T) {
	svc := newService(t, &fakeDetector{report: &entity.DetectionReport{}}, false)

	_, err := svc.RunBatch(context.Background(), []CheckRequest{{Order: fullOrder()}, {}}, 0)
	require.ErrorIs(t, err, entity.ErrOrderNotSet)
}

func TestCheckService_CheckPhoto(t *testing.T) {
	svc := newService(t, &fakeDetector{report: &entity.DetectionReport{Objects: []entity.DetectedObject{{Class: "burger"}}}}, false)
	ctx := context.Background()

	_, err := svc.CheckPhoto(ctx, 1, 10, []byte("photo"))
	require.ErrorIs(t, err, entity.ErrOrderNotSet)

	_, err = svc.users.AcceptOrder(ctx, 1, 10, []byte(`{"items": {"burger": 1}}`))
	require.NoError(t, err)

	out, err := svc.CheckPhoto(ctx, 1, 10, []byte("photo"))
	require.NoError(t, err)
	require.True(t, out.Check.Result.Satisfied())

	user, err := svc.users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Nil(t, user.Order)
}

func TestCheckService_CheckPhotoKeepsOrderOnFailure(t *testing.T) {
	svc := newService(t, &fakeDetector{err: errors.New("blurry")}, false)
	ctx := context.Background()

	_, err := svc.users.AcceptOrder(ctx, 1, 10, []byte(`{"items": {"burger": 1}}`))
	require.NoError(t, err)

	_, err = svc.CheckPhoto(ctx, 1, 10, []byte("photo"))
	require.Error(t, err)

	user, err := svc.users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
	require.NotNil(t, user.Order)
}
