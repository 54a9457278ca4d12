package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"billiard/config"
	otelMocks "billiard/infras/otel/mocks"
	serviceMocks "billiard/internal/domains/waitinglist/service/mocks"
	"billiard/shared/timezone"
	"billiard/transport/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	waitingList *serviceMocks.MockWaitingList
	config      *config.Config
	scheduler   scheduler.Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Scheduler.WaitingList.IntervalSeconds = 3600
	cfg.Scheduler.WaitingList.ExpireAfterMinutes = 90

	f := &fixture{
		waitingList: serviceMocks.NewMockWaitingList(ctrl),
		config:      cfg,
	}

	f.scheduler = scheduler.New(cfg, f.waitingList, otelMocks.NewOtel())

	return f
}

func TestExpireWaitingListUsesConfiguredAge(t *testing.T) {
	f := newFixture(t)

	before := timezone.Now()

	f.waitingList.EXPECT().ExpireStale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			age := before.Sub(cutoff)
			assert.InDelta(t, (90 * time.Minute).Seconds(), age.Seconds(), 5)

			return 3, nil
		})

	f.scheduler.ExpireWaitingList(context.Background())
}

func TestExpireWaitingListSwallowsErrors(t *testing.T) {
	f := newFixture(t)

	f.waitingList.EXPECT().ExpireStale(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

	assert.NotPanics(t, func() { f.scheduler.ExpireWaitingList(context.Background()) })
}

func TestStartDisabled(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.scheduler.Start())
	require.NoError(t, f.scheduler.Stop())
}

func TestStartEnabled(t *testing.T) {
	f := newFixture(t)
	f.config.Scheduler.WaitingList.Enable = true

	f.waitingList.EXPECT().ExpireStale(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	require.NoError(t, f.scheduler.Start())
	require.NoError(t, f.scheduler.Stop())
}
