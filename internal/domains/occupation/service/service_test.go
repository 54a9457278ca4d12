package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"billiard/config"
	"billiard/infras/otel/mocks"
	"billiard/infras/postgres"
	pgMocks "billiard/infras/postgres/mocks"
	bookingMocks "billiard/internal/domains/booking/mocks"
	occMocks "billiard/internal/domains/occupation/mocks"
	"billiard/internal/domains/occupation/model"
	"billiard/internal/domains/occupation/model/dto"
	"billiard/internal/domains/occupation/service"
	tableMocks "billiard/internal/domains/table/mocks"
	tableModel "billiard/internal/domains/table/model"
	wlMocks "billiard/internal/domains/waitinglist/mocks"
	cacheMocks "billiard/shared/cache/mocks"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	gModel "billiard/shared/model"
	"billiard/shared/nullable"
	"billiard/shared/timezone"
)

const (
	tableID      = "0b7e4c9a-8f0e-4a43-9d7c-5d0f3b1f7a11"
	occupationID = "5a3c9f0e-1d2b-4c5e-8f7a-9b0c1d2e3f40"
)

type fixture struct {
	svc         service.Occupation
	repo        *occMocks.MockOccupation
	tableRepo   *tableMocks.MockTable
	waitingRepo *wlMocks.MockWaitingList
	booking     *bookingMocks.MockBooking
	transactor  *pgMocks.MockTransactor
	cache       *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        occMocks.NewMockOccupation(ctrl),
		tableRepo:   tableMocks.NewMockTable(ctrl),
		waitingRepo: wlMocks.NewMockWaitingList(ctrl),
		booking:     bookingMocks.NewMockBooking(ctrl),
		transactor:  pgMocks.NewMockTransactor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.tableRepo, f.waitingRepo, f.booking, f.transactor, cfg, f.cache, mocks.NewOtel())

	f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()

	f.cache.EXPECT().Generation(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	f.cache.EXPECT().BumpGeneration(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().SaveIfGeneration(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func sampleOccupation(start time.Time, finish *time.Time) model.Occupation {
	return model.Occupation{
		ID:         occupationID,
		TableID:    tableID,
		StartedAt:  start,
		FinishedAt: finish,
		Metadata:   gModel.NewMetadata(timezone.Now()),
	}
}

func TestOccupationService_Occupy(t *testing.T) {
	start := timezone.Now().Add(time.Hour)
	finish := start.Add(time.Hour)
	window := model.Window{StartedAt: start, FinishedAt: &finish}

	tests := []struct {
		name      string
		req       dto.OccupyRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful occupation",
			req:  dto.OccupyRequest{TableID: tableID, StartedAt: &start, FinishedAt: &finish},
			setupMock: func(f fixture) {
				f.booking.EXPECT().ValidateWindow(&start, &finish).Return(window, nil)
				f.booking.EXPECT().Book(gomock.Any(), gomock.Any(), tableID, window).
					Return(sampleOccupation(start, &finish), nil)
			},
		},
		{
			name: "start in the past",
			req:  dto.OccupyRequest{TableID: tableID, StartedAt: &start},
			setupMock: func(f fixture) {
				f.booking.EXPECT().ValidateWindow(&start, nil).
					Return(model.Window{}, failure.UnprocessableEntity("'started_at' must be greater than or equal to the current time."))
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "table already occupied",
			req:  dto.OccupyRequest{TableID: tableID, StartedAt: &start, FinishedAt: &finish},
			setupMock: func(f fixture) {
				f.booking.EXPECT().ValidateWindow(&start, &finish).Return(window, nil)
				f.booking.EXPECT().Book(gomock.Any(), gomock.Any(), tableID, window).
					Return(model.Occupation{}, failure.UnprocessableEntity("table is occupied"))
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "missing table",
			req:  dto.OccupyRequest{TableID: tableID, StartedAt: &start, FinishedAt: &finish},
			setupMock: func(f fixture) {
				f.booking.EXPECT().ValidateWindow(&start, &finish).Return(window, nil)
				f.booking.EXPECT().Book(gomock.Any(), gomock.Any(), tableID, window).
					Return(model.Occupation{}, failure.NotFound("table is not found"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Occupy(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, occupationID, res.ID)
			assert.NotNil(t, res.FinishedAt)
		})
	}
}

func TestOccupationService_OccupyOpenRoundTrips(t *testing.T) {
	f := newFixture(t)
	start := timezone.Now().Add(time.Minute)
	window := model.Window{StartedAt: start}

	f.booking.EXPECT().ValidateWindow(nil, nil).Return(window, nil)
	f.booking.EXPECT().Book(gomock.Any(), gomock.Any(), tableID, window).Return(sampleOccupation(start, nil), nil)

	res, err := f.svc.Occupy(context.Background(), dto.OccupyRequest{TableID: tableID})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Nil(t, res.FinishedAt)
}

func TestOccupationService_GetAll(t *testing.T) {
	t.Run("defaults to newest first", func(t *testing.T) {
		f := newFixture(t)
		start := timezone.Now()

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 10, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gomock.Any()).
			Return([]model.Occupation{sampleOccupation(start, nil)}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 10}, tableID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalPages)
		require.NotNil(t, res.TableID)
		assert.Equal(t, tableID, *res.TableID)
		assert.Len(t, res.TableOccupations, 1)
	})

	t.Run("sort outside the allow-list", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "customer_name"}, "")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestOccupationService_Get(t *testing.T) {
	start := timezone.Now()

	tests := []struct {
		name      string
		withTable bool
		setupMock func(f fixture)
		wantCode  int
		wantTable bool
	}{
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Occupation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "with table",
			withTable: true,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleOccupation(start, nil), nil)
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(tableModel.Table{ID: tableID, Number: 3, Brand: tableModel.BrandRasson}, nil)
			},
			wantTable: true,
		},
		{
			name:      "dangling table reference",
			withTable: true,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleOccupation(start, nil), nil)
				f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tableModel.Table{}, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), occupationID, tt.withTable)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, res.Table != nil)
		})
	}
}

func TestOccupationService_Update(t *testing.T) {
	start := timezone.Now().Add(time.Hour)
	finish := start.Add(time.Hour)
	later := finish.Add(time.Hour)
	before := start.Add(-time.Minute)
	current := sampleOccupation(start, &finish)

	tests := []struct {
		name       string
		req        dto.UpdateOccupationRequest
		setupMock  func(f fixture)
		wantCode   int
		wantOpen   bool
		wantFinish *time.Time
	}{
		{
			name: "missing occupation",
			req:  dto.UpdateOccupationRequest{FinishedAt: nullable.From(later)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Occupation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "no-op update skips persistence",
			req:  dto.UpdateOccupationRequest{FinishedAt: nullable.From(finish)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
			},
			wantFinish: &finish,
		},
		{
			name: "finish before start",
			req:  dto.UpdateOccupationRequest{FinishedAt: nullable.From(before)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "extension conflicts with the next occupation",
			req:  dto.UpdateOccupationRequest{FinishedAt: nullable.From(later)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.booking.EXPECT().
					CheckAvailability(gomock.Any(), gomock.Any(), tableID, model.Window{StartedAt: start, FinishedAt: &later}, occupationID).
					Return(failure.UnprocessableEntity("table is occupied"))
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "explicit null reopens",
			req:  dto.UpdateOccupationRequest{FinishedAt: nullable.Null[time.Time]()},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.booking.EXPECT().
					CheckAvailability(gomock.Any(), gomock.Any(), tableID, model.Window{StartedAt: start}, occupationID).
					Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, model.FieldFinishedAt)
						assert.Nil(t, fields[model.FieldFinishedAt])

						return nil
					})
			},
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), occupationID, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			if tt.wantOpen {
				assert.Nil(t, res.FinishedAt)

				return
			}

			require.NotNil(t, res.FinishedAt)
			assert.Equal(t, timezone.Format(*tt.wantFinish, time.RFC3339), *res.FinishedAt)
		})
	}
}

func TestOccupationService_Delete(t *testing.T) {
	start := timezone.Now().Add(time.Hour)

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Occupation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "linked to a waiting list entry",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleOccupation(start, nil), nil)
				f.waitingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "successful delete returns the snapshot",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleOccupation(start, nil), nil)
				f.waitingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Delete(context.Background(), occupationID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, occupationID, res.ID)
		})
	}
}

type cachedFixture struct {
	svc         service.Occupation
	repo        *occMocks.MockOccupation
	waitingRepo *wlMocks.MockWaitingList
	memory      *cacheMocks.MemoryCache
}

func newCachedFixture(t *testing.T) cachedFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := cachedFixture{
		repo:        occMocks.NewMockOccupation(ctrl),
		waitingRepo: wlMocks.NewMockWaitingList(ctrl),
		memory:      cacheMocks.NewMemoryCache(),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, tableMocks.NewMockTable(ctrl), f.waitingRepo, bookingMocks.NewMockBooking(ctrl),
		pgMocks.NewMockTransactor(ctrl), cfg, f.memory, mocks.NewOtel())

	return f
}

func TestOccupationService_GetAfterDeleteIsNotFound(t *testing.T) {
	f := newCachedFixture(t)
	stored := sampleOccupation(timezone.Now().Add(time.Hour), nil)
	deleted := false

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Occupation, error) {
			if deleted {
				return model.Occupation{}, nil
			}

			return stored, nil
		}).AnyTimes()
	f.waitingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup) error {
			deleted = true

			return nil
		})

	_, err := f.svc.Get(context.Background(), occupationID, false)
	require.NoError(t, err)

	cacheKey := model.CacheGet + ":" + occupationID + ":false"
	require.Eventually(t, func() bool { return f.memory.Has(cacheKey) }, time.Second, time.Millisecond)

	_, err = f.svc.Delete(context.Background(), occupationID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), occupationID, false)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestOccupationService_GetRacingDeleteDoesNotRefillCache(t *testing.T) {
	f := newCachedFixture(t)
	stored := sampleOccupation(timezone.Now().Add(time.Hour), nil)
	deleted, raced := false, false

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Occupation, error) {
			if deleted {
				return model.Occupation{}, nil
			}

			if !raced {
				raced = true

				// the delete commits after this read and before the read is cached
				_, err := f.svc.Delete(context.Background(), occupationID)
				require.NoError(t, err)
			}

			return stored, nil
		}).AnyTimes()
	f.waitingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup) error {
			deleted = true

			return nil
		})

	res, err := f.svc.Get(context.Background(), occupationID, false)
	require.NoError(t, err)
	assert.Equal(t, occupationID, res.ID)

	cacheKey := model.CacheGet + ":" + occupationID + ":false"
	assert.Never(t, func() bool { return f.memory.Has(cacheKey) }, 50*time.Millisecond, 5*time.Millisecond)

	_, err = f.svc.Get(context.Background(), occupationID, false)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
