package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"billiard/config"
	"billiard/infras/otel/mocks"
	occMocks "billiard/internal/domains/occupation/mocks"
	tableMocks "billiard/internal/domains/table/mocks"
	"billiard/internal/domains/table/model"
	"billiard/internal/domains/table/model/dto"
	"billiard/internal/domains/table/service"
	wlMocks "billiard/internal/domains/waitinglist/mocks"
	wlRepo "billiard/internal/domains/waitinglist/repository"
	cacheMocks "billiard/shared/cache/mocks"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	gModel "billiard/shared/model"
	"billiard/shared/timezone"
)

type fixture struct {
	svc            service.Table
	repo           *tableMocks.MockTable
	occupationRepo *occMocks.MockOccupation
	waitingRepo    *wlMocks.MockWaitingList
	cache          *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:           tableMocks.NewMockTable(ctrl),
		occupationRepo: occMocks.NewMockOccupation(ctrl),
		waitingRepo:    wlMocks.NewMockWaitingList(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.occupationRepo, f.waitingRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Generation(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	f.cache.EXPECT().BumpGeneration(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().SaveIfGeneration(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func sampleTable() model.Table {
	return model.Table{
		ID:       "0b7e4c9a-8f0e-4a43-9d7c-5d0f3b1f7a11",
		Number:   1,
		Brand:    model.BrandBrunswick,
		Metadata: gModel.NewMetadata(timezone.Now()),
	}
}

func TestTableService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "number already taken",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "concurrent insert hits unique index",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), dto.CreateTableRequest{Number: 7, Brand: model.BrandDiamond})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, 7, res.Number)
			assert.Equal(t, model.BrandDiamond, res.Brand)
		})
	}
}

func TestTableService_GetAll(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
	})

	t.Run("cache miss reads the database", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldNumber, SortDir: gDto.SortDirAsc}, gomock.Any()).
			Return([]model.Table{sampleTable()}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, 1, res.TotalPages)
		assert.Len(t, res.Tables, 1)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "secret", SortDir: gDto.SortDirAsc})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestTableService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "table with id='missing' is not found", err.Error())
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		table := sampleTable()

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)

		res, err := f.svc.Get(context.Background(), table.ID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, table.ID, res.ID)
	})
}

func TestTableService_Update(t *testing.T) {
	table := sampleTable()
	same := table.Number
	next := 9

	tests := []struct {
		name      string
		req       dto.UpdateTableRequest
		setupMock func(f fixture)
		wantCode  int
		wantNum   int
	}{
		{
			name: "unchanged values skip the write",
			req:  dto.UpdateTableRequest{Number: &same},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
			},
			wantNum: table.Number,
		},
		{
			name: "number collides with another table",
			req:  dto.UpdateTableRequest{Number: &next},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "successful update",
			req:  dto.UpdateTableRequest{Number: &next},
			setupMock: func(f fixture) {
				updated := table
				updated.Number = next

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, next, fields[model.FieldNumber])
						assert.NotContains(t, fields, model.FieldBrand)

						return nil
					})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			},
			wantNum: next,
		},
		{
			name: "missing table",
			req:  dto.UpdateTableRequest{Number: &next},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), table.ID, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, res.Number)
		})
	}
}

func TestTableService_Delete(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "table has occupations",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.occupationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "table is preferred by a queued entry",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.occupationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.waitingRepo.EXPECT().Exist(gomock.Any(), wlRepo.FilterQueuedByTable(table.ID)).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "only a cancelled entry prefers the table",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.occupationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.waitingRepo.EXPECT().Exist(gomock.Any(), wlRepo.FilterQueuedByTable(table.ID)).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.occupationRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.waitingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Delete(context.Background(), table.ID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, table.ID, res.ID)
		})
	}
}
