package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"billiard/config"
	"billiard/infras/otel"
	occModel "billiard/internal/domains/occupation/model"
	occRepo "billiard/internal/domains/occupation/repository"
	"billiard/internal/domains/table/model"
	"billiard/internal/domains/table/model/dto"
	"billiard/internal/domains/table/repository"
	wlModel "billiard/internal/domains/waitinglist/model"
	wlRepo "billiard/internal/domains/waitinglist/repository"
	"billiard/shared"
	"billiard/shared/cache"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	"billiard/shared/logger"
	gRepo "billiard/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	opCreate = "create_table"
	opGetAll = "get_tables"
	opGet    = "get_table"
	opUpdate = "update_table"
	opDelete = "delete_table"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetTablesResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTableRequest) (dto.TableResponse, error)
	Delete(ctx context.Context, id string) (dto.TableResponse, error)
}

type serviceImpl struct {
	repo           repository.Table
	occupationRepo occRepo.Occupation
	waitingRepo    wlRepo.WaitingList
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Table,
	occupationRepo occRepo.Occupation,
	waitingRepo wlRepo.WaitingList,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Table {
	return &serviceImpl{
		repo:           repo,
		occupationRepo: occupationRepo,
		waitingRepo:    waitingRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opCreate, req)
		}
	}()

	if err = s.ensureNumberFree(ctx, req.Number, constant.Empty); err != nil {
		return res, err
	}

	table := req.ToModel()

	if err = s.repo.Insert(ctx, table); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.UnprocessableEntity(numberTakenMessage(req.Number)) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	logger.Operation(opCreate, req).Str("id", table.ID).Msg("table created")

	s.invalidate(context.WithoutCancel(ctx), constant.Empty)

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGetAll, params)
		}
	}()

	if err = params.ValidateSort(model.FieldNumber, gDto.SortDirAsc, model.SortableFields...); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	tables, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(tables, params, count)

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGet, id)
		}
	}()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	table, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(table)

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Update")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opUpdate, map[string]any{"id": id, "request": req})
		}
	}()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	changes := req.Changes(current)
	if changes.IsEmpty() {
		res.FromModel(current)

		return res, nil
	}

	if changes.Number != nil {
		if err = s.ensureNumberFree(ctx, *changes.Number, id); err != nil {
			return res, err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(changes), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.UnprocessableEntity(numberTakenMessage(*changes.Number)) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to update table: %w", err)
	}

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	logger.Operation(opUpdate, changes).Str("id", id).Msg("table updated")

	s.invalidate(context.WithoutCancel(ctx), id)

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Delete")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opDelete, id)
		}
	}()

	table, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	occupied, err := s.occupationRepo.Exist(ctx, occRepo.FilterByTable(id))
	if err != nil {
		return res, fmt.Errorf("failed to check table occupations: %w", err)
	}

	if occupied {
		return res, failure.UnprocessableEntity(fmt.Sprintf("table with id='%s' still has %s records", id, occModel.EntityName)) // nolint:wrapcheck
	}

	waiting, err := s.waitingRepo.Exist(ctx, wlRepo.FilterQueuedByTable(id))
	if err != nil {
		return res, fmt.Errorf("failed to check waiting list entries: %w", err)
	}

	if waiting {
		return res, failure.UnprocessableEntity(fmt.Sprintf("table with id='%s' is preferred by a queued %s", id, wlModel.EntityName)) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.UnprocessableEntity(fmt.Sprintf("table with id='%s' still has %s records", id, occModel.EntityName)) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to delete table: %w", err)
	}

	logger.Operation(opDelete, id).Msg("table deleted")

	s.invalidate(context.WithoutCancel(ctx), id)

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Table, error) {
	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return table, failure.NotFound(fmt.Sprintf("table with id='%s' is not found", id)) // nolint:wrapcheck
	}

	return table, nil
}

func (s *serviceImpl) ensureNumberFree(ctx context.Context, number int, excludeID string) error {
	taken, err := s.repo.Exist(ctx, repository.FilterByNumber(number, excludeID))
	if err != nil {
		return fmt.Errorf("failed to check table number: %w", err)
	}

	if taken {
		return failure.UnprocessableEntity(numberTakenMessage(number)) // nolint:wrapcheck
	}

	return nil
}

// invalidate drops list caches and, for an existing table, its own entry. Embedded table views in
// occupations and waiting list entries are cleared too.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		shared.InvalidateCache(ctx, s.cache, shared.BuildCacheKey(model.CacheGet, id))
		shared.InvalidateCaches(ctx, s.cache, occModel.CacheGet)
		shared.InvalidateCaches(ctx, s.cache, wlModel.CacheGet)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
}

func numberTakenMessage(number int) string {
	return fmt.Sprintf("table with number=%d already exists", number)
}
