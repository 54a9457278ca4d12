package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"

	"billiard/config"
	"billiard/infras/otel"
	"billiard/infras/postgres"
	booking "billiard/internal/domains/booking/service"
	"billiard/internal/domains/occupation/model"
	"billiard/internal/domains/occupation/model/dto"
	"billiard/internal/domains/occupation/repository"
	tableModel "billiard/internal/domains/table/model"
	tableDto "billiard/internal/domains/table/model/dto"
	tableRepo "billiard/internal/domains/table/repository"
	wlModel "billiard/internal/domains/waitinglist/model"
	wlRepo "billiard/internal/domains/waitinglist/repository"
	"billiard/shared"
	"billiard/shared/cache"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	"billiard/shared/logger"
	gRepo "billiard/shared/repository"
	"billiard/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	opOccupy = "occupy_table"
	opGetAll = "get_table_occupations"
	opGet    = "get_table_occupation"
	opUpdate = "update_table_occupation"
	opDelete = "delete_table_occupation"
)

type Occupation interface {
	Occupy(ctx context.Context, req dto.OccupyRequest) (dto.OccupationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, tableID string) (dto.GetOccupationsResponse, error)
	Get(ctx context.Context, id string, withTable bool) (dto.OccupationResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateOccupationRequest) (dto.OccupationResponse, error)
	Delete(ctx context.Context, id string) (dto.OccupationResponse, error)
}

type serviceImpl struct {
	repo        repository.Occupation
	tableRepo   tableRepo.Table
	waitingRepo wlRepo.WaitingList
	booking     booking.Booking
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Occupation,
	tableRepo tableRepo.Table,
	waitingRepo wlRepo.WaitingList,
	booking booking.Booking,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Occupation {
	return &serviceImpl{
		repo:        repo,
		tableRepo:   tableRepo,
		waitingRepo: waitingRepo,
		booking:     booking,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Occupy(ctx context.Context, req dto.OccupyRequest) (res dto.OccupationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupation.Occupy")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opOccupy, req)
		}
	}()

	window, err := s.booking.ValidateWindow(req.StartedAt, req.FinishedAt)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	var occupation model.Occupation

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) (txErr error) {
		occupation, txErr = s.booking.Book(ctx, tx, req.TableID, window)

		return txErr //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	logger.Operation(opOccupy, req).Str("id", occupation.ID).Msg("table occupied")

	s.invalidate(context.WithoutCancel(ctx), constant.Empty)

	res.FromModel(occupation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, tableID string) (res dto.GetOccupationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupation.GetAll")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGetAll, map[string]any{"params": params, "table_id": tableID})
		}
	}()

	if err = params.ValidateSort(model.FieldCreatedAt, gDto.SortDirDesc, model.SortableFields...); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := repository.FilterByTable(tableID)
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table occupations")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count table occupations: %w", err)
	}

	occupations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get table occupations: %w", err)
	}

	res.FromModels(occupations, params, count, tableID)

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string, withTable bool) (res dto.OccupationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupation.Get")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGet, map[string]any{"id": id, "with_table": withTable})
		}
	}()

	cacheKey := shared.BuildCacheKey(shared.BuildCacheKey(model.CacheGet, id), strconv.FormatBool(withTable))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table occupation")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	occupation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(occupation)

	if withTable {
		table, err := s.tableRepo.Get(ctx, shared.FilterByID(occupation.TableID, tableModel.FieldID, tableModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to get table: %w", err)
		}

		if table.ID == constant.Empty {
			return res, failure.InternalError(fmt.Errorf("table with id='%s' of %s with id='%s' is not found", //nolint:wrapcheck
				occupation.TableID, model.EntityName, occupation.ID))
		}

		res.Table = &tableDto.TableResponse{}
		res.Table.FromModel(table)
	}

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateOccupationRequest) (res dto.OccupationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupation.Update")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opUpdate, map[string]any{"id": id, "request": req})
		}
	}()

	var (
		result  model.Occupation
		changed bool
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get table occupation: %w", err)
		}

		if current.ID == constant.Empty {
			return notFound(id)
		}

		result = req.Apply(current)

		if result.TableID == current.TableID && result.Window().Equal(current.Window()) {
			result = current

			return nil
		}

		if result.FinishedAt != nil && result.FinishedAt.Before(result.StartedAt) {
			return failure.UnprocessableEntity(fmt.Sprintf("'finished_at' must be after %s.", //nolint:wrapcheck
				timezone.Format(result.StartedAt, constant.DateFormat)))
		}

		if err = s.booking.CheckAvailability(ctx, tx, result.TableID, result.Window(), id); err != nil {
			return err //nolint:wrapcheck
		}

		result.UpdatedAt = timezone.Now()

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldTableID:    result.TableID,
			model.FieldStartedAt:  result.StartedAt,
			model.FieldFinishedAt: result.FinishedAt,
			model.FieldUpdatedAt:  result.UpdatedAt,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to update table occupation: %w", err)
		}

		changed = true

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if changed {
		logger.Operation(opUpdate, req).Str("id", id).Msg("table occupation updated")

		s.invalidate(context.WithoutCancel(ctx), id)
	}

	res.FromModel(result)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.OccupationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".occupation.Delete")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opDelete, id)
		}
	}()

	occupation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	linked, err := s.waitingRepo.Exist(ctx, wlRepo.FilterByTableOccupation(id, constant.Empty))
	if err != nil {
		return res, fmt.Errorf("failed to check linked waiting list entries: %w", err)
	}

	if linked {
		return res, linkedError(id)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, linkedError(id)
		}

		return res, fmt.Errorf("failed to delete table occupation: %w", err)
	}

	logger.Operation(opDelete, id).Msg("table occupation deleted")

	s.invalidate(context.WithoutCancel(ctx), id)

	res.FromModel(occupation)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Occupation, error) {
	occupation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return occupation, fmt.Errorf("failed to get table occupation: %w", err)
	}

	if occupation.ID == constant.Empty {
		return occupation, notFound(id)
	}

	return occupation, nil
}

// invalidate drops list caches and, for an existing occupation, every cached view of it including the
// waiting list entries that embed it.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CacheGet, id))
		shared.InvalidateCaches(ctx, s.cache, wlModel.CacheGet)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
}

func notFound(id string) error {
	return failure.NotFound(fmt.Sprintf("%s with id='%s' is not found", model.EntityName, id)) //nolint:wrapcheck
}

func linkedError(id string) error {
	return failure.UnprocessableEntity(fmt.Sprintf("%s with id='%s' is linked to a %s", //nolint:wrapcheck
		model.EntityName, id, wlModel.EntityName))
}
