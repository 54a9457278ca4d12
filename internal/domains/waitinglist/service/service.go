package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billiard/config"
	"billiard/infras/otel"
	"billiard/infras/postgres"
	booking "billiard/internal/domains/booking/service"
	occModel "billiard/internal/domains/occupation/model"
	occDto "billiard/internal/domains/occupation/model/dto"
	occRepo "billiard/internal/domains/occupation/repository"
	tableModel "billiard/internal/domains/table/model"
	tableDto "billiard/internal/domains/table/model/dto"
	tableRepo "billiard/internal/domains/table/repository"
	"billiard/internal/domains/waitinglist/model"
	"billiard/internal/domains/waitinglist/model/dto"
	"billiard/internal/domains/waitinglist/repository"
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
	opCreate  = "create_waiting_list_entry"
	opGetAll  = "get_waiting_list_entries"
	opGet     = "get_waiting_list_entry"
	opUpdate  = "update_waiting_list_entry"
	opDelete  = "delete_waiting_list_entry"
	opFulfill = "fulfill_waiting_list_entry"
	opExpire  = "expire_waiting_list_entries"
)

type WaitingList interface {
	Create(ctx context.Context, req dto.CreateEntryRequest) (dto.EntryResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetEntriesResponse, error)
	Get(ctx context.Context, id string, withTable, withTableOccupation bool) (dto.EntryResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateEntryRequest) (dto.EntryResponse, error)
	Delete(ctx context.Context, id string) (dto.EntryResponse, error)
	Fulfill(ctx context.Context, id string, req dto.FulfillRequest) (dto.EntryResponse, error)
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type serviceImpl struct {
	repo           repository.WaitingList
	tableRepo      tableRepo.Table
	occupationRepo occRepo.Occupation
	booking        booking.Booking
	transactor     postgres.Transactor
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.WaitingList,
	tableRepo tableRepo.Table,
	occupationRepo occRepo.Occupation,
	booking booking.Booking,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) WaitingList {
	return &serviceImpl{
		repo:           repo,
		tableRepo:      tableRepo,
		occupationRepo: occupationRepo,
		booking:        booking,
		transactor:     transactor,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEntryRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.Create")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opCreate, req)
		}
	}()

	if req.TableID != nil {
		exist, err := s.tableRepo.Exist(ctx, shared.FilterByID(*req.TableID, tableModel.FieldID, tableModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to check if table exists: %w", err)
		}

		if !exist {
			return res, tableNotFound(*req.TableID)
		}
	}

	entry := req.ToModel()

	if err = s.repo.Insert(ctx, entry); err != nil {
		return res, fmt.Errorf("failed to create waiting list entry: %w", err)
	}

	logger.Operation(opCreate, req).Str("id", entry.ID).Msg("waiting list entry created")

	s.invalidate(context.WithoutCancel(ctx), constant.Empty)

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.GetAll")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGetAll, map[string]any{"params": params, "filter": filter})
		}
	}()

	if len(filter.Statuses) == 0 {
		filter.Statuses = []string{model.StatusQueued}
	}

	for _, status := range filter.Statuses {
		if !model.IsValidStatus(strings.TrimPrefix(status, constant.Negate)) {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid status '%s', allowed statuses: %s", //nolint:wrapcheck
				status, strings.Join(model.Statuses, ", ")))
		}
	}

	// oldest first, the queue is served in arrival order
	params.SortBy = model.FieldCreatedAt
	params.SortDir = gDto.SortDirAsc

	where := repository.FilterByList(filter)
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, params, where)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for waiting list entries")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	count, err := s.repo.Count(ctx, where)
	if err != nil {
		return res, fmt.Errorf("failed to count waiting list entries: %w", err)
	}

	entries, err := s.repo.GetAll(ctx, params, where)
	if err != nil {
		return res, fmt.Errorf("failed to get waiting list entries: %w", err)
	}

	res.FromModels(entries, params, count, filter)

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string, withTable, withTableOccupation bool) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.Get")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opGet, map[string]any{
				"id": id, "with_table": withTable, "with_table_occupation": withTableOccupation,
			})
		}
	}()

	cacheKey := shared.BuildCacheKey(shared.BuildCacheKey(model.CacheGet, id), fmt.Sprintf("%t:%t", withTable, withTableOccupation))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for waiting list entry")

		return res, nil
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheKey)

	entry, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(entry)

	if withTable && entry.TableID != nil {
		if res.Table, err = s.expandTable(ctx, entry); err != nil {
			return res, err
		}
	}

	if withTableOccupation && entry.TableOccupationID != nil {
		if res.TableOccupation, err = s.expandOccupation(ctx, entry); err != nil {
			return res, err
		}
	}

	go shared.SaveCache(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateEntryRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.Update")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opUpdate, map[string]any{"id": id, "request": req})
		}
	}()

	var (
		result  model.Entry
		changed bool
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get waiting list entry: %w", err)
		}

		if current.ID == constant.Empty {
			return entryNotFound(id)
		}

		result, err = s.applyUpdate(ctx, tx, current, req)
		if err != nil {
			return err
		}

		if sameEntry(current, result) {
			return nil
		}

		result.UpdatedAt = timezone.Now()

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldCustomerName:      result.CustomerName,
			model.FieldCustomerPhone:     result.CustomerPhone,
			model.FieldTableID:           result.TableID,
			model.FieldTableOccupationID: result.TableOccupationID,
			model.FieldStatus:            result.Status,
			model.FieldUpdatedAt:         result.UpdatedAt,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			if gRepo.IsUniqueViolation(err) {
				return alreadyLinked(*result.TableOccupationID)
			}

			return fmt.Errorf("failed to update waiting list entry: %w", err)
		}

		changed = true

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if changed {
		logger.Operation(opUpdate, req).Str("id", id).Str("status", result.Status).Msg("waiting list entry updated")

		s.invalidate(context.WithoutCancel(ctx), id)
	}

	res.FromModel(result)

	return res, nil
}

// applyUpdate returns the entry as it looks after req, checking every new link. Leaving the fulfilled
// state always drops the occupation link.
func (s *serviceImpl) applyUpdate(ctx context.Context, tx *sqlx.Tx, current model.Entry, req dto.UpdateEntryRequest) (model.Entry, error) {
	next := current

	if req.CustomerName != nil {
		next.CustomerName = *req.CustomerName
	}

	if req.CustomerPhone != nil {
		next.CustomerPhone = req.CustomerPhone
	}

	if req.TableID.Set {
		next.TableID = req.TableID.Ptr()

		if next.TableID != nil && !samePtr(current.TableID, next.TableID) {
			exist, err := s.tableRepo.ExistTx(ctx, tx, shared.FilterByID(*next.TableID, tableModel.FieldID, tableModel.TableName))
			if err != nil {
				return next, fmt.Errorf("failed to check if table exists: %w", err)
			}

			if !exist {
				return next, tableNotFound(*next.TableID)
			}
		}
	}

	if req.TableOccupationID.Set {
		next.TableOccupationID = req.TableOccupationID.Ptr()

		if next.TableOccupationID != nil && !samePtr(current.TableOccupationID, next.TableOccupationID) {
			if err := s.checkLinkable(ctx, tx, *next.TableOccupationID, current.ID); err != nil {
				return next, err
			}
		}
	}

	if req.Status != nil {
		next.Status = *req.Status
	}

	if next.Status == model.StatusFulfilled && next.TableOccupationID == nil {
		return next, failure.UnprocessableEntity("fulfilled waiting list entry must have table occupation") //nolint:wrapcheck
	}

	if next.Status != model.StatusFulfilled && next.TableOccupationID != nil {
		log.Info().Str("id", current.ID).Str("status", next.Status).Str("table_occupation_id", *next.TableOccupationID).
			Msg("removing table occupation from waiting list entry that is not fulfilled")

		next.TableOccupationID = nil
	}

	return next, nil
}

func (s *serviceImpl) checkLinkable(ctx context.Context, tx *sqlx.Tx, occupationID, entryID string) error {
	occupation, err := s.occupationRepo.GetTx(ctx, tx, shared.FilterByID(occupationID, occModel.FieldID, occModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get table occupation: %w", err)
	}

	if occupation.ID == constant.Empty {
		return failure.NotFound(fmt.Sprintf("%s with id='%s' is not found", occModel.EntityName, occupationID)) //nolint:wrapcheck
	}

	linked, err := s.repo.ExistTx(ctx, tx, repository.FilterByTableOccupation(occupationID, entryID))
	if err != nil {
		return fmt.Errorf("failed to check linked waiting list entries: %w", err)
	}

	if linked {
		return alreadyLinked(occupationID)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.Delete")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opDelete, id)
		}
	}()

	entry, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to delete waiting list entry: %w", err)
	}

	logger.Operation(opDelete, id).Msg("waiting list entry deleted")

	s.invalidate(context.WithoutCancel(ctx), id)

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) Fulfill(ctx context.Context, id string, req dto.FulfillRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.Fulfill")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opFulfill, map[string]any{"id": id, "request": req})
		}
	}()

	window, err := s.booking.ValidateWindow(req.StartedAt, req.FinishedAt)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	var (
		entry      model.Entry
		occupation occModel.Occupation
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		entry, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get waiting list entry: %w", err)
		}

		if entry.ID == constant.Empty {
			return entryNotFound(id)
		}

		if entry.Status != model.StatusQueued {
			return failure.UnprocessableEntity(fmt.Sprintf( //nolint:wrapcheck
				"can't fulfill waiting list entry with id='%s' and status '%s' (not '%s')", id, entry.Status, model.StatusQueued))
		}

		occupation, err = s.booking.Book(ctx, tx, req.TableID, window)
		if err != nil {
			return err //nolint:wrapcheck
		}

		entry.Status = model.StatusFulfilled
		entry.TableOccupationID = &occupation.ID
		entry.UpdatedAt = timezone.Now()

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:            entry.Status,
			model.FieldTableOccupationID: entry.TableOccupationID,
			model.FieldUpdatedAt:         entry.UpdatedAt,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to update waiting list entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	logger.Operation(opFulfill, req).Str("id", id).Str("table_occupation_id", occupation.ID).Msg("waiting list entry fulfilled")

	s.invalidate(context.WithoutCancel(ctx), id)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, occModel.CacheGetAll)

	res.FromModel(entry)
	res.TableOccupation = &occDto.OccupationResponse{}
	res.TableOccupation.FromModel(occupation)

	return res, nil
}

func (s *serviceImpl) ExpireStale(ctx context.Context, cutoff time.Time) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waitinglist.ExpireStale")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)

		if err != nil {
			logger.OperationError(err, opExpire, cutoff)
		}
	}()

	affected, err = s.repo.ExpireQueued(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire waiting list entries: %w", err)
	}

	if affected > 0 {
		logger.Operation(opExpire, cutoff).Int64("affected", affected).Msg("waiting list entries expired")

		s.invalidate(context.WithoutCancel(ctx), constant.Empty)
	}

	return affected, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Entry, error) {
	entry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return entry, fmt.Errorf("failed to get waiting list entry: %w", err)
	}

	if entry.ID == constant.Empty {
		return entry, entryNotFound(id)
	}

	return entry, nil
}

func (s *serviceImpl) expandTable(ctx context.Context, entry model.Entry) (*tableDto.TableResponse, error) {
	table, err := s.tableRepo.Get(ctx, shared.FilterByID(*entry.TableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return nil, failure.InternalError(fmt.Errorf("table with id='%s' of %s with id='%s' is not found", //nolint:wrapcheck
			*entry.TableID, model.EntityName, entry.ID))
	}

	res := &tableDto.TableResponse{}
	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) expandOccupation(ctx context.Context, entry model.Entry) (*occDto.OccupationResponse, error) {
	occupation, err := s.occupationRepo.Get(ctx, shared.FilterByID(*entry.TableOccupationID, occModel.FieldID, occModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get table occupation: %w", err)
	}

	if occupation.ID == constant.Empty {
		return nil, failure.InternalError(fmt.Errorf("%s with id='%s' of %s with id='%s' is not found", //nolint:wrapcheck
			occModel.EntityName, *entry.TableOccupationID, model.EntityName, entry.ID))
	}

	res := &occDto.OccupationResponse{}
	res.FromModel(occupation)

	return res, nil
}

// invalidate drops list caches and the cached views of id. An empty id drops every cached entry.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CacheGet, id))
	} else {
		shared.InvalidateCaches(ctx, s.cache, model.CacheGet)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
}

func sameEntry(a, b model.Entry) bool {
	return a.CustomerName == b.CustomerName &&
		a.Status == b.Status &&
		samePtr(a.CustomerPhone, b.CustomerPhone) &&
		samePtr(a.TableID, b.TableID) &&
		samePtr(a.TableOccupationID, b.TableOccupationID)
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func entryNotFound(id string) error {
	return failure.NotFound(fmt.Sprintf("%s with id='%s' is not found", model.EntityName, id)) //nolint:wrapcheck
}

func tableNotFound(id string) error {
	return failure.NotFound(fmt.Sprintf("table with id='%s' is not found", id)) //nolint:wrapcheck
}

func alreadyLinked(occupationID string) error {
	return failure.UnprocessableEntity(fmt.Sprintf("%s with id='%s' has been linked to another %s", //nolint:wrapcheck
		occModel.EntityName, occupationID, model.EntityName))
}
