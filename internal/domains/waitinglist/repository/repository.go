package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billiard/infras/otel"
	"billiard/infras/postgres"
	"billiard/internal/domains/waitinglist/model"
	"billiard/internal/domains/waitinglist/model/dto"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	gRepo "billiard/shared/repository"
	"billiard/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	argCurrentStatus   = "current_status"
	argCreatedBefore   = "created_before"
	argStartDate       = "start_date"
	argEndDate         = "end_date"
	argIncludeStatuses = "include_status"
	argExcludeStatus   = "exclude_status"
	argExcludeID       = "exclude_id"
)

type WaitingList interface {
	Insert(ctx context.Context, model model.Entry) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Entry, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Entry, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Entry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Entry, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// ExpireQueued moves queued entries created before cutoff to expired and reports how many rows changed.
	ExpireQueued(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Entry]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) WaitingList {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Entry](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) ExpireQueued(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".waitinglist.ExpireQueued")
	defer scope.End()

	scope.SetAttribute(argCreatedBefore, cutoff)

	affected, err := r.UpdateAffected(ctx, map[string]any{
		model.FieldStatus:    model.StatusExpired,
		model.FieldUpdatedAt: timezone.Now(),
	}, FilterQueuedBefore(cutoff))
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to expire queued entries: %w", err)
	}

	return affected, nil
}

// FilterQueuedBefore matches queued entries created strictly before cutoff. Arg names stay clear of the
// columns an update sets.
func FilterQueuedBefore(cutoff time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  argCurrentStatus,
				Value:    model.StatusQueued,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCreatedAt,
				ArgName:  argCreatedBefore,
				Value:    cutoff,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}
}

// FilterByList renders the list query. Plain statuses are OR'd, "!"-prefixed ones exclude.
func FilterByList(filter dto.ListFilter) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.TableID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldTableID,
			Value:    filter.TableID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	included := []string{}
	excludedIndex := 0

	for _, status := range filter.Statuses {
		negated, found := strings.CutPrefix(status, constant.Negate)
		if !found {
			included = append(included, status)

			continue
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			ArgName:  fmt.Sprintf("%s_%d", argExcludeStatus, excludedIndex),
			Value:    negated,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
		excludedIndex++
	}

	if len(included) > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			ArgName:  argIncludeStatuses,
			Value:    included,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	if filter.CustomerName != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCustomerName,
			Value:    filter.CustomerName,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if filter.CustomerPhone != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCustomerPhone,
			Value:    filter.CustomerPhone,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if filter.StartDate != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCreatedAt,
			ArgName:  argStartDate,
			Value:    *filter.StartDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if filter.EndDate != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCreatedAt,
			ArgName:  argEndDate,
			Value:    *filter.EndDate,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return group
}

// FilterByTableOccupation matches the entry linked to occupationID, skipping excludeID when set.
func FilterByTableOccupation(occupationID, excludeID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableOccupationID,
				Value:    occupationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if excludeID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			ArgName:  argExcludeID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return filter
}

// FilterQueuedByTable matches entries still waiting for tableID. Settled entries keep no hold on the table.
func FilterQueuedByTable(tableID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableID,
				Value:    tableID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusQueued,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
