package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"billiard/infras/otel"
	"billiard/infras/postgres"
	"billiard/internal/domains/occupation/model"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	gRepo "billiard/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	argCandidateStartedAt  = "candidate_started_at"
	argCandidateFinishedAt = "candidate_finished_at"
	argExcludeID           = "exclude_id"

	conflictCandidates = 10
)

type Occupation interface {
	Insert(ctx context.Context, model model.Occupation) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Occupation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Occupation, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Occupation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Occupation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// FindConflicts returns, ordered by start, the occupations of tableID that ConflictFilter selects for window.
	// Callers confirm each with model.Window.Conflicts. A nil sqltx reads from the read pool.
	FindConflicts(ctx context.Context, sqltx *sqlx.Tx, tableID string, window model.Window, excludeID string) ([]model.Occupation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Occupation]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Occupation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Occupation](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) FindConflicts(ctx context.Context, sqltx *sqlx.Tx, tableID string, window model.Window, excludeID string) ([]model.Occupation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".occupation.FindConflicts")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		model.FieldTableID:    tableID,
		model.FieldStartedAt:  window.StartedAt,
		model.FieldFinishedAt: window.FinishedAt,
		argExcludeID:          excludeID,
	})

	params := gDto.QueryParams{Limit: conflictCandidates, SortBy: model.FieldStartedAt, SortDir: gDto.SortDirAsc}
	filter := ConflictFilter(tableID, window, excludeID)

	var (
		found []model.Occupation
		err   error
	)

	if sqltx == nil {
		found, err = r.GetAll(ctx, params, filter)
	} else {
		found, err = r.GetAllTx(ctx, sqltx, params, filter)
	}

	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to look up conflicting occupations: %w", err)
	}

	scope.SetAttribute("candidates", len(found))

	return found, nil
}

// ConflictFilter selects occupations of tableID that window conflicts with, the SQL twin of model.Window.Conflicts.
func ConflictFilter(tableID string, window model.Window, excludeID string) gDto.FilterGroup {
	existingRunsPastStart := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldFinishedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldFinishedAt,
				ArgName:  argCandidateStartedAt,
				Value:    window.StartedAt,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}

	overlap := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{existingRunsPastStart},
	}

	if !window.IsOpen() {
		overlap.Filters = append([]any{gDto.Filter{
			Field:    model.FieldStartedAt,
			ArgName:  argCandidateFinishedAt,
			Value:    *window.FinishedAt,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		}}, overlap.Filters...)
	}

	alreadyRunning := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartedAt,
				ArgName:  argCandidateStartedAt,
				Value:    window.StartedAt,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			existingRunsPastStart,
		},
	}

	conditions := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters:  []any{overlap, alreadyRunning},
	}

	if window.IsOpen() {
		conditions.Filters = append(conditions.Filters, gDto.Filter{
			Field:    model.FieldStartedAt,
			ArgName:  argCandidateStartedAt,
			Value:    window.StartedAt,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldTableID, Value: tableID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
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

	filter.Filters = append(filter.Filters, conditions)

	return filter
}

// FilterByTable matches every occupation of tableID; an empty id matches all.
func FilterByTable(tableID string) gDto.FilterGroup {
	if tableID == constant.Empty {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldTableID, Value: tableID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
