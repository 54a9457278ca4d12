package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"billiard/infras/otel"
	"billiard/infras/postgres"
	occModel "billiard/internal/domains/occupation/model"
	occRepo "billiard/internal/domains/occupation/repository"
	tableModel "billiard/internal/domains/table/model"
	tableRepo "billiard/internal/domains/table/repository"
	"billiard/shared"
	"billiard/shared/constant"
	"billiard/shared/failure"
	gModel "billiard/shared/model"
	"billiard/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Booking decides whether a table can be claimed for a window and records the claim. Callers own the
// transaction; every method that takes a *sqlx.Tx must run inside Transactor.WithTransaction.
type Booking interface {
	ValidateWindow(startedAt, finishedAt *time.Time) (occModel.Window, error)
	CheckAvailability(ctx context.Context, sqltx *sqlx.Tx, tableID string, window occModel.Window, excludeID string) error
	Book(ctx context.Context, sqltx *sqlx.Tx, tableID string, window occModel.Window) (occModel.Occupation, error)
}

type serviceImpl struct {
	occupationRepo occRepo.Occupation
	tableRepo      tableRepo.Table
	transactor     postgres.Transactor
	otel           otel.Otel
}

func New(occupationRepo occRepo.Occupation, tableRepo tableRepo.Table, transactor postgres.Transactor, otel otel.Otel) Booking {
	return &serviceImpl{
		occupationRepo: occupationRepo,
		tableRepo:      tableRepo,
		transactor:     transactor,
		otel:           otel,
	}
}

// ValidateWindow fills in a missing start with the current time and rejects windows that start in the past
// or end before they start.
func (s *serviceImpl) ValidateWindow(startedAt, finishedAt *time.Time) (occModel.Window, error) {
	now := timezone.Now()

	window := occModel.Window{StartedAt: now, FinishedAt: finishedAt}
	if startedAt != nil {
		window.StartedAt = *startedAt
	}

	if window.StartedAt.Before(now) {
		return window, failure.UnprocessableEntity("'started_at' must be greater than or equal to the current time.") // nolint:wrapcheck
	}

	if finishedAt != nil && finishedAt.Before(window.StartedAt) {
		return window, failure.UnprocessableEntity(fmt.Sprintf("'finished_at' must be after %s.", //nolint:wrapcheck
			timezone.Format(window.StartedAt, constant.DateFormat)))
	}

	return window, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, sqltx *sqlx.Tx, tableID string, window occModel.Window, excludeID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.transactor.Lock(ctx, sqltx, tableID); err != nil {
		log.Error().Err(err).Str("table_id", tableID).Msg("failed to lock table")

		return fmt.Errorf("failed to lock table: %w", err)
	}

	exist, err := s.tableRepo.ExistTx(ctx, sqltx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if table exists")

		return fmt.Errorf("failed to check if table exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("table with id='%s' is not found", tableID)) // nolint:wrapcheck
	}

	candidates, err := s.occupationRepo.FindConflicts(ctx, sqltx, tableID, window, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up conflicting occupation")

		return fmt.Errorf("failed to look up conflicting occupation: %w", err)
	}

	for _, candidate := range candidates {
		if window.Conflicts(candidate.Window()) {
			return failure.UnprocessableEntity(occupiedMessage(candidate)) // nolint:wrapcheck
		}

		log.Warn().Str("table_id", tableID).Str("occupation_id", candidate.ID).Msg("conflict query returned a compatible occupation")
	}

	return nil
}

func (s *serviceImpl) Book(ctx context.Context, sqltx *sqlx.Tx, tableID string, window occModel.Window) (res occModel.Occupation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.CheckAvailability(ctx, sqltx, tableID, window, constant.Empty); err != nil {
		return res, err
	}

	res = occModel.Occupation{
		ID:         uuid.NewString(),
		TableID:    tableID,
		StartedAt:  window.StartedAt,
		FinishedAt: window.FinishedAt,
		Metadata:   gModel.NewMetadata(timezone.Now()),
	}

	if err = s.occupationRepo.InsertTx(ctx, sqltx, res); err != nil {
		log.Error().Err(err).Msg("failed to create occupation")

		return occModel.Occupation{}, fmt.Errorf("failed to create occupation: %w", err)
	}

	return res, nil
}

func occupiedMessage(conflict occModel.Occupation) string {
	from := timezone.Format(conflict.StartedAt, constant.DateFormat)

	if conflict.IsOpen() {
		return fmt.Sprintf("table with id='%s' is occupied from %s with no time limit.", conflict.TableID, from)
	}

	return fmt.Sprintf("table with id='%s' is occupied from %s until %s.", conflict.TableID, from,
		timezone.Format(*conflict.FinishedAt, constant.DateFormat))
}
