package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"billiard/infras/otel/mocks"
	"billiard/shared/dto"
	"billiard/shared/model"
	"billiard/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	ClosedAt  *time.Time `db:"closed_at"`
	Transient string     `db:"-"`
	model.Metadata
}

func newRepo() repository.Repository[row] {
	return repository.NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())
}

func TestNewRepositoryColumns(t *testing.T) {
	repo := newRepo()

	assert.Equal(t, []string{"id", "name", "closed_at", "created_at", "updated_at"}, repo.InsertColumns)
	assert.Equal(t, "rows.id, rows.name, rows.closed_at, rows.created_at, rows.updated_at", repo.SelectQuery(context.Background()))
	assert.Equal(t, "rows.id, rows.name", repo.SelectQuery(context.Background(), "id", "name"))
}

func TestBuildWhereClause(t *testing.T) {
	repo := newRepo()

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "name", Value: "x", Operator: dto.FilterOperatorEq, Table: "rows"}},
	})
	assert.Equal(t, " WHERE (rows.name = :name) ", where)
	assert.Equal(t, map[string]any{"name": "x"}, args)
}

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	foreign := &pq.Error{Code: "23503"}

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.False(t, repository.IsForeignKeyViolation(unique))
	assert.True(t, repository.IsForeignKeyViolation(foreign))
	assert.False(t, repository.IsUniqueViolation(errors.New("boom")))
}
