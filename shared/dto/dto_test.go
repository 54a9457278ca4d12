package dto_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"billiard/shared/constant"
	"billiard/shared/dto"
	"billiard/shared/model"
	"billiard/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.NewMetadata(createdAt))
	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, metadata.CreatedAt, metadata.UpdatedAt)

	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})
	assert.Equal(t, timezone.Format(updatedAt, constant.DateFormat), metadata.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "number",
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "number", SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid page and limit ignored",
			queryParams:    map[string]string{"page": "-1", "limit": "abc"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "limit capped at the maximum page size",
			queryParams:    map[string]string{"limit": "10000000"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:           "sort with direction",
			queryParams:    map[string]string{"sort": "started_at:desc"},
			defaultRequest: false,
			expected:       dto.QueryParams{SortBy: "started_at", SortDir: dto.SortDirDesc},
		},
		{
			name:           "sort without direction defaults to ascending",
			queryParams:    map[string]string{"sort": "started_at"},
			defaultRequest: false,
			expected:       dto.QueryParams{SortBy: "started_at", SortDir: dto.SortDirAsc},
		},
		{
			name:           "sort keeps unknown direction for validation",
			queryParams:    map[string]string{"sort": "started_at:sideways"},
			defaultRequest: false,
			expected:       dto.QueryParams{SortBy: "started_at", SortDir: "SIDEWAYS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req, err := http.NewRequest(http.MethodGet, "/table-occupations?"+values.Encode(), nil)
			require.NoError(t, err)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&dto.QueryParams{Page: 1, Limit: 10}).Offset())
	assert.Equal(t, 20, (&dto.QueryParams{Page: 3, Limit: 10}).Offset())
	assert.Equal(t, 0, (&dto.QueryParams{}).Offset())
}

func TestQueryParams_ValidateSort(t *testing.T) {
	allowed := []string{"started_at", "created_at"}

	t.Run("defaults when empty", func(t *testing.T) {
		q := dto.QueryParams{}

		require.NoError(t, q.ValidateSort("created_at", dto.SortDirDesc, allowed...))
		assert.Equal(t, "created_at", q.SortBy)
		assert.Equal(t, dto.SortDirDesc, q.SortDir)
	})

	t.Run("accepts allowed field", func(t *testing.T) {
		q := dto.QueryParams{SortBy: "started_at"}

		require.NoError(t, q.ValidateSort("created_at", dto.SortDirDesc, allowed...))
		assert.Equal(t, dto.SortDirAsc, q.SortDir)
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		q := dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc}

		err := q.ValidateSort("created_at", dto.SortDirDesc, allowed...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		q := dto.QueryParams{SortBy: "started_at", SortDir: "SIDEWAYS"}

		err := q.ValidateSort("created_at", dto.SortDirDesc, allowed...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sideways")
	})
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "table_id", Value: "t-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "finished_at", Operator: dto.FilterIsNull},
					dto.Filter{Field: "finished_at", ArgName: "from", Value: "x", Operator: dto.FilterOperatorGreater},
				},
			},
			dto.Filter{Field: "status", Value: []string{"queued", "expired"}, Operator: dto.FilterOperatorIn},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(table_id = :table_id AND (finished_at IS NULL OR finished_at > :from) AND status IN (:status_0, :status_1) )", where)
	assert.Equal(t, "t-1", args["table_id"])
	assert.Equal(t, "x", args["from"])
	assert.Equal(t, "expired", args["status_1"])
	assert.False(t, strings.Contains(where, "()"))
}

func TestFilterGroup_EmptyGroup(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilter_LikeEscapesWildcards(t *testing.T) {
	filter := dto.Filter{Field: "customer_name", Value: `50%_a\b`, Operator: dto.FilterOperatorLike}

	where, args := filter.GetWhereClause()

	assert.Equal(t, `LOWER(customer_name) LIKE LOWER(:customer_name) ESCAPE '\'`, where)
	assert.Equal(t, `%50\%\_a\\b%`, args["customer_name"])
}
