package dto

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"billiard/shared/constant"
	"billiard/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// It's recommended to call this method with `defaultRequest` set to true if data is large
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// Sorting is read either from `sort=field:asc|desc` or from the `sort_by`/`sort_dir` pair.
// A `sort` value is kept as given so ValidateSort can reject unknown fields and directions.
// If `defaultRequest` is false, it will only populate the fields that are present in the request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = min(limitInt, constant.MaxValueLimit)
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); strings.ToUpper(sortDir) == SortDirAsc || strings.ToUpper(sortDir) == SortDirDesc {
		q.SortDir = strings.ToUpper(sortDir)
	}

	if sort := queryParams.Get(constant.RequestParamSort); sort != "" {
		field, dir, found := strings.Cut(sort, constant.Colon)

		q.SortBy = strings.TrimSpace(field)
		q.SortDir = SortDirAsc

		if found {
			q.SortDir = strings.ToUpper(strings.TrimSpace(dir))
		}
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Offset returns the number of rows skipped by the current page.
func (q *QueryParams) Offset() int {
	if q.Page <= 0 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// ValidateSort checks the sort field against the allowed columns and fills in the defaults when no sort was
// requested. The sort field ends up verbatim in ORDER BY, so anything outside the allow-list is rejected.
func (q *QueryParams) ValidateSort(defaultBy, defaultDir string, allowed ...string) error {
	if q.SortBy == "" {
		q.SortBy = defaultBy
		q.SortDir = defaultDir

		return nil
	}

	if !slices.Contains(allowed, q.SortBy) {
		return failure.BadRequestFromString(fmt.Sprintf("invalid sort field '%s', allowed fields: %s", q.SortBy, strings.Join(allowed, ", "))) //nolint:wrapcheck
	}

	if q.SortDir == "" {
		q.SortDir = SortDirAsc
	}

	if q.SortDir != SortDirAsc && q.SortDir != SortDirDesc {
		return failure.BadRequestFromString(fmt.Sprintf("invalid sort direction '%s', use asc or desc", strings.ToLower(q.SortDir))) //nolint:wrapcheck
	}

	return nil
}
