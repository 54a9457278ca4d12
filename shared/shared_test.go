package shared_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"billiard/shared"
	"billiard/shared/cache/mocks"
	"billiard/shared/constant"
	"billiard/shared/dto"

	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type TestStruct struct {
		Number     *int    `db:"number"`
		Brand      *string `db:"brand"`
		EmptyField string  `db:"empty_field"`
		NoDBTag    string
	}

	number := 0
	brand := "diamond"

	result := shared.TransformFields(TestStruct{Number: &number, Brand: &brand, NoDBTag: "ignored"})

	expected := map[string]any{
		"number": 0,
		"brand":  "diamond",
	}

	for key, expectedValue := range expected {
		if actualValue, exists := result[key]; !exists {
			t.Errorf("expected field %s to exist", key)
		} else if !reflect.DeepEqual(actualValue, expectedValue) {
			t.Errorf("expected field %s to be %v, got %v", key, expectedValue, actualValue)
		}
	}

	if _, ok := result[constant.FieldUpdatedAt].(time.Time); !ok {
		t.Error("expected updated_at to be a time.Time")
	}

	if len(result) != len(expected)+1 {
		t.Errorf("unexpected fields in result: %v", result)
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "billiard_tables")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "123",
				Operator: dto.FilterOperatorEq,
				Table:    "billiard_tables",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("table:get", "abc"); got != "table:get:abc" {
		t.Errorf("expected table:get:abc, got %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	req := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc}
	filterA := shared.FilterByID("a", "table_id", "")
	filterB := shared.FilterByID("b", "table_id", "")

	keyA := shared.BuildCacheKeyWithQuery("occupation:gets", req, filterA)
	keyAgain := shared.BuildCacheKeyWithQuery("occupation:gets", req, filterA)
	keyB := shared.BuildCacheKeyWithQuery("occupation:gets", req, filterB)

	if !strings.HasPrefix(keyA, "occupation:gets:1:10:created_at:DESC:") {
		t.Errorf("unexpected key layout %s", keyA)
	}

	if keyA != keyAgain {
		t.Errorf("expected identical queries to share a key, got %s and %s", keyA, keyAgain)
	}

	if keyA == keyB {
		t.Error("expected different filters to produce different keys")
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().BumpGeneration(gomock.Any(), "table").Return(nil).Times(2)
	redisCache.EXPECT().Clear(gomock.Any(), "table:gets:*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "table:count:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "table:gets")
	shared.InvalidateCaches(context.Background(), redisCache, "table:count")
}

func TestCacheNamespace(t *testing.T) {
	if got := shared.CacheNamespace("occupation:get:abc:true"); got != "occupation" {
		t.Errorf("expected occupation, got %s", got)
	}

	if got := shared.CacheNamespace("plain"); got != "plain" {
		t.Errorf("expected plain, got %s", got)
	}
}

func TestSaveCacheSkipsAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	memory := mocks.NewMemoryCache()

	generation := shared.CacheGeneration(ctx, memory, "table:get")
	shared.InvalidateCache(ctx, memory, "table:get:abc")
	shared.SaveCache(ctx, memory, "table:get:abc", "stale", 60, generation)

	if memory.Has("table:get:abc") {
		t.Error("expected a read that raced an invalidation not to refill the cache")
	}

	shared.SaveCache(ctx, memory, "table:get:abc", "fresh", 60, shared.CacheGeneration(ctx, memory, "table:get"))

	if !memory.Has("table:get:abc") {
		t.Error("expected a read after the invalidation to be cached")
	}
}

func TestSaveCacheOtherNamespaceUnaffected(t *testing.T) {
	ctx := context.Background()
	memory := mocks.NewMemoryCache()

	generation := shared.CacheGeneration(ctx, memory, "waitinglist:get")
	shared.InvalidateCaches(ctx, memory, "table:gets")
	shared.SaveCache(ctx, memory, "waitinglist:get:abc", "value", 60, generation)

	if !memory.Has("waitinglist:get:abc") {
		t.Error("expected a table invalidation to leave waiting list reads cacheable")
	}
}

func TestCacheGenerationUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)

	redisCache := mocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Generation(gomock.Any(), "table").Return(int64(0), errors.New("redis down"))

	generation := shared.CacheGeneration(context.Background(), redisCache, "table:get")
	if generation >= 0 {
		t.Errorf("expected a negative generation, got %d", generation)
	}

	shared.SaveCache(context.Background(), redisCache, "table:get:abc", "value", 60, generation)
}

func boolPtr(b bool) *bool {
	return &b
}
