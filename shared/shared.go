package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"

	"billiard/shared/cache"
	"billiard/shared/constant"
	"billiard/shared/dto"
	"billiard/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero fields of a struct into a map keyed by their db tag.
// Pointer fields are dereferenced and updated_at is always stamped.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache prefix with an identifier, e.g. "table:get:<id>".
func BuildCacheKey(prefix, id string) string {
	return prefix + constant.Colon + id
}

// BuildCacheKeyWithQuery derives a stable key for a list or count query from its paging, sorting and filters.
func BuildCacheKeyWithQuery(prefix string, req dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	encodedArgs, err := json.Marshal(args)
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to encode cache filter args")
	}

	hash := fnv.New64a()
	_, _ = hash.Write([]byte(where))
	_, _ = hash.Write(encodedArgs)

	return fmt.Sprintf("%s:%d:%d:%s:%s:%x", prefix, req.Page, req.Limit, req.SortBy, req.SortDir, hash.Sum64())
}

// CacheNamespace is the leading segment of a cache key or prefix, e.g. "table" for "table:get:<id>".
// Writes bump the generation of a namespace so that in-flight reads in it do not refill the cache.
func CacheNamespace(prefix string) string {
	namespace, _, _ := strings.Cut(prefix, constant.Colon)

	return namespace
}

// InvalidateCaches bumps the generation of the prefix's namespace and clears every key stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	bumpGeneration(ctx, redisCache, prefix)

	if err := redisCache.Clear(ctx, prefix+constant.Colon+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// InvalidateCache is InvalidateCaches for a single key.
func InvalidateCache(ctx context.Context, redisCache cache.RedisCache, key string) {
	bumpGeneration(ctx, redisCache, key)

	if err := redisCache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to invalidate cache")
	}
}

// CacheGeneration must be read before the database so SaveCache can tell whether a write happened in between.
// A negative generation means the cache is unavailable and nothing will be saved.
func CacheGeneration(ctx context.Context, redisCache cache.RedisCache, prefix string) int64 {
	generation, err := redisCache.Generation(ctx, CacheNamespace(prefix))
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to read cache generation")

		return -1
	}

	return generation
}

// SaveCache stores value under key unless its namespace was invalidated after generation was read.
func SaveCache(ctx context.Context, redisCache cache.RedisCache, key string, value any, ttl int, generation int64) {
	if generation < 0 {
		return
	}

	if _, err := redisCache.SaveIfGeneration(ctx, key, value, ttl, CacheNamespace(key), generation); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save cache")
	}
}

func bumpGeneration(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.BumpGeneration(ctx, CacheNamespace(prefix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to bump cache generation")
	}
}
