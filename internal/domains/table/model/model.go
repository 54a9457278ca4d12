package model

import "billiard/shared/model"

const (
	TableName  = "billiard_tables"
	EntityName = "table"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldBrand     = "brand"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

const (
	BrandMrSung    = "mrsung"
	BrandBrunswick = "brunswick"
	BrandDiamond   = "diamond"
	BrandOlhausen  = "olhausen"
	BrandRasson    = "rasson"
	BrandPredator  = "predator"
)

const (
	CacheGet    = "table:get"
	CacheGetAll = "table:gets"
)

// SortableFields may appear in ORDER BY.
var SortableFields = []string{FieldID, FieldNumber, FieldBrand, FieldCreatedAt, FieldUpdatedAt}

type Table struct {
	ID     string `db:"id"`
	Number int    `db:"number"`
	Brand  string `db:"brand"`
	model.Metadata
}
