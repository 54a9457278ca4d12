package model

import (
	"time"

	"billiard/shared/model"
)

const (
	TableName  = "table_occupations"
	EntityName = "table occupation"

	FieldID         = "id"
	FieldTableID    = "table_id"
	FieldStartedAt  = "started_at"
	FieldFinishedAt = "finished_at"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
)

// Cache prefixes, shared with services that create occupations on their own.
const (
	CacheGet    = "occupation:get"
	CacheGetAll = "occupation:gets"
)

var SortableFields = []string{FieldID, FieldTableID, FieldStartedAt, FieldFinishedAt, FieldCreatedAt, FieldUpdatedAt}

type Occupation struct {
	ID         string     `db:"id"`
	TableID    string     `db:"table_id"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	model.Metadata
}

func (o Occupation) Window() Window {
	return Window{StartedAt: o.StartedAt, FinishedAt: o.FinishedAt}
}

// IsOpen reports whether the occupation has no recorded end.
func (o Occupation) IsOpen() bool {
	return o.FinishedAt == nil
}
