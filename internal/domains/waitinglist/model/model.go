package model

import (
	"slices"

	"billiard/shared/model"
)

const (
	TableName  = "waiting_list_entries"
	EntityName = "waiting list entry"

	FieldID                = "id"
	FieldCustomerName      = "customer_name"
	FieldCustomerPhone     = "customer_phone"
	FieldStatus            = "status"
	FieldTableID           = "table_id"
	FieldTableOccupationID = "table_occupation_id"
	FieldCreatedAt         = "created_at"
	FieldUpdatedAt         = "updated_at"
)

const (
	StatusQueued    = "queued"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

const (
	CacheGet    = "waitinglist:get"
	CacheGetAll = "waitinglist:gets"
)

var Statuses = []string{StatusQueued, StatusFulfilled, StatusCancelled, StatusExpired}

type Entry struct {
	ID                string  `db:"id"`
	CustomerName      string  `db:"customer_name"`
	CustomerPhone     *string `db:"customer_phone"`
	Status            string  `db:"status"`
	TableID           *string `db:"table_id"`
	TableOccupationID *string `db:"table_occupation_id"`
	model.Metadata
}

func IsValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

func (e Entry) IsFulfilled() bool {
	return e.Status == StatusFulfilled
}
