package dto

import "time"

// BookingRequest asks for a table over an interval. A missing StartedAt means now, a missing FinishedAt leaves
// the occupation open.
type BookingRequest struct {
	TableID    string     `json:"table_id"    validate:"required,uuid"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}
