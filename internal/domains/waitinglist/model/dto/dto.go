package dto

import (
	"strings"
	"time"

	bookingDto "billiard/internal/domains/booking/model/dto"
	occupationDto "billiard/internal/domains/occupation/model/dto"
	tableDto "billiard/internal/domains/table/model/dto"
	"billiard/internal/domains/waitinglist/model"
	"billiard/shared"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	gModel "billiard/shared/model"
	"billiard/shared/nullable"
	"billiard/shared/timezone"

	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	CustomerName  string  `json:"customer_name"  validate:"required,max=255"`
	CustomerPhone *string `json:"customer_phone" validate:"omitempty,phone"`
	TableID       *string `json:"table_id"       validate:"omitempty,uuid"`
}

func (c *CreateEntryRequest) ToModel() model.Entry {
	return model.Entry{
		ID:            uuid.NewString(),
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Status:        model.StatusQueued,
		TableID:       c.TableID,
		Metadata:      gModel.NewMetadata(timezone.Now()),
	}
}

// UpdateEntryRequest is a partial update. Sending `null` for table_id or table_occupation_id removes the link.
type UpdateEntryRequest struct {
	CustomerName      *string                   `json:"customer_name"       validate:"omitempty,max=255"`
	CustomerPhone     *string                   `json:"customer_phone"      validate:"omitempty,phone"`
	TableID           nullable.Nullable[string] `json:"table_id"            validate:"omitempty,uuid"`
	TableOccupationID nullable.Nullable[string] `json:"table_occupation_id" validate:"omitempty,uuid"`
	Status            *string                   `json:"status"              validate:"omitempty,oneof=queued fulfilled cancelled expired"`
}

func (u *UpdateEntryRequest) IsEmpty() bool {
	return u.CustomerName == nil && u.CustomerPhone == nil && !u.TableID.Set && !u.TableOccupationID.Set && u.Status == nil
}

type FulfillRequest = bookingDto.BookingRequest

// ListFilter carries the waiting list query string beyond paging.
type ListFilter struct {
	TableID       string
	Statuses      []string
	CustomerName  string
	CustomerPhone string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ParseStatuses splits a comma separated status list, dropping blanks. A leading "!" negates a status.
func ParseStatuses(value string) []string {
	statuses := []string{}

	for status := range strings.SplitSeq(value, constant.Comma) {
		status = strings.ToLower(strings.TrimSpace(status))
		if status == constant.Empty {
			continue
		}

		statuses = append(statuses, status)
	}

	return statuses
}

type EntryResponse struct {
	ID                string                            `json:"id"`
	CustomerName      string                            `json:"customer_name"`
	CustomerPhone     *string                           `json:"customer_phone"`
	Status            string                            `json:"status"`
	TableID           *string                           `json:"table_id"`
	TableOccupationID *string                           `json:"table_occupation_id"`
	Table             *tableDto.TableResponse           `json:"table,omitempty"`
	TableOccupation   *occupationDto.OccupationResponse `json:"table_occupation,omitempty"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(model model.Entry) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.Status = model.Status
	r.TableID = model.TableID
	r.TableOccupationID = model.TableOccupationID
	r.Metadata.FromModel(model.Metadata)
}

type GetEntriesResponse struct {
	Page               int             `json:"page"`
	Limit              int             `json:"limit"`
	Count              int             `json:"count"`
	TotalPages         int             `json:"total_pages"`
	TableID            *string         `json:"table_id"`
	Statuses           []string        `json:"statuses"`
	WaitingListEntries []EntryResponse `json:"waiting_list_entries"`
}

func (r *GetEntriesResponse) FromModels(models []model.Entry, params gDto.QueryParams, count int, filter ListFilter) {
	r.Page = params.Page
	r.Limit = params.Limit
	r.Count = count
	r.TotalPages = shared.CalculateTotalPage(count, params.Limit)
	r.Statuses = filter.Statuses

	if filter.TableID != constant.Empty {
		r.TableID = &filter.TableID
	}

	r.WaitingListEntries = make([]EntryResponse, len(models))
	for i, mod := range models {
		r.WaitingListEntries[i].FromModel(mod)
	}
}
