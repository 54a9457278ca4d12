package dto

import (
	"time"

	bookingDto "billiard/internal/domains/booking/model/dto"
	"billiard/internal/domains/occupation/model"
	tableDto "billiard/internal/domains/table/model/dto"
	"billiard/shared"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	"billiard/shared/nullable"
	"billiard/shared/timezone"
)

type OccupyRequest = bookingDto.BookingRequest

// UpdateOccupationRequest is a partial update. An explicit `"finished_at": null` reopens the occupation.
type UpdateOccupationRequest struct {
	TableID    *string                      `json:"table_id"    validate:"omitempty,uuid"`
	StartedAt  *time.Time                   `json:"started_at"`
	FinishedAt nullable.Nullable[time.Time] `json:"finished_at"`
}

func (u *UpdateOccupationRequest) IsEmpty() bool {
	return u.TableID == nil && u.StartedAt == nil && !u.FinishedAt.Set
}

// Apply returns the occupation as it would look after the update.
func (u *UpdateOccupationRequest) Apply(current model.Occupation) model.Occupation {
	if u.TableID != nil {
		current.TableID = *u.TableID
	}

	if u.StartedAt != nil {
		current.StartedAt = *u.StartedAt
	}

	if u.FinishedAt.Set {
		current.FinishedAt = u.FinishedAt.Ptr()
	}

	return current
}

type OccupationResponse struct {
	ID         string                  `json:"id"`
	TableID    string                  `json:"table_id"`
	StartedAt  string                  `json:"started_at"`
	FinishedAt *string                 `json:"finished_at"`
	Table      *tableDto.TableResponse `json:"table,omitempty"`
	gDto.Metadata
}

func (r *OccupationResponse) FromModel(model model.Occupation) {
	r.ID = model.ID
	r.TableID = model.TableID
	r.StartedAt = timezone.Format(model.StartedAt, constant.DateFormat)
	r.FinishedAt = timezone.FormatPtr(model.FinishedAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetOccupationsResponse struct {
	Page             int                  `json:"page"`
	Limit            int                  `json:"limit"`
	Count            int                  `json:"count"`
	TotalPages       int                  `json:"total_pages"`
	TableID          *string              `json:"table_id"`
	TableOccupations []OccupationResponse `json:"table_occupations"`
}

func (r *GetOccupationsResponse) FromModels(models []model.Occupation, params gDto.QueryParams, count int, tableID string) {
	r.Page = params.Page
	r.Limit = params.Limit
	r.Count = count
	r.TotalPages = shared.CalculateTotalPage(count, params.Limit)

	if tableID != constant.Empty {
		r.TableID = &tableID
	}

	r.TableOccupations = make([]OccupationResponse, len(models))
	for i, mod := range models {
		r.TableOccupations[i].FromModel(mod)
	}
}
