package dto

import (
	"billiard/internal/domains/table/model"
	"billiard/shared"
	gDto "billiard/shared/dto"
	gModel "billiard/shared/model"
	"billiard/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number int    `json:"number" validate:"required,gt=0"`
	Brand  string `json:"brand"  validate:"required,oneof=mrsung brunswick diamond olhausen rasson predator"`
}

func (c *CreateTableRequest) ToModel() model.Table {
	return model.Table{
		ID:       uuid.NewString(),
		Number:   c.Number,
		Brand:    c.Brand,
		Metadata: gModel.NewMetadata(timezone.Now()),
	}
}

type UpdateTableRequest struct {
	Number *int    `db:"number" json:"number" validate:"omitempty,gt=0"`
	Brand  *string `db:"brand"  json:"brand"  validate:"omitempty,oneof=mrsung brunswick diamond olhausen rasson predator"`
}

// IsEmpty reports whether no field was supplied.
func (u *UpdateTableRequest) IsEmpty() bool {
	return u.Number == nil && u.Brand == nil
}

// Changes drops fields equal to the current values.
func (u *UpdateTableRequest) Changes(current model.Table) UpdateTableRequest {
	res := UpdateTableRequest{}

	if u.Number != nil && *u.Number != current.Number {
		res.Number = u.Number
	}

	if u.Brand != nil && *u.Brand != current.Brand {
		res.Brand = u.Brand
	}

	return res
}

// Apply returns current with the requested fields overwritten.
func (u *UpdateTableRequest) Apply(current model.Table) model.Table {
	if u.Number != nil {
		current.Number = *u.Number
	}

	if u.Brand != nil {
		current.Brand = *u.Brand
	}

	return current
}

type TableResponse struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Brand  string `json:"brand"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.Number = model.Number
	r.Brand = model.Brand
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Count      int             `json:"count"`
	TotalPages int             `json:"total_pages"`
	Tables     []TableResponse `json:"tables"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, params gDto.QueryParams, count int) {
	r.Page = params.Page
	r.Limit = params.Limit
	r.Count = count
	r.TotalPages = shared.CalculateTotalPage(count, params.Limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
