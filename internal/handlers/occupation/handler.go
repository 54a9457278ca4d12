package occupation

import (
	"net/http"

	"billiard/infras/otel"
	"billiard/internal/domains/occupation/model/dto"
	"billiard/internal/domains/occupation/service"
	"billiard/shared"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	"billiard/shared/validator"
	"billiard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Occupation
	otel    otel.Otel
}

func New(service service.Occupation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/table-occupations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OccupyTable)
		routerGroup.Get("/", handler.GetOccupations)
		routerGroup.Get("/{id}", handler.GetOccupationByID)
		routerGroup.Put("/{id}", handler.UpdateOccupation)
		routerGroup.Delete("/{id}", handler.DeleteOccupation)
	})
}

// OccupyTable claims a table for an interval.
// @Summary Occupy a table
// @Description Claim a table from started_at (default now) until finished_at, or with no time limit when finished_at
// @Description is omitted. Fails when the interval overlaps another occupation of the same table.
// @Tags TableOccupation
// @Accept json
// @Produce json
// @Param request body dto.OccupyRequest true "Occupation"
// @Success 201 {object} response.Data[dto.OccupationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/table-occupations [post]
func (handler *Handler) OccupyTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OccupyTable")
	defer scope.End()

	var req dto.OccupyRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	occupation, err := handler.service.Occupy(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("table_id", req.TableID).Msg("failed to occupy table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table occupied successfully")

	response.WithJSON(w, http.StatusCreated, occupation)
}

// GetOccupations lists table occupations.
// @Summary Get all table occupations
// @Description Retrieve occupations, newest first by default, optionally for a single table.
// @Tags TableOccupation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param sort query string false "Sort as field:asc|desc"
// @Param table_id query string false "Filter by table"
// @Success 200 {object} response.Data[dto.GetOccupationsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/table-occupations [get]
func (handler *Handler) GetOccupations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tableID := r.URL.Query().Get(constant.RequestParamTableID)
	if tableID != "" {
		if err := validator.ValidateParam(constant.RequestParamTableID, tableID, "uuid"); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	occupations, err := handler.service.GetAll(ctx, queryParams, tableID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table occupations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table occupations retrieved successfully")

	response.WithJSON(w, http.StatusOK, occupations)
}

// GetOccupationByID retrieves an occupation.
// @Summary Get a table occupation by ID
// @Tags TableOccupation
// @Produce json
// @Param id path string true "Occupation ID"
// @Param with_table query boolean false "Embed the table"
// @Success 200 {object} response.Data[dto.OccupationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/table-occupations/{id} [get]
func (handler *Handler) GetOccupationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	withTable := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamWithTable))

	occupation, err := handler.service.Get(ctx, id, withTable != nil && *withTable)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get table occupation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table occupation retrieved successfully")

	response.WithJSON(w, http.StatusOK, occupation)
}

// UpdateOccupation moves or resizes an occupation.
// @Summary Update a table occupation by ID
// @Description Partial update. Sending "finished_at": null reopens the occupation.
// @Tags TableOccupation
// @Accept json
// @Produce json
// @Param id path string true "Occupation ID"
// @Param request body dto.UpdateOccupationRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.OccupationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/table-occupations/{id} [put]
func (handler *Handler) UpdateOccupation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOccupation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateOccupationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	occupation, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update table occupation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table occupation updated successfully")

	response.WithJSON(w, http.StatusOK, occupation)
}

// DeleteOccupation removes an occupation.
// @Summary Delete a table occupation by ID
// @Tags TableOccupation
// @Produce json
// @Param id path string true "Occupation ID"
// @Success 200 {object} response.Data[dto.OccupationResponse] "Deleted occupation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/table-occupations/{id} [delete]
func (handler *Handler) DeleteOccupation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOccupation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	occupation, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete table occupation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table occupation deleted successfully")

	response.WithJSON(w, http.StatusOK, occupation)
}
