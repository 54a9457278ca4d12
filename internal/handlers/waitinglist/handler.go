package waitinglist

import (
	"fmt"
	"net/http"
	"time"

	"billiard/infras/otel"
	"billiard/internal/domains/waitinglist/model/dto"
	"billiard/internal/domains/waitinglist/service"
	"billiard/shared"
	"billiard/shared/constant"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	"billiard/shared/timezone"
	"billiard/shared/validator"
	"billiard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.WaitingList
	otel    otel.Otel
}

func New(service service.WaitingList, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/waiting-list", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEntry)
		routerGroup.Get("/", handler.GetEntries)
		routerGroup.Get("/{id}", handler.GetEntryByID)
		routerGroup.Put("/{id}", handler.UpdateEntry)
		routerGroup.Delete("/{id}", handler.DeleteEntry)
		routerGroup.Post("/{id}/fulfill", handler.FulfillEntry)
	})
}

// CreateEntry queues a customer.
// @Summary Join the waiting list
// @Description Queue a customer, optionally for a specific table.
// @Tags WaitingList
// @Accept json
// @Produce json
// @Param request body dto.CreateEntryRequest true "Waiting list entry"
// @Success 201 {object} response.Data[dto.EntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list [post]
func (handler *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEntry")
	defer scope.End()

	var req dto.CreateEntryRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	entry, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create waiting list entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entry created successfully")

	response.WithJSON(w, http.StatusCreated, entry)
}

// GetEntries lists the waiting list in arrival order.
// @Summary Get waiting list entries
// @Description Retrieve entries oldest first. Only queued entries are returned unless statuses says otherwise;
// @Description prefix a status with ! to exclude it.
// @Tags WaitingList
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit, at most 100"
// @Param table_id query string false "Filter by table"
// @Param statuses query string false "Comma separated statuses, e.g. queued,!expired"
// @Param customer_name query string false "Case-insensitive name substring"
// @Param customer_phone query string false "Phone substring"
// @Param start_date query string false "Created at or after (RFC3339 or YYYY-MM-DD)"
// @Param end_date query string false "Created at or before (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetEntriesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list [get]
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := listFilterFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	entries, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get waiting list entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, entries)
}

// GetEntryByID retrieves an entry.
// @Summary Get a waiting list entry by ID
// @Tags WaitingList
// @Produce json
// @Param id path string true "Entry ID"
// @Param with_table query boolean false "Embed the table"
// @Param with_table_occupation query boolean false "Embed the table occupation"
// @Success 200 {object} response.Data[dto.EntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list/{id} [get]
func (handler *Handler) GetEntryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	query := r.URL.Query()
	withTable := shared.ConvertStringToBool(query.Get(constant.RequestParamWithTable))
	withOccupation := shared.ConvertStringToBool(query.Get(constant.RequestParamWithTableOccupation))

	entry, err := handler.service.Get(ctx, id, withTable != nil && *withTable, withOccupation != nil && *withOccupation)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get waiting list entry by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entry retrieved successfully")

	response.WithJSON(w, http.StatusOK, entry)
}

// UpdateEntry edits an entry or moves it between states.
// @Summary Update a waiting list entry by ID
// @Description Partial update. Sending null for table_id or table_occupation_id removes the link.
// @Tags WaitingList
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body dto.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.EntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list/{id} [put]
func (handler *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateEntryRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	entry, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update waiting list entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entry updated successfully")

	response.WithJSON(w, http.StatusOK, entry)
}

// DeleteEntry removes an entry.
// @Summary Delete a waiting list entry by ID
// @Tags WaitingList
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Data[dto.EntryResponse] "Deleted entry"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list/{id} [delete]
func (handler *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	entry, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete waiting list entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entry deleted successfully")

	response.WithJSON(w, http.StatusOK, entry)
}

// FulfillEntry seats a queued customer.
// @Summary Fulfill a waiting list entry
// @Description Occupy a table for a queued entry and mark it fulfilled.
// @Tags WaitingList
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body dto.FulfillRequest true "Occupation to create"
// @Success 200 {object} response.Data[dto.EntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waiting-list/{id}/fulfill [post]
func (handler *Handler) FulfillEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FulfillEntry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateParam(constant.RequestParamID, id, "uuid"); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.FulfillRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	entry, err := handler.service.Fulfill(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Str("table_id", req.TableID).Msg("failed to fulfill waiting list entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiting list entry fulfilled successfully")

	response.WithJSON(w, http.StatusOK, entry)
}

func listFilterFromRequest(r *http.Request) (dto.ListFilter, error) {
	query := r.URL.Query()

	filter := dto.ListFilter{
		TableID:       query.Get(constant.RequestParamTableID),
		Statuses:      dto.ParseStatuses(query.Get(constant.RequestParamStatuses)),
		CustomerName:  query.Get(constant.RequestParamCustomerName),
		CustomerPhone: query.Get(constant.RequestParamCustomerPhone),
	}

	if filter.TableID != "" {
		if err := validator.ValidateParam(constant.RequestParamTableID, filter.TableID, "uuid"); err != nil {
			return filter, err //nolint:wrapcheck
		}
	}

	var err error

	if filter.StartDate, err = dateParam(query.Get(constant.RequestParamStartDate), constant.RequestParamStartDate); err != nil {
		return filter, err
	}

	if filter.EndDate, err = dateParam(query.Get(constant.RequestParamEndDate), constant.RequestParamEndDate); err != nil {
		return filter, err
	}

	return filter, nil
}

func dateParam(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := timezone.ParseFlexible(value)
	if err != nil {
		return nil, failure.BadRequestFromString(fmt.Sprintf("%s must be an RFC3339 timestamp or a YYYY-MM-DD date", name)) //nolint:wrapcheck
	}

	return &parsed, nil
}
