package table_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "billiard/infras/otel/mocks"
	"billiard/internal/domains/table/model/dto"
	serviceMocks "billiard/internal/domains/table/service/mocks"
	"billiard/internal/handlers/table"
	"billiard/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tableID = "8a3c5b8e-1f0c-4a55-9f57-2d7f1b0f4e11"

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockTable) {
	t.Helper()

	service := serviceMocks.NewMockTable(gomock.NewController(t))
	handler := table.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, service
}

func TestCreateTable(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Create(gomock.Any(), dto.CreateTableRequest{Number: 5, Brand: "diamond"}).
		Return(dto.TableResponse{ID: tableID, Number: 5, Brand: "diamond"}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tables", strings.NewReader(`{"number":5,"brand":"diamond"}`)))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Data dto.TableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, tableID, body.Data.ID)
}

func TestCreateTableInvalidBody(t *testing.T) {
	router, _ := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/tables", strings.NewReader(`{"number":0,"brand":"ikea"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetTableByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		setup    func(service *serviceMocks.MockTable)
		wantCode int
	}{
		{
			name: "found",
			id:   tableID,
			setup: func(service *serviceMocks.MockTable) {
				service.EXPECT().Get(gomock.Any(), tableID).Return(dto.TableResponse{ID: tableID}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "not found",
			id:   tableID,
			setup: func(service *serviceMocks.MockTable) {
				service.EXPECT().Get(gomock.Any(), tableID).Return(dto.TableResponse{}, failure.NotFound("table not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "malformed id",
			id:       "table-1",
			setup:    func(_ *serviceMocks.MockTable) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t)
			tt.setup(service)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tables/"+tt.id, nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestUpdateTable(t *testing.T) {
	router, service := newRouter(t)

	number := 7
	service.EXPECT().Update(gomock.Any(), tableID, dto.UpdateTableRequest{Number: &number}).
		Return(dto.TableResponse{ID: tableID, Number: 7}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/tables/"+tableID, strings.NewReader(`{"number":7}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteTableStillReferenced(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Delete(gomock.Any(), tableID).
		Return(dto.TableResponse{}, failure.UnprocessableEntity("table is still referenced"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/tables/"+tableID, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.JSONEq(t, `{"message":"table is still referenced"}`, recorder.Body.String())
}
