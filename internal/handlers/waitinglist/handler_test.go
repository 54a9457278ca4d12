package waitinglist_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	otelMocks "billiard/infras/otel/mocks"
	"billiard/internal/domains/waitinglist/model/dto"
	serviceMocks "billiard/internal/domains/waitinglist/service/mocks"
	"billiard/internal/handlers/waitinglist"
	gDto "billiard/shared/dto"
	"billiard/shared/failure"
	"billiard/shared/timezone"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	entryID = "2f4e6a8c-0b1d-4e3f-9a5b-7c9d1e3f5a7b"
	tableID = "8a3c5b8e-1f0c-4a55-9f57-2d7f1b0f4e11"
)

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockWaitingList) {
	t.Helper()

	service := serviceMocks.NewMockWaitingList(gomock.NewController(t))
	handler := waitinglist.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, service
}

func TestCreateEntry(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req dto.CreateEntryRequest) (dto.EntryResponse, error) {
			assert.Equal(t, "Efren", req.CustomerName)
			require.NotNil(t, req.CustomerPhone)
			assert.Equal(t, "+639171234567", *req.CustomerPhone)

			return dto.EntryResponse{ID: entryID, Status: "queued"}, nil
		})

	body := `{"customer_name":"Efren","customer_phone":"+639171234567"}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/waiting-list", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCreateEntryInvalidPhone(t *testing.T) {
	router, _ := newRouter(t)

	body := `{"customer_name":"Efren","customer_phone":"call me"}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/waiting-list", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetEntriesParsesFilter(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10}, gomock.Any()).
		DoAndReturn(func(_ any, _ gDto.QueryParams, filter dto.ListFilter) (dto.GetEntriesResponse, error) {
			assert.Equal(t, tableID, filter.TableID)
			assert.Equal(t, []string{"queued", "!expired"}, filter.Statuses)
			assert.Equal(t, "efr", filter.CustomerName)
			require.NotNil(t, filter.StartDate)
			assert.True(t, filter.StartDate.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, timezone.GetLocation())))
			require.NotNil(t, filter.EndDate)
			assert.True(t, filter.EndDate.Equal(time.Date(2030, 1, 2, 12, 0, 0, 0, time.UTC)))

			return dto.GetEntriesResponse{}, nil
		})

	target := "/waiting-list?table_id=" + tableID + "&statuses=Queued,%20!expired&customer_name=efr" +
		"&start_date=2030-01-01&end_date=2030-01-02T12:00:00Z"

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetEntriesRejectsBadDate(t *testing.T) {
	router, _ := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/waiting-list?start_date=soon", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "start_date")
}

func TestGetEntryByIDWithExpansions(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Get(gomock.Any(), entryID, false, true).Return(dto.EntryResponse{ID: entryID}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/waiting-list/"+entryID+"?with_table_occupation=true", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateEntryClearsTable(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Update(gomock.Any(), entryID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, req dto.UpdateEntryRequest) (dto.EntryResponse, error) {
			assert.True(t, req.TableID.Set)
			assert.False(t, req.TableID.Valid)
			require.NotNil(t, req.Status)
			assert.Equal(t, "cancelled", *req.Status)

			return dto.EntryResponse{ID: entryID, Status: "cancelled"}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/waiting-list/"+entryID, strings.NewReader(`{"table_id":null,"status":"cancelled"}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateEntryUnknownStatus(t *testing.T) {
	router, _ := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/waiting-list/"+entryID, strings.NewReader(`{"status":"seated"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteEntry(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Delete(gomock.Any(), entryID).Return(dto.EntryResponse{ID: entryID}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/waiting-list/"+entryID, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestFulfillEntry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "fulfilled", wantCode: http.StatusOK},
		{name: "not queued", err: failure.UnprocessableEntity("can't fulfill"), wantCode: http.StatusUnprocessableEntity},
		{name: "missing entry", err: failure.NotFound("waiting list entry not found"), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t)

			service.EXPECT().Fulfill(gomock.Any(), entryID, dto.FulfillRequest{TableID: tableID}).
				Return(dto.EntryResponse{ID: entryID, Status: "fulfilled"}, tt.err)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/waiting-list/"+entryID+"/fulfill", strings.NewReader(`{"table_id":"`+tableID+`"}`)))

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
