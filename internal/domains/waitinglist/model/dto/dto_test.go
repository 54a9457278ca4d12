package dto_test

import (
	"encoding/json"
	"testing"

	"billiard/internal/domains/waitinglist/model"
	"billiard/internal/domains/waitinglist/model/dto"
	gDto "billiard/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatuses(t *testing.T) {
	assert.Equal(t, []string{"queued", "!expired"}, dto.ParseStatuses(" Queued, ,!expired,"))
	assert.Empty(t, dto.ParseStatuses(""))
}

func TestCreateEntryRequestToModel(t *testing.T) {
	phone := "+6281234"
	req := dto.CreateEntryRequest{CustomerName: "Ann", CustomerPhone: &phone}

	entry := req.ToModel()

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, model.StatusQueued, entry.Status)
	assert.Equal(t, &phone, entry.CustomerPhone)
	assert.Nil(t, entry.TableID)
	assert.Nil(t, entry.TableOccupationID)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
}

func TestUpdateEntryRequestPresence(t *testing.T) {
	var req dto.UpdateEntryRequest

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`{"table_id": null}`), &req))
	assert.False(t, req.IsEmpty())
	assert.True(t, req.TableID.IsNull())
}

func TestEntryResponseKeepsNullLinks(t *testing.T) {
	var res dto.EntryResponse
	res.FromModel(model.Entry{ID: "e-1", CustomerName: "Ann", Status: model.StatusQueued})

	encoded, err := json.Marshal(res)
	require.NoError(t, err)

	assert.Contains(t, string(encoded), `"table_id":null`)
	assert.Contains(t, string(encoded), `"table_occupation_id":null`)
	assert.NotContains(t, string(encoded), `"table_occupation":`)
}

func TestGetEntriesResponseFromModels(t *testing.T) {
	entries := []model.Entry{{ID: "e-1", Status: model.StatusQueued}, {ID: "e-2", Status: model.StatusQueued}}
	params := gDto.QueryParams{Page: 1, Limit: 1}
	filter := dto.ListFilter{TableID: "t-1", Statuses: []string{model.StatusQueued}}

	var res dto.GetEntriesResponse
	res.FromModels(entries, params, 2, filter)

	assert.Equal(t, 2, res.TotalPages)
	require.NotNil(t, res.TableID)
	assert.Equal(t, "t-1", *res.TableID)
	assert.Equal(t, []string{model.StatusQueued}, res.Statuses)
	assert.Len(t, res.WaitingListEntries, 2)
}
