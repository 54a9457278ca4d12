package nullable_test

import (
	"encoding/json"
	"testing"
	"time"

	"billiard/shared/nullable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	TableID    nullable.Nullable[string]    `json:"table_id"`
	FinishedAt nullable.Nullable[time.Time] `json:"finished_at"`
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSet     bool
		wantValid   bool
		wantTableID string
	}{
		{name: "absent key", body: `{}`, wantSet: false, wantValid: false},
		{name: "explicit null", body: `{"table_id":null}`, wantSet: true, wantValid: false},
		{name: "value", body: `{"table_id":"t-1"}`, wantSet: true, wantValid: true, wantTableID: "t-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload

			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.TableID.Set)
			assert.Equal(t, tt.wantValid, p.TableID.Valid)
			assert.Equal(t, tt.wantTableID, p.TableID.Value)
			assert.Equal(t, tt.wantSet && !tt.wantValid, p.TableID.IsNull())
		})
	}
}

func TestUnmarshalTime(t *testing.T) {
	var p payload

	require.NoError(t, json.Unmarshal([]byte(`{"finished_at":"2024-05-01T10:00:00Z"}`), &p))
	require.NotNil(t, p.FinishedAt.Ptr())
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(*p.FinishedAt.Ptr()))
	assert.False(t, p.TableID.Set)
}

func TestUnmarshalInvalid(t *testing.T) {
	var p payload

	assert.Error(t, json.Unmarshal([]byte(`{"finished_at":"tomorrow"}`), &p))
}

func TestMarshal(t *testing.T) {
	out, err := json.Marshal(payload{TableID: nullable.From("t-1"), FinishedAt: nullable.Null[time.Time]()})

	require.NoError(t, err)
	assert.JSONEq(t, `{"table_id":"t-1","finished_at":null}`, string(out))
}

func TestPtr(t *testing.T) {
	assert.Nil(t, nullable.Null[string]().Ptr())
	assert.Nil(t, nullable.Nullable[string]{}.Ptr())
	assert.Equal(t, "x", *nullable.From("x").Ptr())
}
