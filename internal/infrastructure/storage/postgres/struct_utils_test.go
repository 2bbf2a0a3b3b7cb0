package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

type mockEntry struct {
	entity.BaseEntry
	PartyName string        `db:"party_name" json:"partyName"`
	RiceQty   types.Measure `db:"rice_qty" json:"riceQty"`
	Ignored   string        `db:"-"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[*mockEntry]()

	assert.Equal(t, []string{
		"id", "mill_id", "date", "created_by", "updated_by", "created_at", "updated_at",
		"party_name", "rice_qty",
	}, cols)
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	userID := id.New()
	e := &mockEntry{PartyName: "Acme", RiceQty: types.NewMeasure(100)}
	e.ID = id.New()
	e.MillID = id.New()
	e.Date = now
	e.CreatedBy = &userID

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, e.MillID, m["mill_id"])
	assert.Equal(t, now, m["date"])
	assert.Equal(t, &userID, m["created_by"])
	assert.Equal(t, "Acme", m["party_name"])
	assert.NotContains(t, m, "Ignored")
	assert.NotContains(t, m, "created_by_user")

	var nilEntry *mockEntry
	assert.Nil(t, StructToMap(nilEntry))
}

func TestPickColumns(t *testing.T) {
	data := map[string]any{"id": 1, "mill_id": 2, "party_name": "x", "extra": true}
	got := PickColumns(data, []string{"id", "mill_id", "party_name"}, "id")
	assert.Equal(t, map[string]any{"mill_id": 2, "party_name": "x"}, got)
}

func TestContains_EscapesWildcards(t *testing.T) {
	sql, args, err := Contains("party_name", `50%_off\`).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "party_name ILIKE ?", sql)
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}
