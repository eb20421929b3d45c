package store

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/lvr/internal/core"
)

func TestPgRows_TownCode(t *testing.T) {
	town := 63000030
	rows := [][]any{
		Row(core.Record{Code: "A1", TownCode: &town}),
		Row(core.Record{Code: "A2"}),
	}

	got := pgRows(rows)
	require.Len(t, got, 2)
	assert.Equal(t, pgtype.Int4{Int32: 63000030, Valid: true}, got[0][townCodeColumn])
	assert.Equal(t, pgtype.Int4{}, got[1][townCodeColumn])
	assert.Equal(t, "A1", got[0][10])

	// Input tuples are left untouched.
	assert.Equal(t, 63000030, rows[0][townCodeColumn])
	assert.Nil(t, rows[1][townCodeColumn])
}

func TestNewPgWriter_Table(t *testing.T) {
	assert.Equal(t, `"lvr_land"`, NewPgWriter(nil, "lvr_land").table.Sanitize())
	assert.Equal(t, `"public"."lvr_land"`, NewPgWriter(nil, "public.lvr_land").table.Sanitize())
}

func TestColumnsTownCodeIndex(t *testing.T) {
	assert.Equal(t, "town_code", Columns[townCodeColumn])
}
