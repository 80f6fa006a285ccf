package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

func TestConditionNone(t *testing.T) {
	c, err := Condition(filter.None())
	require.NoError(t, err)
	assert.Empty(t, c.Clause)
	assert.Empty(t, c.where())
}

func TestConditionTranslatesEachKind(t *testing.T) {
	ts := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		pred   filter.Predicate
		clause string
		params []any
	}{
		{"contains", filter.Contains(filter.FieldName, "al"), "instr(name, ?) > 0", []any{"al"}},
		{"race", filter.Eq(filter.FieldRace, model.RaceOrc), "race = ?", []any{"ORC"}},
		{"banned", filter.Eq(filter.FieldBanned, true), "banned = ?", []any{int64(1)}},
		{"min only", filter.Range(filter.FieldExperience, 10, nil), "experience >= ?", []any{int64(10)}},
		{"max only", filter.Range(filter.FieldLevel, nil, 3), "level <= ?", []any{int64(3)}},
		{"both", filter.Range(filter.FieldBirthday, ts, ts), "birthday >= ? AND birthday <= ?",
			[]any{model.Millis(ts), model.Millis(ts)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Condition(tt.pred)
			require.NoError(t, err)
			assert.Equal(t, tt.clause, c.Clause)
			assert.Equal(t, tt.params, c.Params)
		})
	}
}

func TestConditionConjunction(t *testing.T) {
	c, err := Condition(filter.And(
		filter.Contains(filter.FieldTitle, "x"),
		filter.Range(filter.FieldExperience, 1, 2),
	))
	require.NoError(t, err)
	assert.Equal(t, "(instr(title, ?) > 0 AND experience >= ? AND experience <= ?)", c.Clause)
	assert.Equal(t, []any{"x", int64(1), int64(2)}, c.Params)
	assert.Equal(t, " WHERE "+c.Clause, c.where())
}

func TestConditionRejectsUnknownField(t *testing.T) {
	_, err := Condition(filter.Eq(filter.Field("password"), "x"))
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, " ORDER BY id ASC", orderBy(model.Sort{}))
	assert.Equal(t, " ORDER BY id DESC", orderBy(model.Sort{Field: model.SortByID, Direction: model.SortDesc}))
	assert.Equal(t, " ORDER BY experience DESC, id ASC",
		orderBy(model.Sort{Field: model.SortByExperience, Direction: model.SortDesc}))
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;"
	assert.Equal(t, "\nCREATE TABLE a(x);\n", extractUpMigration(content))
	assert.Equal(t, "SELECT 1;", extractUpMigration("SELECT 1;"))
}
