package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

// SQLCondition is a WHERE clause fragment with positional parameters
type SQLCondition struct {
	Clause string
	Params []any
}

// columns maps filter fields to player table columns
var columns = map[filter.Field]string{
	filter.FieldName:       "name",
	filter.FieldTitle:      "title",
	filter.FieldRace:       "race",
	filter.FieldProfession: "profession",
	filter.FieldBirthday:   "birthday",
	filter.FieldExperience: "experience",
	filter.FieldLevel:      "level",
	filter.FieldBanned:     "banned",
}

// sortColumns maps sort fields to player table columns
var sortColumns = map[model.SortField]string{
	model.SortByID:         "id",
	model.SortByName:       "name",
	model.SortByExperience: "experience",
	model.SortByBirthday:   "birthday",
	model.SortByLevel:      "level",
}

// Condition translates a predicate into SQL. A None predicate yields an
// empty clause.
func Condition(p filter.Predicate) (SQLCondition, error) {
	switch p.Kind {
	case filter.KindNone:
		return SQLCondition{}, nil
	case filter.KindAnd:
		clauses := make([]string, 0, len(p.Terms))
		var params []any
		for _, t := range p.Terms {
			c, err := Condition(t)
			if err != nil {
				return SQLCondition{}, err
			}
			if c.Clause == "" {
				continue
			}
			clauses = append(clauses, c.Clause)
			params = append(params, c.Params...)
		}
		if len(clauses) == 0 {
			return SQLCondition{}, nil
		}
		return SQLCondition{
			Clause: "(" + strings.Join(clauses, " AND ") + ")",
			Params: params,
		}, nil
	}

	column, ok := columns[p.Field]
	if !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", p.Field)
	}

	switch p.Kind {
	case filter.KindEq:
		v, err := sqlValue(p.Value)
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: column + " = ?", Params: []any{v}}, nil
	case filter.KindContains:
		// instr is case-sensitive where LIKE is not
		v, err := sqlValue(p.Value)
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: "instr(" + column + ", ?) > 0", Params: []any{v}}, nil
	case filter.KindRange:
		var clauses []string
		var params []any
		if p.Min != nil {
			v, err := sqlValue(p.Min)
			if err != nil {
				return SQLCondition{}, err
			}
			clauses = append(clauses, column+" >= ?")
			params = append(params, v)
		}
		if p.Max != nil {
			v, err := sqlValue(p.Max)
			if err != nil {
				return SQLCondition{}, err
			}
			clauses = append(clauses, column+" <= ?")
			params = append(params, v)
		}
		return SQLCondition{Clause: strings.Join(clauses, " AND "), Params: params}, nil
	}
	return SQLCondition{}, fmt.Errorf("unsupported predicate kind: %s", p.Kind)
}

// sqlValue converts a predicate operand into its column representation
func sqlValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case model.Race:
		return string(val), nil
	case model.Profession:
		return string(val), nil
	case int:
		return int64(val), nil
	case time.Time:
		return model.Millis(val), nil
	case bool:
		if val {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return nil, fmt.Errorf("unsupported value type: %T", v)
}

// where renders c as a WHERE clause, or nothing for an empty condition
func (c SQLCondition) where() string {
	if c.Clause == "" {
		return ""
	}
	return " WHERE " + c.Clause
}

// orderBy renders the ORDER BY clause for s; ID breaks ties
func orderBy(s model.Sort) string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = "id"
	}
	dir := "ASC"
	if s.Direction == model.SortDesc {
		dir = "DESC"
	}
	if column == "id" {
		return " ORDER BY id " + dir
	}
	return " ORDER BY " + column + " " + dir + ", id ASC"
}
