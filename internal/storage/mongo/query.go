package mongo

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

// fields maps filter fields to document keys
var fields = map[filter.Field]string{
	filter.FieldName:       "name",
	filter.FieldTitle:      "title",
	filter.FieldRace:       "race",
	filter.FieldProfession: "profession",
	filter.FieldBirthday:   "birthday",
	filter.FieldExperience: "experience",
	filter.FieldLevel:      "level",
	filter.FieldBanned:     "banned",
}

var sortKeys = map[model.SortField]string{
	model.SortByID:         "_id",
	model.SortByName:       "name",
	model.SortByExperience: "experience",
	model.SortByBirthday:   "birthday",
	model.SortByLevel:      "level",
}

// Filter translates a predicate into a query document. None becomes the
// empty document, which matches every player.
func Filter(p filter.Predicate) (bson.D, error) {
	switch p.Kind {
	case filter.KindNone:
		return bson.D{}, nil
	case filter.KindAnd:
		terms := bson.A{}
		for _, t := range p.Terms {
			doc, err := Filter(t)
			if err != nil {
				return nil, err
			}
			if len(doc) > 0 {
				terms = append(terms, doc)
			}
		}
		if len(terms) == 0 {
			return bson.D{}, nil
		}
		return bson.D{{Key: "$and", Value: terms}}, nil
	}

	key, ok := fields[p.Field]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", p.Field)
	}

	switch p.Kind {
	case filter.KindEq:
		v, err := bsonValue(p.Value)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: key, Value: v}}, nil
	case filter.KindContains:
		s, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("contains on %s needs a string, got %T", p.Field, p.Value)
		}
		return bson.D{{Key: key, Value: bson.D{{Key: "$regex", Value: regexp.QuoteMeta(s)}}}}, nil
	case filter.KindRange:
		bounds := bson.D{}
		if p.Min != nil {
			v, err := bsonValue(p.Min)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bson.E{Key: "$gte", Value: v})
		}
		if p.Max != nil {
			v, err := bsonValue(p.Max)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bson.E{Key: "$lte", Value: v})
		}
		return bson.D{{Key: key, Value: bounds}}, nil
	}
	return nil, fmt.Errorf("unsupported predicate kind: %s", p.Kind)
}

func bsonValue(v any) (any, error) {
	switch val := v.(type) {
	case string, bool, time.Time:
		return val, nil
	case int:
		return int64(val), nil
	case model.Race:
		return string(val), nil
	case model.Profession:
		return string(val), nil
	}
	return nil, fmt.Errorf("unsupported value type: %T", v)
}

// sortDoc orders by the requested key with _id ascending as tiebreak
func sortDoc(s model.Sort) bson.D {
	key, ok := sortKeys[s.Field]
	if !ok {
		key = "_id"
	}
	dir := 1
	if s.Direction == model.SortDesc {
		dir = -1
	}
	if key == "_id" {
		return bson.D{{Key: "_id", Value: dir}}
	}
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: 1}}
}
