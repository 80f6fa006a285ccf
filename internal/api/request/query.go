package request

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/model"
)

// Query parameter names accepted by the player list endpoints
const (
	ParamName          = "name"
	ParamTitle         = "title"
	ParamRace          = "race"
	ParamProfession    = "profession"
	ParamAfter         = "after"
	ParamBefore        = "before"
	ParamMinExperience = "minExperience"
	ParamMaxExperience = "maxExperience"
	ParamMinLevel      = "minLevel"
	ParamMaxLevel      = "maxLevel"
	ParamBanned        = "banned"
	ParamOrder         = "order"
	ParamDirection     = "direction"
	ParamPageNumber    = "pageNumber"
	ParamPageSize      = "pageSize"
	ParamFilter        = "filter"
)

// ListQuery is a parsed player list query string
type ListQuery struct {
	Criteria filter.Criteria
	Page     model.PageRequest
	Filter   string // AIP-160 expression, may be empty
}

// ParseCriteria reads the optional filter parameters. A parameter that is
// present but malformed is an error; an absent one is left nil.
func ParseCriteria(q url.Values) (filter.Criteria, error) {
	var c filter.Criteria
	var err error

	if q.Has(ParamName) {
		v := q.Get(ParamName)
		c.Name = &v
	}
	if q.Has(ParamTitle) {
		v := q.Get(ParamTitle)
		c.Title = &v
	}
	if q.Has(ParamRace) {
		race, perr := model.ParseRace(q.Get(ParamRace))
		if perr != nil {
			return c, fmt.Errorf("%s: %w", ParamRace, perr)
		}
		c.Race = &race
	}
	if q.Has(ParamProfession) {
		profession, perr := model.ParseProfession(q.Get(ParamProfession))
		if perr != nil {
			return c, fmt.Errorf("%s: %w", ParamProfession, perr)
		}
		c.Profession = &profession
	}
	if c.After, err = optionalInt64(q, ParamAfter); err != nil {
		return c, err
	}
	if c.Before, err = optionalInt64(q, ParamBefore); err != nil {
		return c, err
	}
	if c.MinExperience, err = optionalInt(q, ParamMinExperience); err != nil {
		return c, err
	}
	if c.MaxExperience, err = optionalInt(q, ParamMaxExperience); err != nil {
		return c, err
	}
	if c.MinLevel, err = optionalInt(q, ParamMinLevel); err != nil {
		return c, err
	}
	if c.MaxLevel, err = optionalInt(q, ParamMaxLevel); err != nil {
		return c, err
	}
	if q.Has(ParamBanned) {
		b, perr := strconv.ParseBool(q.Get(ParamBanned))
		if perr != nil {
			return c, fmt.Errorf("%s: invalid boolean %q", ParamBanned, q.Get(ParamBanned))
		}
		c.Banned = &b
	}
	return c, nil
}

// ParsePage reads ordering and paging parameters. Missing or out-of-range
// numbers are left for PageRequest.Normalize to fix up.
func ParsePage(q url.Values) (model.PageRequest, error) {
	var req model.PageRequest

	if q.Has(ParamOrder) {
		field, ok := model.ParseSortField(q.Get(ParamOrder))
		if !ok {
			return req, fmt.Errorf("%s: unknown field %q", ParamOrder, q.Get(ParamOrder))
		}
		req.Sort.Field = field
	}
	if q.Has(ParamDirection) {
		dir, ok := model.ParseSortDirection(q.Get(ParamDirection))
		if !ok {
			return req, fmt.Errorf("%s: unknown direction %q", ParamDirection, q.Get(ParamDirection))
		}
		req.Sort.Direction = dir
	}
	number, err := optionalInt(q, ParamPageNumber)
	if err != nil {
		return req, err
	}
	if number != nil {
		req.Number = *number
	}
	size, err := optionalInt(q, ParamPageSize)
	if err != nil {
		return req, err
	}
	if size != nil {
		req.Size = *size
	}
	return req.Normalize(), nil
}

// ParseListQuery reads criteria, paging and the filter expression
func ParseListQuery(q url.Values) (ListQuery, error) {
	criteria, err := ParseCriteria(q)
	if err != nil {
		return ListQuery{}, err
	}
	page, err := ParsePage(q)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{Criteria: criteria, Page: page, Filter: q.Get(ParamFilter)}, nil
}

// Predicate combines the parameter criteria with the filter expression
func (lq ListQuery) Predicate() (filter.Predicate, error) {
	pred := lq.Criteria.Predicate()
	if lq.Filter == "" {
		return pred, nil
	}
	expr, err := filter.ParseExpression(lq.Filter)
	if err != nil {
		return filter.Predicate{}, err
	}
	return filter.And(pred, expr), nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid integer %q", key, q.Get(key))
	}
	return &n, nil
}

func optionalInt64(q url.Values, key string) (*int64, error) {
	if !q.Has(key) {
		return nil, nil
	}
	n, err := strconv.ParseInt(q.Get(key), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid integer %q", key, q.Get(key))
	}
	return &n, nil
}
