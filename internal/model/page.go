package model

import (
	"math"
	"strings"
)

// DefaultPageSize is used when a page request has no usable size
const DefaultPageSize = 3

// SortField names a player attribute that pages can be ordered by
type SortField string

const (
	SortByID         SortField = "id"
	SortByName       SortField = "name"
	SortByExperience SortField = "experience"
	SortByBirthday   SortField = "birthday"
	SortByLevel      SortField = "level"
)

// ParseSortField accepts names like "ID" or "experience"
func ParseSortField(s string) (SortField, bool) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case SortByID, SortByName, SortByExperience, SortByBirthday, SortByLevel:
		return f, true
	}
	return "", false
}

// SortDirection is ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts "asc"/"desc" in any case
func ParseSortDirection(s string) (SortDirection, bool) {
	d := SortDirection(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case SortAsc, SortDesc:
		return d, true
	}
	return "", false
}

// Sort orders a page; ties are always broken by ascending ID
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// PageRequest selects one zero-based page of results
type PageRequest struct {
	Number int
	Size   int
	Sort   Sort
}

// Normalize fills defaults and clamps out-of-range values
func (r PageRequest) Normalize() PageRequest {
	if r.Number < 0 {
		r.Number = 0
	}
	if r.Size < 1 {
		r.Size = DefaultPageSize
	}
	// keeps Offset from overflowing; such a page is past the end anyway
	if r.Number > math.MaxInt/r.Size {
		r.Number = math.MaxInt / r.Size
	}
	if r.Sort.Field == "" {
		r.Sort.Field = SortByID
	}
	if r.Sort.Direction == "" {
		r.Sort.Direction = SortAsc
	}
	return r
}

// Offset is the index of the first record on the page
func (r PageRequest) Offset() int {
	return r.Number * r.Size
}

// Page is one slice of a filtered, sorted result
type Page struct {
	Players []*Player
	Total   int // all matching records, before paging
	Number  int
	Size    int
}
