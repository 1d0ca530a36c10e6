// Package query normalizes untrusted listing requests into bounded, whitelisted store queries.
package query

import (
	"math"
	"strings"
	"time"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

const (
	// MaxLimit is the largest page size a listing may request.
	MaxLimit = 100

	// FallbackLimit is used when a Spec does not declare a default page size.
	FallbackLimit = 10

	// DefaultSortField is the attribute used whenever the requested sort is not whitelisted.
	DefaultSortField = model.FieldCreatedAt
)

// Spec declares what a resource allows to be sorted and searched.
type Spec struct {
	// Sortable maps API sort names to attribute names.
	Sortable map[string]string

	// SearchFields are the text attributes a search term is matched against.
	SearchFields []string

	// DefaultLimit is the page size used when the request does not set one.
	DefaultLimit int
}

// Build clamps and resolves req against spec. It never fails: unknown sort, order and status values
// fall back to their defaults.
func Build(req model.FilterRequest, spec Spec, clauses ...model.Clause) model.ListQuery {
	page := req.Page
	if page < 1 {
		page = 1
	}
	fallback := spec.DefaultLimit
	if fallback == 0 {
		fallback = FallbackLimit
	}
	limit := Limit(req.Limit, fallback)

	q := model.ListQuery{
		Page:         page,
		Limit:        limit,
		Skip:         Skip(page, limit),
		SortField:    SortField(req.Sort, spec.Sortable),
		SortOrder:    Order(req.Order),
		Search:       strings.TrimSpace(req.Search),
		SearchFields: spec.SearchFields,
		CreatedFrom:  req.CreatedFrom,
		CreatedTo:    req.CreatedTo,
		Clauses:      clauses,
	}
	if status, ok := model.ParseEntityStatus(req.EntityStatus); ok {
		q.Status = &status
	}
	return q
}

// SortField resolves an API sort name through the whitelist.
func SortField(sort string, sortable map[string]string) string {
	if field, ok := sortable[strings.TrimSpace(sort)]; ok {
		return field
	}
	return DefaultSortField
}

// Order maps "asc" (any case) to ascending and everything else to descending.
func Order(order string) model.SortOrder {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return model.Ascending
	}
	return model.Descending
}

// ParseDateBound parses an RFC 3339 timestamp or a YYYY-MM-DD date. A date-only upper bound is moved
// to the last instant of that UTC day so that the bound stays inclusive. Empty input yields nil.
func ParseDateBound(field, value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, model.Invalid(field, "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}
	if upper {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

// Limit resolves a requested page size. Zero means fallback, anything else is clamped to [1, MaxLimit].
func Limit(requested, fallback int) int {
	if requested == 0 {
		requested = fallback
	}
	return clamp(requested, 1, MaxLimit)
}

// Skip returns the number of items preceding page. It saturates at math.MaxInt64 so that pages far
// beyond the end stay valid and simply match nothing.
func Skip(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	before := int64(page - 1)
	if before > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return before * int64(limit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
