package model

import "time"

// FilterRequest is the untrusted listing input common to every resource.
type FilterRequest struct {
	// Page is the 1-based page number. Values below 1 are coerced to 1.
	Page int

	// Limit is the page size. Zero-value means the resource default. Clamped to [1,100].
	Limit int

	// Sort is the API name of the sort field. Unknown names fall back to createdAt.
	Sort string

	// Order is "asc" or "desc" (case-insensitive). Anything else means desc.
	Order string

	// Search is a free-text term matched literally against the resource search fields.
	Search string

	// EntityStatus filters by exact status. Empty or unknown values exclude DELETED entities.
	EntityStatus string

	// CreatedFrom is the inclusive lower bound on creation time. Nil is ignored.
	CreatedFrom *time.Time

	// CreatedTo is the inclusive upper bound on creation time. Nil is ignored.
	CreatedTo *time.Time
}

// SortOrder is the direction of a sort.
type SortOrder int

const (
	// Ascending sorts smallest first.
	Ascending SortOrder = 1

	// Descending sorts largest first.
	Descending SortOrder = -1
)

// Operator is the comparison of a Clause.
type Operator int

const (
	// OpEq matches equal values.
	OpEq Operator = iota
	// OpIn matches any of a slice of values.
	OpIn
	// OpGte matches values greater than or equal to the clause value.
	OpGte
	// OpLte matches values lower than or equal to the clause value.
	OpLte
)

// Clause is a resource-specific condition of a listing.
type Clause struct {
	Field string
	Op    Operator
	Value any
}

// Eq builds an equality clause.
func Eq(field string, value any) Clause { return Clause{Field: field, Op: OpEq, Value: value} }

// In builds a membership clause.
func In(field string, values any) Clause { return Clause{Field: field, Op: OpIn, Value: values} }

// Gte builds a lower-bound clause.
func Gte(field string, value any) Clause { return Clause{Field: field, Op: OpGte, Value: value} }

// Lte builds an upper-bound clause.
func Lte(field string, value any) Clause { return Clause{Field: field, Op: OpLte, Value: value} }

// ListQuery is the normalized, bounded form of a FilterRequest ready to be executed by a store.
type ListQuery struct {
	Page  int
	Limit int
	Skip  int64

	// SortField is a whitelisted attribute name.
	SortField string
	SortOrder SortOrder

	// Status is the exact status to match. Nil means "everything but DELETED".
	Status *EntityStatus

	// Search is the raw term. Stores must match it literally.
	Search       string
	SearchFields []string

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	Clauses []Clause
}

// Page is the uniform paginated envelope.
type Page[T any] struct {
	Data            []T   `json:"data"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPage computes the pagination flags for a page window.
func NewPage[T any](data []T, totalItems int64, page, limit int) *Page[T] {
	if data == nil {
		data = []T{}
	}
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return &Page[T]{
		Data:            data,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
