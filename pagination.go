package sift

import (
	"fmt"
	"net/url"
	"strconv"
)

// Reserved pagination parameter names.
const (
	PageParam    = "page"
	PerPageParam = "per_page"
)

const (
	DefaultPage    = 0
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination is the validated page/per_page pair for one request. Bounds are
// checked once, at construction; the value is immutable afterwards.
type Pagination struct {
	page    int
	perPage int
}

// NewPagination reads page (>= 0, default 0) and per_page (1..100, default 10)
// from params. Out-of-range or non-integer values are pagination input errors,
// batched so both parameters get reported.
func NewPagination(params url.Values) (Pagination, error) {
	p := Pagination{page: DefaultPage, perPage: DefaultPerPage}
	var inputErrs InputErrors

	if raw, ok := lastValue(params, PageParam); ok {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			inputErrs = append(inputErrs, NewPaginationError(PageParam, fmt.Sprintf("invalid integer %q", raw)))
		case v < 0:
			inputErrs = append(inputErrs, NewPaginationError(PageParam, "must be greater than or equal to 0"))
		default:
			p.page = v
		}
	}

	if raw, ok := lastValue(params, PerPageParam); ok {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			inputErrs = append(inputErrs, NewPaginationError(PerPageParam, fmt.Sprintf("invalid integer %q", raw)))
		case v < 1 || v > MaxPerPage:
			inputErrs = append(inputErrs, NewPaginationError(PerPageParam, fmt.Sprintf("must be between 1 and %d", MaxPerPage)))
		default:
			p.perPage = v
		}
	}

	if len(inputErrs) > 0 {
		return Pagination{}, inputErrs
	}
	return p, nil
}

// lastValue distinguishes an absent key from a present-but-empty one: only an
// absent key falls back to the default; an empty value fails integer parsing.
func lastValue(params url.Values, key string) (string, bool) {
	vs := params[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (p Pagination) Page() int    { return p.page }
func (p Pagination) PerPage() int { return p.perPage }

// Offset is the number of rows skipped before the requested page.
func (p Pagination) Offset() int { return p.page * p.perPage }

// Limit is the number of rows on one page.
func (p Pagination) Limit() int { return p.perPage }

// Page is the response envelope wrapping one page of executed results.
type Page[T any] struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Results []T `json:"results"`
}

// NewPage wraps results into the response envelope. Results are never nil so
// an empty page encodes as an empty JSON array.
func NewPage[T any](p Pagination, results []T) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{Page: p.page, PerPage: p.perPage, Results: results}
}
