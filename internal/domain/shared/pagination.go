package shared

import (
	"errors"
	"strings"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ErrInvalidSortDirection is returned for a direction other than asc or desc.
var ErrInvalidSortDirection = errors.New("sort: direction must be asc or desc")

// SortDirection is the ordering direction of a sort.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses asc/desc case-insensitively; empty means asc.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", ErrInvalidSortDirection
	}
}

// Sort orders a page by a single property.
type Sort struct {
	Property  string
	Direction SortDirection
}

// PageRequest selects a zero-based page of a sorted result.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// NewPageRequest normalizes page and size: a negative page becomes 0, a size
// below 1 becomes DefaultPageSize and a size above MaxPageSize is capped.
func NewPageRequest(page, size int, sort Sort) PageRequest {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if sort.Direction == "" {
		sort.Direction = SortAsc
	}
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Offset returns the row offset of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of a larger result.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// NewPage builds a page for req holding content out of total elements.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages returns the number of pages needed for all elements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// NumberOfElements returns how many elements this page holds.
func (p Page[T]) NumberOfElements() int {
	return len(p.Content)
}

// First reports whether this is the first page.
func (p Page[T]) First() bool {
	return p.Number == 0
}

// Last reports whether no page follows this one.
func (p Page[T]) Last() bool {
	return p.Number+1 >= p.TotalPages()
}

// MapPage converts the content of a page, keeping its position.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}
