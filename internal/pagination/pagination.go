// Package pagination implements the page/size query semantics shared by
// every list endpoint. Raw query values are clamped into a usable request
// rather than rejected: an out-of-range page or size never fails, it is
// pulled back into bounds. Repositories count matching rows before applying
// the offset/limit so the reported total ignores pagination.
package pagination

import "strconv"

// Params is a normalized pagination request. Page is always >= 1 and Size
// is always within [1, the configured maximum].
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Build normalizes raw page/size query values into Params. Absent or
// unparsable values fall back to defaults; out-of-range values are clamped.
// Build never fails, and it is idempotent: feeding its output back in
// returns the same Params.
func Build(rawPage, rawSize string, defaultSize, maxSize int) Params {
	page := 1
	if p, err := strconv.Atoi(rawPage); err == nil && p >= 1 {
		page = p
	}

	size := defaultSize
	if s, err := strconv.Atoi(rawSize); err == nil && s >= 1 {
		size = s
	}
	if size > maxSize {
		size = maxSize
	}

	return Params{Page: page, Size: size}
}

// Offset returns the number of rows to skip: (page-1)*size.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit returns the maximum number of rows to fetch.
func (p Params) Limit() int {
	return p.Size
}

// Result is the paginated response envelope returned by list endpoints.
// Total counts every matching record ignoring pagination; Pages is
// ceil(Total/Size), with zero matches yielding zero pages.
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// NewResult assembles a Result from a fetched page slice and the total match
// count. A nil items slice becomes an empty one so JSON renders [] rather
// than null (an offset past the end of the data set is not an error).
func NewResult[T any](items []T, total int, p Params) Result[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Result[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: (total + p.Size - 1) / p.Size,
	}
}
