package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Paging limits and defaults.
const (
	DefaultPageSize  = 10
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// DisplayParams holds the paging flags of the browse command.
type DisplayParams struct {
	// PageSize is the number of trucks per page.
	PageSize int

	// SortField is the field each page is sorted by; empty keeps upstream order.
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewDisplayParams creates DisplayParams with default values.
func NewDisplayParams() *DisplayParams {
	return &DisplayParams{
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// NewDisplayParamsFromFlags builds and validates DisplayParams from raw flag values.
func NewDisplayParamsFromFlags(pageSize int, sortExpr string) (*DisplayParams, error) {
	field, order, err := ParseSort(sortExpr)
	if err != nil {
		return nil, err
	}
	p := &DisplayParams{PageSize: pageSize, SortField: field, SortOrder: order}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the parameters are within bounds.
func (p DisplayParams) Validate() error {
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	if p.SortField != "" && !NewTruckSorter().IsValidField(p.SortField) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, p.SortField,
			strings.Join(NewTruckSorter().GetValidFields(), ", "))
	}
	return nil
}

// IsSorted reports whether pages are sorted before display.
func (p DisplayParams) IsSorted() bool {
	return p.SortField != ""
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "name:desc", "address:asc".
// An empty string means no sorting.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return strings.ToLower(field), order, nil
}
