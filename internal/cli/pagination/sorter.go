package pagination

import (
	"sort"

	"github.com/rshade/foodtruckfinder/internal/foodtruck"
)

// Sort fields.
const (
	SortFieldName    = "name"
	SortFieldAddress = "address"
)

// Sorter defines the interface for sorting a page of trucks.
type Sorter interface {
	// Sort sorts a page of trucks by the specified field and order.
	Sort(trucks []foodtruck.Truck, field, order string) []foodtruck.Truck
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// TruckSorter implements Sorter for foodtruck.Truck.
type TruckSorter struct {
	validFields map[string]bool
}

// NewTruckSorter creates a TruckSorter.
func NewTruckSorter() *TruckSorter {
	return &TruckSorter{
		validFields: map[string]bool{
			SortFieldName:    true,
			SortFieldAddress: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *TruckSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *TruckSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of trucks. Comparison is case-sensitive and
// byte-wise, and equal keys keep their upstream order.
// If field is invalid, returns the original slice unchanged.
func (s *TruckSorter) Sort(trucks []foodtruck.Truck, field, order string) []foodtruck.Truck {
	if !s.IsValidField(field) {
		return trucks
	}

	sorted := make([]foodtruck.Truck, len(trucks))
	copy(sorted, trucks)

	key := func(t foodtruck.Truck) string {
		if field == SortFieldAddress {
			return t.Address
		}
		return t.Name
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return key(sorted[i]) > key(sorted[j])
		}
		return key(sorted[i]) < key(sorted[j])
	})

	return sorted
}

// Apply sorts the page according to p, or returns it unchanged when unsorted.
func (p DisplayParams) Apply(sorter Sorter, page []foodtruck.Truck) []foodtruck.Truck {
	if !p.IsSorted() || sorter == nil {
		return page
	}
	return sorter.Sort(page, p.SortField, p.SortOrder)
}
