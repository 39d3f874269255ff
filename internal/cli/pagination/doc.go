// Package pagination provides the display-side paging options of the browse
// command: page size, the optional per-page sort, and page metadata.
//
// This package contains:
//   - DisplayParams: flag values and their validation
//   - ParseSort: "field" / "field:order" parsing
//   - TruckSorter: stable per-page sorting of trucks
//   - PageMeta: numbering information for a rendered page
//
// Sorting is opt-in. With no sort field each page keeps upstream order.
package pagination
