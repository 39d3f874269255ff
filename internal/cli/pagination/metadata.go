package pagination

// PageMeta describes one rendered page of a browse session.
type PageMeta struct {
	// Number is the 1-based page number.
	Number int `json:"number"      yaml:"number"`
	// PageSize is the configured page size.
	PageSize int `json:"page_size"   yaml:"page_size"`
	// Items is the number of trucks on this page.
	Items int `json:"items"       yaml:"items"`
	// FirstIndex is the 1-based overall position of the first truck on the page.
	FirstIndex int `json:"first_index" yaml:"first_index"`
	// HasNext is true when the page is full, so another page may follow.
	HasNext bool `json:"has_next"    yaml:"has_next"`
}

// NewPageMeta builds metadata for page number (1-based) holding items trucks.
func NewPageMeta(number, pageSize, items int) PageMeta {
	if number < 1 {
		number = 1
	}
	return PageMeta{
		Number:     number,
		PageSize:   pageSize,
		Items:      items,
		FirstIndex: (number-1)*pageSize + 1,
		HasNext:    pageSize > 0 && items == pageSize,
	}
}

// LastIndex returns the 1-based overall position of the last truck on the page,
// or FirstIndex-1 for an empty page.
func (m PageMeta) LastIndex() int {
	return m.FirstIndex + m.Items - 1
}
