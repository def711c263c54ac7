package model

// Page is a from/size window. Offsets are aligned to whole pages, so
// from=5,size=2 reads the third page (offset 4).
type Page struct {
	From int
	Size int
}

// Unpaged returns a page covering every row.
func Unpaged() Page {
	return Page{}
}

// IsUnpaged reports whether no limit applies.
func (p Page) IsUnpaged() bool {
	return p.Size <= 0
}

// Offset returns the first row index of the page containing From.
func (p Page) Offset() int {
	if p.IsUnpaged() || p.From <= 0 {
		return 0
	}
	return (p.From / p.Size) * p.Size
}
