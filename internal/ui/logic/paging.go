package logic

// Paginator slices a list into fixed-size pages. A PageSize of 0 shows
// everything on one page.
type Paginator struct {
	PageSize int
	Page     int
}

// PageCount returns the number of pages for total items; never less than 1
func (p *Paginator) PageCount(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Clamp keeps the current page inside [0, PageCount(total))
func (p *Paginator) Clamp(total int) {
	if last := p.PageCount(total) - 1; p.Page > last {
		p.Page = last
	}
	if p.Page < 0 {
		p.Page = 0
	}
}

// Next moves forward one page; returns false on the last page
func (p *Paginator) Next(total int) bool {
	if p.Page >= p.PageCount(total)-1 {
		return false
	}
	p.Page++
	return true
}

// Prev moves back one page; returns false on the first page
func (p *Paginator) Prev() bool {
	if p.Page <= 0 {
		return false
	}
	p.Page--
	return true
}

// Slice returns the current page of items. The page is clamped first.
func Slice[T any](p *Paginator, items []T) []T {
	p.Clamp(len(items))
	if p.PageSize <= 0 {
		return items
	}
	start := p.Page * p.PageSize
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
