package views

// Paginator tracks a cursor over a list and the page that contains it
type Paginator struct {
	pageSize int
	cursor   int
	total    int
}

// NewPaginator creates a paginator; a non-positive pageSize means 10
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetTotal sets the list length, pulling the cursor back into range
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// SetPageSize changes how many rows fit on a page
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.pageSize = size
	}
}

// Cursor returns the absolute cursor index
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.total-1))
}

// Move shifts the cursor by delta rows and reports whether it moved
func (p *Paginator) Move(delta int) bool {
	before := p.cursor
	p.SetCursor(p.cursor + delta)
	return p.cursor != before
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	next := (p.cursor/p.pageSize + 1) * p.pageSize
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	page := p.cursor / p.pageSize
	if page == 0 {
		return false
	}
	p.cursor = (page - 1) * p.pageSize
	return true
}

// VisibleRange returns the [start, end) rows of the cursor's page
func (p *Paginator) VisibleRange() (start, end int) {
	start = (p.cursor / p.pageSize) * p.pageSize
	end = min(start+p.pageSize, p.total)
	return start, end
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.pageSize + 1
}

// TotalPages returns the page count, at least 1
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}
