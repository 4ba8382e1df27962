package surface

// Position identifies a single cell, row-major.
type Position struct {
	Row int
	Col int
}

// CursorKind describes how the terminal cursor should be drawn.
type CursorKind int

const (
	CursorHidden CursorKind = iota
	CursorBlock
	CursorBar
	CursorUnderline
)

// Rect is a rectangular region of the screen in cell coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect constructs a rect, clamping negative dimensions to zero.
func NewRect(x, y, width, height int) Rect {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns the number of cells covered by the rect.
func (r Rect) Area() int { return r.Width * r.Height }

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// Contains reports whether the position falls inside the rect.
func (r Rect) Contains(p Position) bool {
	return p.Col >= r.Left() && p.Col < r.Right() && p.Row >= r.Top() && p.Row < r.Bottom()
}

// Intersection returns the overlap of two rects, or an empty rect at the
// clamped origin when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.Left(), other.Left())
	y1 := max(r.Top(), other.Top())
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// ClipLeft removes width columns from the left edge.
func (r Rect) ClipLeft(width int) Rect {
	if width > r.Width {
		width = r.Width
	}
	return Rect{X: r.X + width, Y: r.Y, Width: r.Width - width, Height: r.Height}
}

// ClipRight removes width columns from the right edge.
func (r Rect) ClipRight(width int) Rect {
	if width > r.Width {
		width = r.Width
	}
	return Rect{X: r.X, Y: r.Y, Width: r.Width - width, Height: r.Height}
}

// ClipTop removes height rows from the top edge.
func (r Rect) ClipTop(height int) Rect {
	if height > r.Height {
		height = r.Height
	}
	return Rect{X: r.X, Y: r.Y + height, Width: r.Width, Height: r.Height - height}
}

// ClipBottom removes height rows from the bottom edge.
func (r Rect) ClipBottom(height int) Rect {
	if height > r.Height {
		height = r.Height
	}
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - height}
}

// Inner shrinks the rect by a horizontal and vertical margin on each side.
func (r Rect) Inner(horizontal, vertical int) Rect {
	if r.Width < 2*horizontal || r.Height < 2*vertical {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{
		X:      r.X + horizontal,
		Y:      r.Y + vertical,
		Width:  r.Width - 2*horizontal,
		Height: r.Height - 2*vertical,
	}
}
