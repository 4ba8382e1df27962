// Package surface provides the character-cell render target shared by all
// compositor layers: a 2D grid of styled cells plus the named-surface
// registry used by the host render path.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is a single styled character cell.
type Cell struct {
	Rune  rune
	Style lipgloss.Style
}

// Surface is a 2D grid of styled cells. Layers paint over it in stack
// order; later writes win (painter's algorithm).
type Surface struct {
	area  Rect
	cells []Cell
}

// New returns a cleared surface covering the given area.
func New(area Rect) *Surface {
	s := &Surface{area: area}
	s.cells = make([]Cell, area.Area())
	s.Clear()
	return s
}

// Area returns the region the surface covers.
func (s *Surface) Area() Rect { return s.area }

func (s *Surface) Width() int  { return s.area.Width }
func (s *Surface) Height() int { return s.area.Height }

func (s *Surface) index(x, y int) (int, bool) {
	if x < s.area.Left() || x >= s.area.Right() || y < s.area.Top() || y >= s.area.Bottom() {
		return 0, false
	}
	return (y-s.area.Y)*s.area.Width + (x - s.area.X), true
}

// Clear resets every cell to a blank with the zero style.
func (s *Surface) Clear() {
	blank := Cell{Rune: ' '}
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// ClearWith blanks the cells inside region (clipped to the surface) and
// applies the style to them.
func (s *Surface) ClearWith(region Rect, style lipgloss.Style) {
	region = s.area.Intersection(region)
	for y := region.Top(); y < region.Bottom(); y++ {
		for x := region.Left(); x < region.Right(); x++ {
			if i, ok := s.index(x, y); ok {
				s.cells[i] = Cell{Rune: ' ', Style: style}
			}
		}
	}
}

// Resize changes the surface area, preserving overlapping content.
func (s *Surface) Resize(area Rect) {
	if area == s.area {
		return
	}
	next := make([]Cell, area.Area())
	blank := Cell{Rune: ' '}
	for i := range next {
		next[i] = blank
	}
	overlap := s.area.Intersection(area)
	for y := overlap.Top(); y < overlap.Bottom(); y++ {
		for x := overlap.Left(); x < overlap.Right(); x++ {
			if i, ok := s.index(x, y); ok {
				next[(y-area.Y)*area.Width+(x-area.X)] = s.cells[i]
			}
		}
	}
	s.area = area
	s.cells = next
}

// SetCell writes a single cell. Writes outside the surface are dropped.
func (s *Surface) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// Cell returns the cell at the position, or a blank cell when out of range.
func (s *Surface) Cell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return Cell{Rune: ' '}
}

// SetStyle restyles the cell in place, keeping its rune.
func (s *Surface) SetStyle(x, y int, style lipgloss.Style) {
	if i, ok := s.index(x, y); ok {
		s.cells[i].Style = style
	}
}

// SetString writes text starting at (x, y), one rune per cell, clipped to
// maxWidth cells and to the surface bounds. It returns the number of cells
// written.
func (s *Surface) SetString(x, y int, text string, style lipgloss.Style, maxWidth int) int {
	written := 0
	for _, r := range text {
		if written >= maxWidth {
			break
		}
		i, ok := s.index(x+written, y)
		if !ok {
			break
		}
		s.cells[i] = Cell{Rune: r, Style: style}
		written++
	}
	return written
}

// Line returns the plain text of row y with no styling, for tests and
// golden snapshots.
func (s *Surface) Line(y int) string {
	var b strings.Builder
	for x := s.area.Left(); x < s.area.Right(); x++ {
		b.WriteRune(s.Cell(x, y).Rune)
	}
	return b.String()
}

// Render serialises the surface row by row with each cell's style applied,
// suitable as a frame for the terminal.
func (s *Surface) Render() string {
	var b strings.Builder
	for y := s.area.Top(); y < s.area.Bottom(); y++ {
		if y > s.area.Top() {
			b.WriteByte('\n')
		}
		for x := s.area.Left(); x < s.area.Right(); x++ {
			c := s.Cell(x, y)
			b.WriteString(c.Style.Render(string(c.Rune)))
		}
	}
	return b.String()
}
