package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r  rune // 0 marks the tail of a wide rune
	st *lipgloss.Style
}

// canvas is a fixed grid of styled cells. Writes outside it are dropped.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, st: st}
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x].r
}

// text writes s from column x, stopping after limit cells (limit < 0 means
// no limit beyond the canvas edge).
func (c *canvas) text(x, y int, s string, limit int, st *lipgloss.Style) {
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if w == 0 {
			continue
		}
		if limit >= 0 && used+w > limit {
			return
		}
		c.set(x+used, y, r, st)
		for i := 1; i < w; i++ {
			c.set(x+used+i, y, 0, st)
		}
		used += w
	}
}

// hline fills columns [from, to) of line y.
func (c *canvas) hline(from, to, y int, r rune, st *lipgloss.Style) {
	for x := max(from, 0); x < min(to, c.w); x++ {
		c.set(x, y, r, st)
	}
}

// line renders one row, grouping runs of the same style into one Render.
func (c *canvas) line(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b, run strings.Builder
	var cur *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == nil {
			b.WriteString(run.String())
		} else {
			b.WriteString(cur.Render(run.String()))
		}
		run.Reset()
	}
	for x := 0; x < c.w; x++ {
		cl := c.cells[y*c.w+x]
		if cl.r == 0 {
			continue
		}
		if cl.st != cur {
			flush()
			cur = cl.st
		}
		run.WriteRune(cl.r)
	}
	flush()
	return b.String()
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := range lines {
		lines[y] = c.line(y)
	}
	return strings.Join(lines, "\n")
}
