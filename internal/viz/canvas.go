package viz

import (
	"math"
	"strings"
)

const brailleBase = 0x2800

// dotBits[y][x] is the braille bit of dot (x, y) inside one cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 dots. Dot
// coordinates run from the top-left corner.
type Canvas struct {
	Cols, Rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{Cols: cols, Rows: rows, cells: make([]uint8, cols*rows)}
}

// DotsWide and DotsHigh give the canvas size in dots.
func (c *Canvas) DotsWide() int { return 2 * c.Cols }
func (c *Canvas) DotsHigh() int { return 4 * c.Rows }

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.DotsWide() && y < c.DotsHigh()
}

// Dot turns on the dot at (x, y); dots outside the canvas are ignored.
func (c *Canvas) Dot(x, y int) {
	if !c.inside(x, y) {
		return
	}
	c.cells[(y/4)*c.Cols+x/2] |= dotBits[y%4][x%2]
}

// On reports whether the dot at (x, y) is set.
func (c *Canvas) On(x, y int) bool {
	if !c.inside(x, y) {
		return false
	}
	return c.cells[(y/4)*c.Cols+x/2]&dotBits[y%4][x%2] != 0
}

// Cell returns the braille rune of one cell.
func (c *Canvas) Cell(col, row int) rune {
	return rune(brailleBase + int(c.cells[row*c.Cols+col]))
}

func (c *Canvas) Reset() {
	clear(c.cells)
}

// segment joins two dots with Bresenham's line.
func (c *Canvas) segment(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Dot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Plot draws a profile as a polyline across the full width, with lo on
// the bottom dot row and hi on the top one.
func (c *Canvas) Plot(values []float64, lo, hi float64) {
	if len(values) == 0 {
		return
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	w, h := c.DotsWide()-1, c.DotsHigh()-1
	at := func(i int) (x, y int) {
		if len(values) > 1 {
			x = i * w / (len(values) - 1)
		}
		u := math.Max(0, math.Min(1, (values[i]-lo)/span))
		return x, int(math.Round((1 - u) * float64(h)))
	}

	px, py := at(0)
	c.Dot(px, py)
	for i := 1; i < len(values); i++ {
		x, y := at(i)
		c.segment(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Rows * (c.Cols*3 + 1))
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
