// Package render draws a physics scene on a terminal with tcell. Every cell
// samples the world at its center, so any convex body shows up as a filled
// block of its color.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/physics"
)

const fill = '█'

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// Renderer maps a world of Width x Height units onto a tcell screen. The
// bottom rows are reserved for status lines; world +Y points up.
type Renderer struct {
	screen tcell.Screen
	width  float64
	height float64
}

func NewRenderer(screen tcell.Screen, width, height float64) *Renderer {
	return &Renderer{screen: screen, width: width, height: height}
}

// Color converts a colorful color to a true-color tcell color.
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// viewport is the cell grid for a frame.
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func (r *Renderer) viewport(hudRows int) viewport {
	cols, rows := r.screen.Size()
	rows -= hudRows
	if cols <= 0 || rows <= 0 {
		return viewport{}
	}
	return viewport{
		cols: cols,
		rows: rows,
		sx:   r.width / float64(cols),
		sy:   r.height / float64(rows),
	}
}

// world is the world point at the center of cell (col, row).
func (v viewport) world(col, row int, height float64) geom.Vector2D {
	return geom.NewVector2D((float64(col)+0.5)*v.sx, height-(float64(row)+0.5)*v.sy)
}

// cell is the cell containing world point p, which may be off screen.
func (v viewport) cell(p geom.Vector2D, height float64) (int, int) {
	return int(p.X / v.sx), int((height - p.Y) / v.sy)
}

// Draw clears the screen, paints every live body and writes status below
// the playfield.
func (r *Renderer) Draw(bodies []*physics.Body, status []string) {
	r.screen.Clear()
	v := r.viewport(len(status))
	if v.cols > 0 {
		for _, b := range bodies {
			if !b.IsRemoved() {
				r.drawBody(v, b)
			}
		}
	}
	for i, line := range status {
		r.drawText(0, v.rows+i, line)
	}
	r.screen.Show()
}

func (r *Renderer) drawBody(v viewport, b *physics.Body) {
	c := b.Centroid()
	radius := b.BoundingRadius()
	minCol, minRow := v.cell(geom.NewVector2D(c.X-radius, c.Y+radius), r.height)
	maxCol, maxRow := v.cell(geom.NewVector2D(c.X+radius, c.Y-radius), r.height)
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, v.cols-1), min(maxRow, v.rows-1)

	style := tcell.StyleDefault.Foreground(Color(b.Color()))
	painted := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if b.Contains(v.world(col, row, r.height)) {
				r.screen.SetContent(col, row, fill, nil, style)
				painted = true
			}
		}
	}
	// Bodies smaller than a cell still get one.
	if !painted {
		col, row := v.cell(c, r.height)
		if col >= 0 && col < v.cols && row >= 0 && row < v.rows {
			r.screen.SetContent(col, row, fill, nil, style)
		}
	}
}

func (r *Renderer) drawText(x, y int, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, hudStyle)
		x++
	}
}
