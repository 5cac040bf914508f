package draw

import "math"

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// fillRect fills a rectangle given in pixel space. Any rectangle with a
// positive area covers at least one pixel so small shapes never vanish
// when the canvas is scaled down.
func fillRect(c *Canvas, x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := max(int(math.Ceil(x+w)), x0+1)
	y1 := max(int(math.Ceil(y+h)), y0+1)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// fillEllipse fills an axis-aligned ellipse given in pixel space,
// sampling at pixel centres.
func fillEllipse(c *Canvas, cx, cy, rx, ry float64, col Color) {
	if rx <= 0 || ry <= 0 {
		return
	}

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	xStart := int(math.Floor(cx - rx))
	xEnd := int(math.Ceil(cx + rx))

	filled := false
	for py := yStart; py <= yEnd; py++ {
		dy := (float64(py) + 0.5 - cy) / ry
		for px := xStart; px <= xEnd; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, col)
				filled = true
			}
		}
	}

	// Sub-pixel circles still show up as a single dot
	if !filled {
		c.setPixel(int(math.Floor(cx)), int(math.Floor(cy)), col)
	}
}
