package draw

// Limits bounds the render area inside a terminal.
type Limits struct {
	MaxCols int // Widest render area; 0 means unlimited
	MaxRows int // Tallest render area; 0 means unlimited
	HUDRows int // Rows reserved above the canvas for the HUD
}

// Layout is the placement of the render area inside a terminal.
type Layout struct {
	Cols, Rows           int // Render area size
	OffsetCol, OffsetRow int // 0-based offsets of the render area
}

// Fit clamps terminal dimensions to the limits and computes the centering
// offset for the render area. The HUD rows always sit directly above it.
func Fit(termWidth, termHeight int, lim Limits) Layout {
	avail := max(termHeight-lim.HUDRows, 1)
	l := Layout{Cols: max(termWidth, 1), Rows: avail}
	if lim.MaxCols > 0 && l.Cols > lim.MaxCols {
		l.Cols = lim.MaxCols
	}
	if lim.MaxRows > 0 && l.Rows > lim.MaxRows {
		l.Rows = lim.MaxRows
	}
	l.OffsetCol = max((termWidth-l.Cols)/2, 0)
	l.OffsetRow = max((avail-l.Rows)/2, 0) + lim.HUDRows
	return l
}

// Apply resizes and positions the canvas. Returns true when the geometry
// changed, so callers can clear residual output outside the new area.
func (l Layout) Apply(c *Canvas) bool {
	changed := l.Cols != c.TerminalWidth() || l.Rows != c.TerminalHeight() ||
		l.OffsetCol != c.OffsetCol() || l.OffsetRow != c.OffsetRow()
	c.Resize(l.Cols, l.Rows)
	c.SetOffset(l.OffsetCol, l.OffsetRow)
	return changed
}
