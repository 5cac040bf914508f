package draw

// Surface is a fixed-size 2D drawing target in logical coordinates.
// The game world draws every frame through it and never looks at the
// pixels behind it.
type Surface interface {
	// Width and Height are the logical dimensions. They do not change
	// while a game is in progress.
	Width() float64
	Height() float64

	Clear()
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	// DrawText draws s horizontally centred on cx at height cy.
	DrawText(cx, cy float64, s string, c Color)
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)
