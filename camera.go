package tilebiten

// Camera tracks a followed point and smoothly scrolls the viewport toward it.
// Optional world bounds keep the visible window inside the map; zoom shrinks
// the effective view size.
type Camera struct {
	// X, Y is the current camera position: the world-space top-left of the view.
	X float64
	Y float64

	// Viewport size in pixels.
	Width  int
	Height int

	// Zoom scales the view; 1 shows the full viewport, higher values zoom in.
	Zoom    float64
	MinZoom float64
	MaxZoom float64

	// Smoothing is the fraction of the remaining distance to the target
	// covered by each Update call, in (0, 1]. 1 snaps instantly.
	Smoothing float64

	hasBounds              bool
	minX, minY, maxX, maxY float64
	targetX, targetY       float64
	followX, followY       float64
}

// NewCamera creates a camera for a viewport of the given pixel size.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:     width,
		Height:    height,
		Zoom:      1.0,
		MinZoom:   1.0,
		MaxZoom:   4.0,
		Smoothing: 0.1,
	}
}

// ViewWidth returns the effective viewport width accounting for zoom.
func (c *Camera) ViewWidth() float64 {
	return float64(c.Width) / c.Zoom
}

// ViewHeight returns the effective viewport height accounting for zoom.
func (c *Camera) ViewHeight() float64 {
	return float64(c.Height) / c.Zoom
}

// Follow sets the world point the camera should center on. The actual
// position catches up over subsequent Update calls.
func (c *Camera) Follow(x, y float64) {
	c.followX = x
	c.followY = y
	c.updateTarget()
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom], keeping the
// view centered on the followed point.
func (c *Camera) SetZoom(zoom float64) {
	if zoom < c.MinZoom {
		zoom = c.MinZoom
	} else if zoom > c.MaxZoom {
		zoom = c.MaxZoom
	}
	c.Zoom = zoom
	c.updateTarget()
}

// updateTarget recomputes the target position from the followed point and
// the current view size.
func (c *Camera) updateTarget() {
	c.targetX = c.followX - c.ViewWidth()/2
	c.targetY = c.followY - c.ViewHeight()/2
}

// SetBounds sets the world rectangle the camera view is kept within,
// usually (0, 0, map pixel width, map pixel height).
func (c *Camera) SetBounds(minX, minY, maxX, maxY float64) {
	c.hasBounds = true
	c.minX, c.minY, c.maxX, c.maxY = minX, minY, maxX, maxY
}

// ClearBounds removes the camera bounds.
func (c *Camera) ClearBounds() {
	c.hasBounds = false
}

// SnapToTarget moves the camera to its target immediately, skipping smoothing.
func (c *Camera) SnapToTarget() {
	c.X = c.targetX
	c.Y = c.targetY
	c.clampToBounds()
}

// Update advances the camera one step toward its target and clamps to bounds.
//
// The smoothing step is a constant fraction per call, not normalized by dt:
// at variable frame rates the approach speed varies with the frame rate.
// Callers that need frame-rate-independent smoothing should run at a fixed
// tick rate, which is what ebiten does by default.
func (c *Camera) Update(dt float64) {
	_ = dt

	c.X += (c.targetX - c.X) * c.Smoothing
	c.Y += (c.targetY - c.Y) * c.Smoothing

	c.clampToBounds()
}

// clampToBounds keeps the view window inside the bounds rectangle. When the
// bounded area is smaller than the view along an axis, the view is pinned
// centered on that axis instead.
func (c *Camera) clampToBounds() {
	if !c.hasBounds {
		return
	}

	maxCamX := c.maxX - c.ViewWidth()
	maxCamY := c.maxY - c.ViewHeight()

	if maxCamX < c.minX {
		c.X = (c.minX + c.maxX - c.ViewWidth()) / 2
	} else {
		c.X = clamp(c.X, c.minX, maxCamX)
	}

	if maxCamY < c.minY {
		c.Y = (c.minY + c.maxY - c.ViewHeight()) / 2
	} else {
		c.Y = clamp(c.Y, c.minY, maxCamY)
	}
}

// Offset returns the current camera offset to subtract from world positions
// when rendering.
func (c *Camera) Offset() (x, y float64) {
	return c.X, c.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
