package tilebiten

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCameraSnapWithFullSmoothing(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0

	c.Follow(1000, 500)
	c.Update(1.0 / 60.0)

	// Smoothing of 1 covers the whole remaining distance in one step.
	require.Equal(t, 1000.0-400.0, c.X)
	require.Equal(t, 500.0-300.0, c.Y)
}

func TestCameraSmoothingApproachesTarget(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 0.5

	c.Follow(400, 300) // target (0, 0)
	require.Equal(t, 0.0, c.X)

	c.Follow(1200, 300) // target (800, 0)
	c.Update(1.0 / 60.0)
	require.InDelta(t, 400.0, c.X, 1e-9)

	c.Update(1.0 / 60.0)
	require.InDelta(t, 600.0, c.X, 1e-9)
}

func TestCameraSnapToTarget(t *testing.T) {
	c := NewCamera(800, 600)
	c.Follow(400, 300)
	c.SnapToTarget()

	require.Equal(t, 0.0, c.X)
	require.Equal(t, 0.0, c.Y)
}

func TestCameraBoundsPinWhenMapMatchesViewport(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 800, 600)

	// However far the target roams, the view window cannot leave the map.
	for _, target := range [][2]float64{{-5000, -5000}, {5000, 5000}, {400, 300}} {
		c.Follow(target[0], target[1])
		c.Update(1.0 / 60.0)
		x, y := c.Offset()
		require.Equal(t, 0.0, x)
		require.Equal(t, 0.0, y)
	}
}

func TestCameraBoundsClampLargeMap(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 1600, 1200)

	c.Follow(-1000, -1000)
	c.Update(1.0 / 60.0)
	require.Equal(t, 0.0, c.X)
	require.Equal(t, 0.0, c.Y)

	c.Follow(5000, 5000)
	c.Update(1.0 / 60.0)
	require.Equal(t, 800.0, c.X) // 1600 - 800
	require.Equal(t, 600.0, c.Y) // 1200 - 600
}

func TestCameraCentersWhenMapSmallerThanViewport(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 400, 300)

	c.Follow(10000, 10000)
	c.Update(1.0 / 60.0)

	// Pinned so the small map sits centered in the viewport.
	require.Equal(t, (400.0-800.0)/2, c.X)
	require.Equal(t, (300.0-600.0)/2, c.Y)
}

func TestCameraClearBounds(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 800, 600)
	c.ClearBounds()

	c.Follow(-5000, -5000)
	c.Update(1.0 / 60.0)
	require.Less(t, c.X, 0.0)
}

func TestCameraZoomShrinksView(t *testing.T) {
	c := NewCamera(800, 600)
	require.Equal(t, 800.0, c.ViewWidth())

	c.SetZoom(2)
	require.Equal(t, 400.0, c.ViewWidth())
	require.Equal(t, 300.0, c.ViewHeight())

	// Zoom is clamped to the configured range.
	c.SetZoom(100)
	require.Equal(t, c.MaxZoom, c.Zoom)
	c.SetZoom(0.01)
	require.Equal(t, c.MinZoom, c.Zoom)
}

func TestCameraZoomedBoundsClamp(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 1600, 1200)
	c.SetZoom(2)

	// At zoom 2 the view is 400x300, so the camera may travel further
	// right and down before the view window hits the map edge.
	c.Follow(10000, 10000)
	c.Update(1.0 / 60.0)
	require.Equal(t, 1200.0, c.X) // 1600 - 400
	require.Equal(t, 900.0, c.Y)  // 1200 - 300

	c.Follow(-10000, -10000)
	c.Update(1.0 / 60.0)
	require.Equal(t, 0.0, c.X)
	require.Equal(t, 0.0, c.Y)
}

func TestCameraZoomedCenterPin(t *testing.T) {
	c := NewCamera(800, 600)
	c.Smoothing = 1.0
	c.SetBounds(0, 0, 300, 200)
	c.SetZoom(2)

	// The 400x300 zoomed view still exceeds the 300x200 map, so the view
	// pins centered on both axes.
	c.Follow(10000, 10000)
	c.Update(1.0 / 60.0)
	require.Equal(t, (300.0-400.0)/2, c.X)
	require.Equal(t, (200.0-300.0)/2, c.Y)
}

func TestCameraZoomKeepsFollowedPointCentered(t *testing.T) {
	c := NewCamera(800, 600)
	c.Follow(400, 300)
	c.SetZoom(2)
	c.SnapToTarget()

	// View is 400x300 at zoom 2, so its top-left is follow - view/2.
	require.Equal(t, 200.0, c.X)
	require.Equal(t, 150.0, c.Y)
}
