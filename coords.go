package tilebiten

import "math"

// Pure conversions between the three coordinate spaces:
// screen (viewport pixels), world (map pixels) and tile (grid cells).
// The camera offset is the top-left of the viewport in world space.

// ScreenToWorld converts screen coordinates to world coordinates given the
// camera offset.
func ScreenToWorld(sx, sy, offsetX, offsetY float64) (wx, wy float64) {
	return sx + offsetX, sy + offsetY
}

// WorldToScreen converts world coordinates to screen coordinates given the
// camera offset.
func WorldToScreen(wx, wy, offsetX, offsetY float64) (sx, sy float64) {
	return wx - offsetX, wy - offsetY
}

// WorldToTile converts world coordinates to the tile cell containing them.
// Floor division keeps negative world positions in the correct cell.
func WorldToTile(wx, wy float64, tileWidth, tileHeight int) (tx, ty int) {
	tx = int(math.Floor(wx / float64(tileWidth)))
	ty = int(math.Floor(wy / float64(tileHeight)))
	return tx, ty
}

// TileToWorld converts a tile cell to the world position of its top-left corner.
func TileToWorld(tx, ty, tileWidth, tileHeight int) (wx, wy float64) {
	return float64(tx * tileWidth), float64(ty * tileHeight)
}

// ScreenToTile converts screen coordinates to the tile cell under them.
func ScreenToTile(sx, sy, offsetX, offsetY float64, tileWidth, tileHeight int) (tx, ty int) {
	wx, wy := ScreenToWorld(sx, sy, offsetX, offsetY)
	return WorldToTile(wx, wy, tileWidth, tileHeight)
}

// TileToScreen converts a tile cell to the screen position of its top-left corner.
func TileToScreen(tx, ty, tileWidth, tileHeight int, offsetX, offsetY float64) (sx, sy float64) {
	wx, wy := TileToWorld(tx, ty, tileWidth, tileHeight)
	return WorldToScreen(wx, wy, offsetX, offsetY)
}
