package tilebiten

import "errors"

// Sentinel errors returned by lookups. Load failures (map files, sprite
// images, animation folders) instead wrap the underlying I/O or parser
// error, so callers can unwrap to the root cause.
var (
	// ErrLayerNotFound is returned when a named layer does not exist in the map.
	ErrLayerNotFound = errors.New("tilebiten: layer not found")

	// ErrAnimationNotFound is returned when playing an animation name that
	// was never registered on the sprite.
	ErrAnimationNotFound = errors.New("tilebiten: animation not found")
)
