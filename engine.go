package tilebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Internals is the per-frame context handed to the game callback. It is
// owned by the Game and only valid for the duration of the frame.
type Internals struct {
	// Width, Height is the logical screen size in pixels.
	Width  int
	Height int

	// Screen is the frame's render target. Only set while the callback runs.
	Screen *ebiten.Image

	Camera  *Camera
	TileMap *TileMap

	// DT is the seconds simulated this frame.
	DT float64
}

// ScreenToWorld converts screen coordinates to world coordinates using the
// camera's current offset.
func (in *Internals) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	ox, oy := in.Camera.Offset()
	return ScreenToWorld(sx, sy, ox, oy)
}

// WorldToScreen converts world coordinates to screen coordinates using the
// camera's current offset.
func (in *Internals) WorldToScreen(wx, wy float64) (sx, sy float64) {
	ox, oy := in.Camera.Offset()
	return WorldToScreen(wx, wy, ox, oy)
}

// LoopFunc runs once per rendered frame. It may mutate game state and draw
// to the screen in the context; returning a non-nil error stops the game.
// Return ebiten.Termination for a clean exit.
type LoopFunc func(*Internals) error

// Game owns the window, clock, camera and optional tilemap, and drives the
// frame loop through ebiten.
type Game struct {
	config    Config
	logger    *zap.Logger
	internals Internals
	loop      LoopFunc
	loopErr   error
}

// NewGame creates a game from the given settings. Logging is off until
// SetLogger is called.
func NewGame(cfg Config) *Game {
	camera := NewCamera(cfg.Width, cfg.Height)
	camera.Smoothing = cfg.CameraSmoothing

	return &Game{
		config: cfg,
		logger: zap.NewNop(),
		internals: Internals{
			Width:  cfg.Width,
			Height: cfg.Height,
			Camera: camera,
		},
	}
}

// SetLogger attaches a structured logger for engine lifecycle events.
func (g *Game) SetLogger(logger *zap.Logger) {
	g.logger = logger
}

// Camera returns the game's camera.
func (g *Game) Camera() *Camera {
	return g.internals.Camera
}

// Internals returns the frame context, for setup before Run.
func (g *Game) Internals() *Internals {
	return &g.internals
}

// LoadTileMap loads a Tiled map and makes it the rendered map. Camera
// bounds are set to the map's pixel size automatically.
func (g *Game) LoadTileMap(path string) (*TileMap, error) {
	tilemap, err := LoadTileMap(path)
	if err != nil {
		return nil, err
	}

	g.internals.TileMap = tilemap
	g.internals.Camera.SetBounds(0, 0, float64(tilemap.PixelWidth()), float64(tilemap.PixelHeight()))

	g.logger.Info("tilemap loaded",
		zap.String("path", path),
		zap.Int("width", tilemap.Width()),
		zap.Int("height", tilemap.Height()),
	)
	return tilemap, nil
}

// Run opens the window and drives the frame loop until the window is
// closed or the callback returns an error. Callback errors propagate out
// unchanged; the engine performs no recovery.
func (g *Game) Run(loop LoopFunc) error {
	g.loop = loop

	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetTPS(g.config.FPS)
	ebiten.SetFullscreen(g.config.Fullscreen)

	g.logger.Info("game loop starting",
		zap.Int("width", g.config.Width),
		zap.Int("height", g.config.Height),
		zap.Int("fps", g.config.FPS),
	)

	err := ebiten.RunGame(g)
	g.logger.Info("game loop stopped", zap.Error(err))
	return err
}

// Update implements ebiten.Game. It advances the tilemap animation clock
// and the camera; the user callback runs in Draw, where the screen exists.
func (g *Game) Update() error {
	if g.loopErr != nil {
		// Error raised by the callback during the previous Draw.
		return g.loopErr
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.internals.DT = dt

	if g.internals.TileMap != nil {
		g.internals.TileMap.Update(dt)
	}
	g.internals.Camera.Update(dt)

	return nil
}

// Draw implements ebiten.Game: render the tilemap at the camera offset,
// then hand the frame to the callback.
func (g *Game) Draw(screen *ebiten.Image) {
	g.internals.Screen = screen

	if g.internals.TileMap != nil {
		ox, oy := g.internals.Camera.Offset()
		g.internals.TileMap.Render(screen, ox, oy)
	}

	if g.loop != nil {
		if err := g.loop(&g.internals); err != nil {
			g.loopErr = err
		}
	}

	g.internals.Screen = nil
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, g.config.Height
}
