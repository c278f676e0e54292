package tilebiten

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"

	// Tileset atlases are typically PNG, occasionally JPEG.
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lafriks/go-tiled"
)

// PropertyKind identifies the variant held by a PropertyValue.
type PropertyKind int

const (
	PropString PropertyKind = iota
	PropNumber
	PropBool
)

// PropertyValue is a typed custom property from a Tiled map. Exactly one of
// Str, Num or Bool is meaningful, selected by Kind; Str always carries the
// raw text as written in the map file.
type PropertyValue struct {
	Kind PropertyKind
	Str  string
	Num  float64
	Bool bool
}

// MapObject represents a Tiled object (collision box, spawn point, trigger, etc.).
type MapObject struct {
	Name       string
	Type       string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Properties map[string]PropertyValue
}

// Rect returns the object's bounding rectangle in world pixels.
func (o MapObject) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// TileMap wraps a parsed Tiled map for querying and rendering. It is
// read-only after load; reloading means creating a new instance.
type TileMap struct {
	tmx *tiled.Map

	// Decoded tileset atlases, keyed by tileset. Filled at load time so a
	// missing or corrupt image fails the load, not the first frame.
	atlasSources map[*tiled.Tileset]image.Image

	// Ebiten-side atlas textures and per-GID subimages, created on first use.
	atlases   map[*tiled.Tileset]*ebiten.Image
	tileCache map[uint32]*ebiten.Image

	// Tileset tile metadata (custom properties, animation frames) by GID.
	tilesetTiles map[uint32]*tiled.TilesetTile

	animationTime float64
}

// LoadTileMap loads a Tiled map from a TMX file, including its tileset
// images. The returned error wraps the parser or decoder error unchanged.
func LoadTileMap(path string) (*TileMap, error) {
	tmx, err := tiled.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilebiten: load map %s: %w", path, err)
	}

	m := &TileMap{
		tmx:          tmx,
		atlasSources: make(map[*tiled.Tileset]image.Image),
		atlases:      make(map[*tiled.Tileset]*ebiten.Image),
		tileCache:    make(map[uint32]*ebiten.Image),
		tilesetTiles: make(map[uint32]*tiled.TilesetTile),
	}

	for _, ts := range tmx.Tilesets {
		if ts.Image != nil && ts.Image.Source != "" {
			src, err := decodeImageFile(ts.GetFileFullPath(ts.Image.Source))
			if err != nil {
				return nil, fmt.Errorf("tilebiten: load tileset %s: %w", ts.Name, err)
			}
			m.atlasSources[ts] = src
		}
		for _, tt := range ts.Tiles {
			m.tilesetTiles[ts.FirstGID+tt.ID] = tt
		}
	}

	return m, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// Width returns the map width in tiles.
func (m *TileMap) Width() int { return m.tmx.Width }

// Height returns the map height in tiles.
func (m *TileMap) Height() int { return m.tmx.Height }

// TileWidth returns the width of each tile in pixels.
func (m *TileMap) TileWidth() int { return m.tmx.TileWidth }

// TileHeight returns the height of each tile in pixels.
func (m *TileMap) TileHeight() int { return m.tmx.TileHeight }

// PixelWidth returns the total map width in pixels.
func (m *TileMap) PixelWidth() int { return m.tmx.Width * m.tmx.TileWidth }

// PixelHeight returns the total map height in pixels.
func (m *TileMap) PixelHeight() int { return m.tmx.Height * m.tmx.TileHeight }

// Update advances the tile animation clock.
func (m *TileMap) Update(dt float64) {
	m.animationTime += dt
}

// Render draws every visible tile layer in stacking order, offset by the
// camera.
func (m *TileMap) Render(screen *ebiten.Image, offsetX, offsetY float64) {
	m.RenderLayers(screen, nil, offsetX, offsetY)
}

// RenderLayers draws the named visible tile layers in stacking order. A nil
// subset means all layers; names that do not exist are skipped, not an error.
func (m *TileMap) RenderLayers(screen *ebiten.Image, layers []string, offsetX, offsetY float64) {
	var wanted map[string]bool
	if layers != nil {
		wanted = make(map[string]bool, len(layers))
		for _, name := range layers {
			wanted[name] = true
		}
	}

	for _, layer := range m.tmx.Layers {
		if !layer.Visible {
			continue
		}
		if wanted != nil && !wanted[layer.Name] {
			continue
		}
		m.renderTileLayer(screen, layer, offsetX, offsetY)
	}
}

// RenderLayer draws a single named tile layer. Unlike RenderLayers it
// reports a missing layer with ErrLayerNotFound. Hidden layers are skipped.
func (m *TileMap) RenderLayer(screen *ebiten.Image, layerName string, offsetX, offsetY float64) error {
	layer, ok := m.tileLayer(layerName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrLayerNotFound, layerName)
	}
	if layer.Visible {
		m.renderTileLayer(screen, layer, offsetX, offsetY)
	}
	return nil
}

func (m *TileMap) renderTileLayer(screen *ebiten.Image, layer *tiled.Layer, offsetX, offsetY float64) {
	tw := m.tmx.TileWidth
	th := m.tmx.TileHeight

	for i, t := range layer.Tiles {
		if t.IsNil() {
			continue
		}

		img := m.tileImage(t)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		applyTileFlips(op, t, float64(tw), float64(th))

		x := i % m.tmx.Width
		y := i / m.tmx.Width
		op.GeoM.Translate(float64(x*tw)-offsetX, float64(y*th)-offsetY)

		screen.DrawImage(img, op)
	}
}

// applyTileFlips maps the Tiled flip flags onto the draw transform:
// diagonal flip is a transpose, applied before the axis flips.
func applyTileFlips(op *ebiten.DrawImageOptions, t *tiled.LayerTile, w, h float64) {
	if t.DiagonalFlip {
		op.GeoM.Rotate(math.Pi / 2)
		op.GeoM.Scale(-1, 1)
	}
	if t.HorizontalFlip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	if t.VerticalFlip {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, h)
	}
}

// tileImage returns the texture for a layer tile, resolving animation
// frames against the shared animation clock. Returns nil when the tileset
// has no atlas image.
func (m *TileMap) tileImage(t *tiled.LayerTile) *ebiten.Image {
	gid := t.Tileset.FirstGID + m.animatedTileID(t)

	if img, ok := m.tileCache[gid]; ok {
		return img
	}

	atlas := m.atlas(t.Tileset)
	if atlas == nil {
		return nil
	}

	localID := gid - t.Tileset.FirstGID
	sub := atlas.SubImage(t.Tileset.GetTileRect(localID)).(*ebiten.Image)
	m.tileCache[gid] = sub
	return sub
}

// animatedTileID resolves the tileset-local tile id to draw, stepping
// through the tile's animation frames when it has any.
func (m *TileMap) animatedTileID(t *tiled.LayerTile) uint32 {
	tt, ok := m.tilesetTiles[t.Tileset.FirstGID+t.ID]
	if !ok || len(tt.Animation) == 0 {
		return t.ID
	}

	var total uint32
	for _, frame := range tt.Animation {
		total += frame.Duration
	}
	if total == 0 {
		return t.ID
	}

	elapsed := uint32(m.animationTime*1000) % total
	for _, frame := range tt.Animation {
		if elapsed < frame.Duration {
			return frame.TileID
		}
		elapsed -= frame.Duration
	}
	return t.ID
}

func (m *TileMap) atlas(ts *tiled.Tileset) *ebiten.Image {
	if img, ok := m.atlases[ts]; ok {
		return img
	}
	src, ok := m.atlasSources[ts]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	m.atlases[ts] = img
	return img
}

// DrawGrid draws tile border lines over the visible range, for debugging
// map layouts.
func (m *TileMap) DrawGrid(screen *ebiten.Image, offsetX, offsetY float64, clr color.Color) {
	tw := float64(m.tmx.TileWidth)
	th := float64(m.tmx.TileHeight)
	screenW := float64(screen.Bounds().Dx())
	screenH := float64(screen.Bounds().Dy())

	startX := int(math.Max(0, math.Floor(offsetX/tw)))
	startY := int(math.Max(0, math.Floor(offsetY/th)))
	endX := int(math.Min(float64(m.tmx.Width), math.Floor((offsetX+screenW)/tw)+1))
	endY := int(math.Min(float64(m.tmx.Height), math.Floor((offsetY+screenH)/th)+1))

	for tx := startX; tx <= endX; tx++ {
		x := float32(float64(tx)*tw - offsetX)
		vector.StrokeLine(screen, x, 0, x, float32(screenH), 1, clr, false)
	}
	for ty := startY; ty <= endY; ty++ {
		y := float32(float64(ty)*th - offsetY)
		vector.StrokeLine(screen, 0, y, float32(screenW), y, 1, clr, false)
	}
}

// GetLayerNames returns the names of all layers, tile layers first, then
// object layers, each group in map order.
func (m *TileMap) GetLayerNames() []string {
	names := make([]string, 0, len(m.tmx.Layers)+len(m.tmx.ObjectGroups))
	for _, layer := range m.tmx.Layers {
		names = append(names, layer.Name)
	}
	for _, group := range m.tmx.ObjectGroups {
		names = append(names, group.Name)
	}
	return names
}

// GetTileLayerNames returns the names of all tile layers in map order.
func (m *TileMap) GetTileLayerNames() []string {
	names := make([]string, 0, len(m.tmx.Layers))
	for _, layer := range m.tmx.Layers {
		names = append(names, layer.Name)
	}
	return names
}

// GetObjectLayerNames returns the names of all object layers in map order.
func (m *TileMap) GetObjectLayerNames() []string {
	names := make([]string, 0, len(m.tmx.ObjectGroups))
	for _, group := range m.tmx.ObjectGroups {
		names = append(names, group.Name)
	}
	return names
}

// GetObjects returns all objects from the named object layer. An unknown
// layer yields an empty slice.
func (m *TileMap) GetObjects(layerName string) []MapObject {
	group, ok := m.objectGroup(layerName)
	if !ok {
		return nil
	}

	objects := make([]MapObject, 0, len(group.Objects))
	for _, obj := range group.Objects {
		objects = append(objects, MapObject{
			Name:       obj.Name,
			Type:       obj.Type,
			X:          obj.X,
			Y:          obj.Y,
			Width:      obj.Width,
			Height:     obj.Height,
			Properties: convertProperties(obj.Properties),
		})
	}
	return objects
}

// GetObjectsByType returns the objects of the given type from the named
// object layer, preserving layer order.
func (m *TileMap) GetObjectsByType(layerName, objType string) []MapObject {
	var objects []MapObject
	for _, obj := range m.GetObjects(layerName) {
		if obj.Type == objType {
			objects = append(objects, obj)
		}
	}
	return objects
}

// GetObjectByName returns the first object with the given name from the
// named object layer.
func (m *TileMap) GetObjectByName(layerName, name string) (MapObject, bool) {
	for _, obj := range m.GetObjects(layerName) {
		if obj.Name == name {
			return obj, true
		}
	}
	return MapObject{}, false
}

// GetCollisionRects returns the rectangle of every object in the named
// layer, preserving layer order. Convenient for collision layers.
func (m *TileMap) GetCollisionRects(layerName string) []Rect {
	objects := m.GetObjects(layerName)
	rects := make([]Rect, 0, len(objects))
	for _, obj := range objects {
		rects = append(rects, obj.Rect())
	}
	return rects
}

// GetTileGID returns the tile GID at the grid cell in the named tile layer.
// Empty cells, out-of-range coordinates and unknown layers all return 0.
func (m *TileMap) GetTileGID(x, y int, layerName string) uint32 {
	layer, ok := m.tileLayer(layerName)
	if !ok {
		return 0
	}
	if x < 0 || y < 0 || x >= m.tmx.Width || y >= m.tmx.Height {
		return 0
	}

	t := layer.Tiles[y*m.tmx.Width+x]
	if t.IsNil() {
		return 0
	}
	return t.Tileset.FirstGID + t.ID
}

// GetTileProperties returns the custom properties of the tile at the grid
// cell in the named tile layer, or nil when the cell is empty, out of
// range, or the tile carries no properties. Never an error.
func (m *TileMap) GetTileProperties(x, y int, layerName string) map[string]PropertyValue {
	gid := m.GetTileGID(x, y, layerName)
	if gid == 0 {
		return nil
	}

	tt, ok := m.tilesetTiles[gid]
	if !ok {
		return nil
	}
	return convertProperties(tt.Properties)
}

// GetLayerProperties returns the custom properties of the named layer
// (tile or object), or nil if the layer is unknown or has none.
func (m *TileMap) GetLayerProperties(layerName string) map[string]PropertyValue {
	if layer, ok := m.tileLayer(layerName); ok {
		return convertProperties(layer.Properties)
	}
	if group, ok := m.objectGroup(layerName); ok {
		return convertProperties(group.Properties)
	}
	return nil
}

func (m *TileMap) tileLayer(name string) (*tiled.Layer, bool) {
	for _, layer := range m.tmx.Layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return nil, false
}

func (m *TileMap) objectGroup(name string) (*tiled.ObjectGroup, bool) {
	for _, group := range m.tmx.ObjectGroups {
		if group.Name == name {
			return group, true
		}
	}
	return nil, false
}

// convertProperties maps the parser's typed string properties onto tagged
// values. Unrecognized property types (file, color, object) stay strings.
func convertProperties(props tiled.Properties) map[string]PropertyValue {
	if len(props) == 0 {
		return nil
	}

	values := make(map[string]PropertyValue, len(props))
	for _, p := range props {
		v := PropertyValue{Str: p.Value}
		switch p.Type {
		case "int", "float":
			v.Kind = PropNumber
			v.Num, _ = strconv.ParseFloat(p.Value, 64)
		case "bool":
			v.Kind = PropBool
			v.Bool = p.Value == "true"
		default:
			v.Kind = PropString
		}
		values[p.Name] = v
	}
	return values
}
