package tilebiten

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// animation is one named frame sequence on an AnimatedSprite.
type animation struct {
	frames        []*ebiten.Image
	frameDuration float64
	loop          bool
}

// AnimatedSprite plays named frame sequences. Registering the first
// animation makes it current (stopped), so Image is usable right after
// setup; Play switches sequences and starts playback.
type AnimatedSprite struct {
	// X, Y is the sprite's world position, used by Draw.
	X float64
	Y float64

	animations map[string]*animation
	current    string
	frame      int
	elapsed    float64
	playing    bool
}

// NewAnimatedSprite creates a sprite with no animations.
func NewAnimatedSprite() *AnimatedSprite {
	return &AnimatedSprite{
		animations: make(map[string]*animation),
	}
}

// NewAnimatedSpriteFromFolder creates a sprite with one animation per
// subdirectory of path, each loaded with the given frame duration and loop
// flag.
func NewAnimatedSpriteFromFolder(path string, frameDuration float64, loop bool) (*AnimatedSprite, error) {
	animations, err := LoadAnimationsFolder(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(animations))
	for name := range animations {
		names = append(names, name)
	}
	sort.Strings(names)

	sprite := NewAnimatedSprite()
	for _, name := range names {
		sprite.AddAnimation(name, animations[name], frameDuration, loop)
	}
	return sprite, nil
}

// AddAnimation registers a named animation, overwriting any previous entry
// under the same name. The first registered animation becomes current.
func (s *AnimatedSprite) AddAnimation(name string, frames []*ebiten.Image, frameDuration float64, loop bool) {
	s.animations[name] = &animation{
		frames:        frames,
		frameDuration: frameDuration,
		loop:          loop,
	}

	if s.current == "" && len(frames) > 0 {
		s.current = name
	}
}

// Play starts the named animation. Playing the animation that is already
// current resumes it where it left off; pass restart to rewind to frame 0.
func (s *AnimatedSprite) Play(name string, restart bool) error {
	if _, ok := s.animations[name]; !ok {
		return fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}

	if name != s.current || restart {
		s.current = name
		s.frame = 0
		s.elapsed = 0
	}

	s.playing = true
	return nil
}

// Stop halts playback, freezing the sprite on its current frame.
func (s *AnimatedSprite) Stop() {
	s.playing = false
}

// Update advances the animation by dt seconds. A non-looping animation
// clamps to its last frame and stops when it completes. Animations with a
// non-positive frame duration hold their current frame.
func (s *AnimatedSprite) Update(dt float64) {
	if !s.playing || s.current == "" {
		return
	}

	anim := s.animations[s.current]
	if len(anim.frames) == 0 || anim.frameDuration <= 0 {
		return
	}

	s.elapsed += dt

	for s.elapsed >= anim.frameDuration {
		s.elapsed -= anim.frameDuration
		s.frame++

		if s.frame >= len(anim.frames) {
			if anim.loop {
				s.frame = 0
			} else {
				s.frame = len(anim.frames) - 1
				s.playing = false
				break
			}
		}
	}
}

// Image returns the current frame, or nil before any animation is registered.
func (s *AnimatedSprite) Image() *ebiten.Image {
	if s.current == "" {
		return nil
	}
	anim := s.animations[s.current]
	if len(anim.frames) == 0 {
		return nil
	}
	return anim.frames[s.frame]
}

// CurrentAnimation returns the name of the current animation, or "" if
// none has been registered yet.
func (s *AnimatedSprite) CurrentAnimation() string {
	return s.current
}

// CurrentFrame returns the index of the current frame.
func (s *AnimatedSprite) CurrentFrame() int {
	return s.frame
}

// IsPlaying reports whether an animation is currently playing.
func (s *AnimatedSprite) IsPlaying() bool {
	return s.playing
}

// Draw blits the current frame at the sprite's world position, offset by
// the camera.
func (s *AnimatedSprite) Draw(screen *ebiten.Image, offsetX, offsetY float64) {
	img := s.Image()
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(s.X-offsetX, s.Y-offsetY)
	screen.DrawImage(img, op)
}

// LoadSpritesheet loads animation frames from a horizontal strip image,
// left to right. Slicing stops when the next frame would overrun the sheet.
func LoadSpritesheet(path string, frameWidth, frameHeight int) ([]*ebiten.Image, error) {
	src, err := decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilebiten: load spritesheet %s: %w", path, err)
	}
	return FramesFromImage(ebiten.NewImageFromImage(src), frameWidth, frameHeight), nil
}

// FramesFromImage slices a horizontal strip that is already in memory.
func FramesFromImage(sheet *ebiten.Image, frameWidth, frameHeight int) []*ebiten.Image {
	bounds := sheet.Bounds()

	var frames []*ebiten.Image
	for x := bounds.Min.X; x+frameWidth <= bounds.Max.X; x += frameWidth {
		rect := image.Rect(x, bounds.Min.Y, x+frameWidth, bounds.Min.Y+frameHeight)
		frames = append(frames, sheet.SubImage(rect).(*ebiten.Image))
	}
	return frames
}

// LoadFramesFolder loads animation frames from a folder of numbered images
// (1.png, 2.png, ... or 01.png, 02.png, ...), sorted numerically so frame
// 10 follows frame 9.
func LoadFramesFolder(path string) ([]*ebiten.Image, error) {
	files, err := listFrameFiles(path)
	if err != nil {
		return nil, fmt.Errorf("tilebiten: load frames %s: %w", path, err)
	}

	frames := make([]*ebiten.Image, 0, len(files))
	for _, file := range files {
		src, err := decodeImageFile(file)
		if err != nil {
			return nil, fmt.Errorf("tilebiten: load frame %s: %w", file, err)
		}
		frames = append(frames, ebiten.NewImageFromImage(src))
	}
	return frames, nil
}

// LoadAnimationsFolder loads one animation per subdirectory of path, each
// subdirectory holding that animation's numbered frames.
func LoadAnimationsFolder(path string) (map[string][]*ebiten.Image, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("tilebiten: load animations %s: %w", path, err)
	}

	animations := make(map[string][]*ebiten.Image)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		frames, err := LoadFramesFolder(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		animations[entry.Name()] = frames
	}
	return animations, nil
}

// listFrameFiles returns the image files in a folder in natural numeric
// order.
func listFrameFiles(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
			files = append(files, entry.Name())
		}
	}

	sort.Slice(files, func(i, j int) bool {
		ni, si := naturalSortKey(files[i])
		nj, sj := naturalSortKey(files[j])
		if ni != nj {
			return ni < nj
		}
		return si < sj
	})

	for i, file := range files {
		files[i] = filepath.Join(path, file)
	}
	return files, nil
}

// naturalSortKey splits a filename into its leading number (0 when absent)
// and stem, so "10.png" sorts after "9.png".
func naturalSortKey(name string) (int, string) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	end := 0
	for end < len(stem) && stem[end] >= '0' && stem[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, stem
	}

	n, err := strconv.Atoi(stem[:end])
	if err != nil {
		// Longer than an int; fall back to lexical order.
		return 0, stem
	}
	return n, stem
}
