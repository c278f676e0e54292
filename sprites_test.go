package tilebiten

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nilFrames builds a frame slice without touching the graphics stack; the
// playback state machine never dereferences the images.
func nilFrames(n int) []*ebiten.Image {
	return make([]*ebiten.Image, n)
}

func TestAnimatedSpriteFrameStepping(t *testing.T) {
	s := NewAnimatedSprite()
	s.AddAnimation("walk", nilFrames(3), 0.1, true)
	require.NoError(t, s.Play("walk", false))

	// 0.25s at 0.1s per frame: two full steps with 0.05s carried over.
	s.Update(0.25)
	assert.Equal(t, 2, s.CurrentFrame())
	assert.InDelta(t, 0.05, s.elapsed, 1e-9)
	assert.True(t, s.IsPlaying())

	// The carry-over means the next step needs only 0.05s more.
	s.Update(0.05)
	assert.Equal(t, 0, s.CurrentFrame())
}

func TestAnimatedSpriteNonLoopClampsAndStops(t *testing.T) {
	s := NewAnimatedSprite()
	s.AddAnimation("die", nilFrames(2), 0.1, false)
	require.NoError(t, s.Play("die", false))

	s.Update(0.3)

	assert.Equal(t, 1, s.CurrentFrame())
	assert.False(t, s.IsPlaying())

	// Further updates leave the sprite frozen on the final frame.
	s.Update(1.0)
	assert.Equal(t, 1, s.CurrentFrame())
}

func TestAnimatedSpritePlaySemantics(t *testing.T) {
	s := NewAnimatedSprite()
	s.AddAnimation("idle", nilFrames(4), 0.1, true)
	s.AddAnimation("run", nilFrames(4), 0.1, true)

	t.Run("unknown name fails", func(t *testing.T) {
		err := s.Play("swim", false)
		require.ErrorIs(t, err, ErrAnimationNotFound)
	})

	t.Run("first registered animation is current but stopped", func(t *testing.T) {
		assert.Equal(t, "idle", s.CurrentAnimation())
		assert.False(t, s.IsPlaying())
	})

	t.Run("replaying without restart keeps position", func(t *testing.T) {
		require.NoError(t, s.Play("idle", false))
		s.Update(0.15)
		require.Equal(t, 1, s.CurrentFrame())

		require.NoError(t, s.Play("idle", false))
		assert.Equal(t, 1, s.CurrentFrame())
	})

	t.Run("restart rewinds to frame zero", func(t *testing.T) {
		require.NoError(t, s.Play("idle", true))
		assert.Equal(t, 0, s.CurrentFrame())
		assert.Equal(t, 0.0, s.elapsed)
	})

	t.Run("switching animation resets position", func(t *testing.T) {
		s.Update(0.15)
		require.NoError(t, s.Play("run", false))
		assert.Equal(t, "run", s.CurrentAnimation())
		assert.Equal(t, 0, s.CurrentFrame())
	})
}

func TestAnimatedSpriteStopFreezesFrame(t *testing.T) {
	s := NewAnimatedSprite()
	s.AddAnimation("walk", nilFrames(3), 0.1, true)
	require.NoError(t, s.Play("walk", false))

	s.Update(0.1)
	require.Equal(t, 1, s.CurrentFrame())

	s.Stop()
	s.Update(1.0)
	assert.Equal(t, 1, s.CurrentFrame())
	assert.False(t, s.IsPlaying())

	// Play without restart resumes from the frozen frame.
	require.NoError(t, s.Play("walk", false))
	assert.Equal(t, 1, s.CurrentFrame())
	assert.True(t, s.IsPlaying())
}

func TestAnimatedSpriteZeroFrameDuration(t *testing.T) {
	s := NewAnimatedSprite()
	s.AddAnimation("still", nilFrames(3), 0, true)
	require.NoError(t, s.Play("still", false))

	// A non-positive frame duration can never consume elapsed time; the
	// update must return instead of stepping forever.
	s.Update(1.0)
	assert.Equal(t, 0, s.CurrentFrame())
	assert.True(t, s.IsPlaying())
}

func TestListFrameFilesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.png", "2.png", "1.png", "9.jpg", "notes.txt", "03.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, err := listFrameFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	// Numeric order, non-image files and directories skipped.
	assert.Equal(t, []string{"1.png", "2.png", "03.png", "9.jpg", "10.png"}, names)
}

func TestLoadFramesFolderMissing(t *testing.T) {
	_, err := LoadFramesFolder(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestLoadAnimationsFolderMissing(t *testing.T) {
	_, err := LoadAnimationsFolder(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
