// Package renderer provides the raylib drawing subsystems: backdrop,
// arena cube, and effect particles. The game package orchestrates them
// and draws the entities itself.
package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Background renders the deep-space backdrop: a vertical gradient with a
// speckled starfield, baked into a render texture once and blitted as a
// single quad per frame.
type Background struct {
	target      rl.RenderTexture2D
	width       int32
	height      int32
	initialized bool
}

// NewBackground creates a background sized to the window.
func NewBackground(width, height int32) *Background {
	return &Background{width: width, height: height}
}

// Init bakes the backdrop (must be called after the raylib window is created).
func (b *Background) Init() {
	if b.initialized {
		return
	}
	b.target = rl.LoadRenderTexture(b.width, b.height)
	b.bake()
	b.initialized = true
}

// bake renders the gradient and stars into the target texture. The star
// seed is fixed so the sky looks the same every run.
func (b *Background) bake() {
	rng := rand.New(rand.NewSource(7))

	rl.BeginTextureMode(b.target)
	rl.ClearBackground(rl.Color{R: 6, G: 8, B: 20, A: 255})

	// Gradient bands, dark zenith to a faint horizon glow.
	const bands = int32(64)
	bandH := b.height/bands + 1
	for i := int32(0); i < bands; i++ {
		t := float64(i) / float64(bands-1)
		c := rl.Color{
			R: uint8(6 + 18*t),
			G: uint8(8 + 14*t),
			B: uint8(20 + 36*t),
			A: 255,
		}
		rl.DrawRectangle(0, i*bandH, b.width, bandH, c)
	}

	for i := 0; i < 240; i++ {
		x := int32(rng.Intn(int(b.width)))
		y := int32(rng.Intn(int(b.height)))
		a := uint8(60 + rng.Intn(160))
		r := float32(0.5 + rng.Float64()*1.2)
		rl.DrawCircle(x, y, r, rl.Color{R: 220, G: 225, B: 255, A: a})
	}

	rl.EndTextureMode()
}

// Draw blits the baked backdrop. Render textures are stored upside down
// (OpenGL convention), so the source rect flips with a negative height.
func (b *Background) Draw() {
	if !b.initialized {
		b.Init()
	}

	src := rl.Rectangle{
		X:      0,
		Y:      float32(b.height),
		Width:  float32(b.width),
		Height: -float32(b.height),
	}
	dst := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(rl.GetScreenWidth()),
		Height: float32(rl.GetScreenHeight()),
	}
	rl.DrawTexturePro(b.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Resize rebakes the backdrop at a new window size.
func (b *Background) Resize(width, height int32) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
		b.target = rl.LoadRenderTexture(width, height)
		b.bake()
	}
}

// Unload frees the render texture.
func (b *Background) Unload() {
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
		b.initialized = false
	}
}
