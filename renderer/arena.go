package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// flashLife is how long a face flash stays visible, in seconds.
const flashLife = 0.8

// faceFlash is a brief glow on one arena face after a boundary crossing.
type faceFlash struct {
	axis int
	sign float32
	life float32
}

// Arena draws the playfield cube: the edge wireframe, a floor grid, and
// short-lived flashes on faces the player punched through.
type Arena struct {
	half    float32
	flashes []faceFlash
}

// NewArena creates an arena renderer for a cube of the given half-extent.
func NewArena(half float32) *Arena {
	return &Arena{half: half}
}

// Flash lights up the face on the given axis and side.
func (a *Arena) Flash(axis int, sign float32) {
	a.flashes = append(a.flashes, faceFlash{axis: axis, sign: sign, life: flashLife})
}

// Update ages the active flashes.
func (a *Arena) Update(dt float32) {
	alive := 0
	for i := range a.flashes {
		a.flashes[i].life -= dt
		if a.flashes[i].life > 0 {
			a.flashes[alive] = a.flashes[i]
			alive++
		}
	}
	a.flashes = a.flashes[:alive]
}

// Draw renders the cube. Must run inside an active 3D mode.
func (a *Arena) Draw() {
	size := a.half * 2
	rl.DrawCubeWires(rl.Vector3{}, size, size, size, rl.Color{R: 70, G: 90, B: 140, A: 255})

	a.drawFloorGrid()

	for _, f := range a.flashes {
		a.drawFlash(f)
	}
}

// drawFloorGrid lays a line grid on the bottom face for depth reference.
func (a *Arena) drawFloorGrid() {
	const divisions = 10
	y := -a.half
	step := a.half * 2 / divisions
	c := rl.Color{R: 40, G: 52, B: 86, A: 255}

	for i := 0; i <= divisions; i++ {
		v := -a.half + float32(i)*step
		rl.DrawLine3D(rl.Vector3{X: v, Y: y, Z: -a.half}, rl.Vector3{X: v, Y: y, Z: a.half}, c)
		rl.DrawLine3D(rl.Vector3{X: -a.half, Y: y, Z: v}, rl.Vector3{X: a.half, Y: y, Z: v}, c)
	}
}

// drawFlash renders one face glow as a thin translucent slab that fades
// with remaining life.
func (a *Arena) drawFlash(f faceFlash) {
	t := f.life / flashLife
	col := rl.Color{R: 255, G: 170, B: 70, A: uint8(110 * t)}

	size := a.half * 2
	center := rl.Vector3{}
	dims := rl.Vector3{X: size, Y: size, Z: size}

	switch f.axis {
	case 0:
		center.X = f.sign * a.half
		dims.X = 0.2
	case 1:
		center.Y = f.sign * a.half
		dims.Y = 0.2
	default:
		center.Z = f.sign * a.half
		dims.Z = 0.2
	}

	rl.DrawCubeV(center, dims, col)
}
