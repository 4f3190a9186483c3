// Package camera provides a 3D chase camera that follows the player snake.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/config"
)

// Camera follows a head position from behind with exponentially smoothed
// motion and impulse shake. It carries no rendering state; the renderer
// converts Eye/Target/FOV into its own camera type each frame.
type Camera struct {
	// Eye is the camera position for the current frame, shake included.
	Eye r3.Vec
	// Target is the look-at point for the current frame.
	Target r3.Vec

	// Distance behind the head along its heading.
	Distance float64
	// Height above the head.
	Height float64
	// Stiffness is the follow convergence rate in 1/seconds.
	Stiffness float64
	// LookAhead places the look-at point this far ahead of the head.
	LookAhead float64
	// FOV is the vertical field of view in degrees.
	FOV float64

	// ShakeStrength scales impulses passed to Shake.
	ShakeStrength float64
	// ShakeDecay is the shake falloff rate in 1/seconds.
	ShakeDecay float64

	// Viewport dimensions, used for the aspect ratio.
	ViewportW, ViewportH float32

	smoothEye    r3.Vec
	smoothTarget r3.Vec
	shakeAmp     float64
	shakePhase   float64
}

// New creates a chase camera from the active configuration, snapped to the
// rest pose behind the given head.
func New(viewportW, viewportH float32, head r3.Vec, yaw float64) *Camera {
	cc := config.Cfg().Camera
	c := &Camera{
		Distance:      cc.Distance,
		Height:        cc.Height,
		Stiffness:     cc.Stiffness,
		LookAhead:     cc.LookAhead,
		FOV:           cc.FOV,
		ShakeStrength: cc.ShakeStrength,
		ShakeDecay:    cc.ShakeDecay,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
	}
	c.Reset(head, yaw)
	return c
}

// Update advances the camera toward its rest pose behind the head.
// yaw is the head's heading about +Y (yaw 0 looks along +Z); dt is the
// frame delta in seconds.
func (c *Camera) Update(head r3.Vec, yaw, dt float64) {
	wantEye, wantTarget := c.restPose(head, yaw)

	// Exponential smoothing converges at Stiffness per second regardless
	// of frame rate.
	t := 1 - math.Exp(-c.Stiffness*dt)
	c.smoothEye = lerp(c.smoothEye, wantEye, t)
	c.smoothTarget = lerp(c.smoothTarget, wantTarget, t)

	c.Eye = c.smoothEye
	c.Target = c.smoothTarget

	if c.shakeAmp > 0 {
		c.shakePhase += dt
		c.Eye.X += math.Sin(c.shakePhase*31.0) * c.shakeAmp
		c.Eye.Y += math.Sin(c.shakePhase*47.0+1.3) * c.shakeAmp
		c.Eye.Z += math.Cos(c.shakePhase*38.0) * c.shakeAmp
		c.shakeAmp *= math.Exp(-c.ShakeDecay * dt)
		if c.shakeAmp < 1e-4 {
			c.shakeAmp = 0
		}
	}
}

// Shake kicks the camera with an impulse scaled by the configured strength.
// Impulses stack but are capped so bursts of events stay watchable.
func (c *Camera) Shake(scale float64) {
	c.shakeAmp += c.ShakeStrength * scale
	if max := c.ShakeStrength * 2; c.shakeAmp > max {
		c.shakeAmp = max
	}
}

// ShakeAmp reports the current shake amplitude (zero when settled).
func (c *Camera) ShakeAmp() float64 {
	return c.shakeAmp
}

// Reset snaps the camera straight to its rest pose behind the head and
// clears any shake. Used on spawn and after a run restart.
func (c *Camera) Reset(head r3.Vec, yaw float64) {
	c.smoothEye, c.smoothTarget = c.restPose(head, yaw)
	c.Eye = c.smoothEye
	c.Target = c.smoothTarget
	c.shakeAmp = 0
	c.shakePhase = 0
}

// Resize updates the viewport dimensions used for the aspect ratio.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float32 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// restPose returns the eye and look-at point the camera settles into for a
// head at the given heading.
func (c *Camera) restPose(head r3.Vec, yaw float64) (eye, target r3.Vec) {
	sin, cos := math.Sin(yaw), math.Cos(yaw)
	eye = r3.Vec{
		X: head.X - sin*c.Distance,
		Y: head.Y + c.Height,
		Z: head.Z - cos*c.Distance,
	}
	target = r3.Vec{
		X: head.X + sin*c.LookAhead,
		Y: head.Y,
		Z: head.Z + cos*c.LookAhead,
	}
	return eye, target
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
