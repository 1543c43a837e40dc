// Package motion generates discretized trapezoidal velocity profiles for
// straight-line and rotational displacements. All times are in seconds,
// positions in map pixels, and angles in degrees.
//
// A profile over duration T with acceleration fraction f ramps velocity
// linearly from 0 to the peak over [0, f·T], cruises over (f·T, (1-f)·T],
// and ramps symmetrically back to 0 at T. The peak velocity for a
// displacement d is d / (T·(1-f)), which makes the analytic area under the
// curve equal d.
package motion

import (
	"errors"
	"fmt"
	"math"

	"routine-planner-service/internal/domain"
)

// ErrInvalidProfile reports profile parameters a caller should have rejected.
var ErrInvalidProfile = errors.New("invalid profile parameters")

// Params describe the shape of a trapezoidal profile.
type Params struct {
	TimeS         float64 // total profile duration, > 0
	AccelFraction float64 // fraction of TimeS spent accelerating (and decelerating), in (0, 1)
	Samples       int     // number of emitted setpoints, >= 1
}

// Validate checks the parameter ranges. The generators call it on every
// invocation so a zero duration fails loudly instead of dividing by zero.
func (p Params) Validate() error {
	if p.TimeS <= 0 {
		return fmt.Errorf("%w: time %v must be > 0", ErrInvalidProfile, p.TimeS)
	}
	if p.AccelFraction <= 0 || p.AccelFraction >= 1 {
		return fmt.Errorf("%w: accel fraction %v must be in (0, 1)", ErrInvalidProfile, p.AccelFraction)
	}
	if p.Samples < 1 {
		return fmt.Errorf("%w: sample count %d must be >= 1", ErrInvalidProfile, p.Samples)
	}
	return nil
}

// velocityAt evaluates the trapezoidal velocity shape at time t for a
// profile with peak velocity vmax.
func (p Params) velocityAt(t, vmax float64) float64 {
	accelEnd := p.AccelFraction * p.TimeS
	cruiseEnd := (1 - p.AccelFraction) * p.TimeS

	switch {
	case t <= accelEnd:
		return vmax * t / accelEnd
	case t <= cruiseEnd:
		return vmax
	default:
		return vmax - vmax*(t-cruiseEnd)/accelEnd
	}
}

// Linear discretizes the straight-line displacement from src to dst into
// p.Samples setpoints. The X and Y axes are profiled independently and each
// integrated position is rounded to the nearest pixel. Sample times run from
// dt to TimeS; the initial state at t=0 is implicit and not emitted.
//
// Integration is trapezoidal (average of interval endpoints) carried forward
// sample to sample, starting from the implicit (t=0, v=0) state. It is exact
// when the regime boundaries fall on the sample grid and accumulates a small
// error otherwise, which the per-sample rounding absorbs at control
// granularity.
func Linear(src, dst domain.Point, p Params) ([]domain.MotionSample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dt := p.TimeS / float64(p.Samples)
	vmaxX := float64(dst.X-src.X) / (p.TimeS * (1 - p.AccelFraction))
	vmaxY := float64(dst.Y-src.Y) / (p.TimeS * (1 - p.AccelFraction))

	samples := make([]domain.MotionSample, 0, p.Samples)

	posX := float64(src.X)
	posY := float64(src.Y)
	prevVX, prevVY := 0.0, 0.0

	for k := 0; k < p.Samples; k++ {
		t := float64(k+1) * dt
		vx := p.velocityAt(t, vmaxX)
		vy := p.velocityAt(t, vmaxY)

		posX += 0.5 * dt * (vx + prevVX)
		posY += 0.5 * dt * (vy + prevVY)
		prevVX, prevVY = vx, vy

		samples = append(samples, domain.MotionSample{
			Index:    k,
			Position: domain.Point{X: int(math.Round(posX)), Y: int(math.Round(posY))},
			TimeS:    t,
			StepS:    dt,
		})
	}

	return samples, nil
}

// Turn discretizes a rotation by deltaDeg into p.Samples setpoints, with
// angles rounded to 1 decimal place. A zero delta needs no turn and yields an
// empty sequence rather than a degenerate profile.
func Turn(deltaDeg float64, p Params) ([]domain.TurnSample, error) {
	if deltaDeg == 0 {
		return nil, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dt := p.TimeS / float64(p.Samples)
	wmax := deltaDeg / (p.TimeS * (1 - p.AccelFraction))

	samples := make([]domain.TurnSample, 0, p.Samples)

	angle := 0.0
	prevW := 0.0

	for k := 0; k < p.Samples; k++ {
		t := float64(k+1) * dt
		w := p.velocityAt(t, wmax)

		angle += 0.5 * dt * (w + prevW)
		prevW = w

		samples = append(samples, domain.TurnSample{
			Index:    k,
			AngleDeg: math.Round(angle*10) / 10,
			TimeS:    t,
			StepS:    dt,
		})
	}

	return samples, nil
}
