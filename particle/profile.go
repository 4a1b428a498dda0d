// Particle physics profiles - pre-defined per theme, resolved once

package particle

import "github.com/lixenwraith/keepsake/theme"

// SpawnPolicy places a particle after recycle. Travel direction decides the
// entry edge: risers come back from below, fallers from above.
type SpawnPolicy uint8

const (
	SpawnAnywhere SpawnPolicy = iota
	SpawnBelow
	SpawnAbove
)

// Profile holds a theme's particle kinematics. Velocities are in cells per
// tick at the fixed tick rate; negative Y drifts upward.
type Profile struct {
	SizeMin, SizeMax     float64
	DriftYMin, DriftYMax float64
	DriftXAmp            float64 // random constant horizontal drift
	SwayAmp              float64 // sinusoidal sway amplitude, used by sway themes
	LifeMin, LifeMax     int     // ticks
	Spawn                SpawnPolicy
}

// SoftBloom defines slow upward-floating soft discs (Velvet, Blush)
var SoftBloom = Profile{
	SizeMin: 0.6, SizeMax: 2.2,
	DriftYMin: -0.22, DriftYMax: -0.08,
	DriftXAmp: 0.04, SwayAmp: 0.35,
	LifeMin: 240, LifeMax: 480,
	Spawn: SpawnBelow,
}

// Pane defines large, near-static low-opacity panes (Noir)
var Pane = Profile{
	SizeMin: 2.0, SizeMax: 3.0,
	DriftYMin: -0.05, DriftYMax: -0.02,
	DriftXAmp: 0.02, SwayAmp: 0,
	LifeMin: 420, LifeMax: 720,
	Spawn: SpawnAnywhere,
}

// Emberdrift defines quick upward-floating embers (Ember)
var Emberdrift = Profile{
	SizeMin: 0.4, SizeMax: 1.4,
	DriftYMin: -0.45, DriftYMax: -0.2,
	DriftXAmp: 0.1, SwayAmp: 0,
	LifeMin: 180, LifeMax: 360,
	Spawn: SpawnBelow,
}

// Current defines rising stroked rings, bubble-like (Tide)
var Current = Profile{
	SizeMin: 0.8, SizeMax: 2.0,
	DriftYMin: -0.3, DriftYMax: -0.12,
	DriftXAmp: 0.05, SwayAmp: 0.5,
	LifeMin: 220, LifeMax: 420,
	Spawn: SpawnBelow,
}

// Starfield defines a near-static field with a rare twinkle (Starlit)
var Starfield = Profile{
	SizeMin: 0.3, SizeMax: 1.0,
	DriftYMin: -0.015, DriftYMax: 0.015,
	DriftXAmp: 0.01, SwayAmp: 0,
	LifeMin: 600, LifeMax: 1200,
	Spawn: SpawnAnywhere,
}

// Dustmote defines gently settling paper flecks (Linen)
var Dustmote = Profile{
	SizeMin: 0.3, SizeMax: 1.0,
	DriftYMin: 0.04, DriftYMax: 0.12,
	DriftXAmp: 0.06, SwayAmp: 0,
	LifeMin: 300, LifeMax: 540,
	Spawn: SpawnAbove,
}

// Snowfall defines slow falling snow entering just above the top (Winter)
var Snowfall = Profile{
	SizeMin: 0.5, SizeMax: 1.8,
	DriftYMin: 0.1, DriftYMax: 0.25,
	DriftXAmp: 0.08, SwayAmp: 0,
	LifeMin: 260, LifeMax: 520,
	Spawn: SpawnAbove,
}

// Confetti defines falling confetti with lateral sway (Yule)
var Confetti = Profile{
	SizeMin: 0.4, SizeMax: 1.2,
	DriftYMin: 0.18, DriftYMax: 0.38,
	DriftXAmp: 0.05, SwayAmp: 0.6,
	LifeMin: 200, LifeMax: 380,
	Spawn: SpawnAbove,
}

// BerryBob defines slow drifting palette dots (Berry)
var BerryBob = Profile{
	SizeMin: 0.6, SizeMax: 1.6,
	DriftYMin: 0.06, DriftYMax: 0.16,
	DriftXAmp: 0.06, SwayAmp: 0,
	LifeMin: 280, LifeMax: 520,
	Spawn: SpawnAbove,
}

var profiles = map[theme.ID]*Profile{
	theme.Velvet:  &SoftBloom,
	theme.Noir:    &Pane,
	theme.Ember:   &Emberdrift,
	theme.Tide:    &Current,
	theme.Starlit: &Starfield,
	theme.Linen:   &Dustmote,
	theme.Blush:   &SoftBloom,
	theme.Winter:  &Snowfall,
	theme.Yule:    &Confetti,
	theme.Berry:   &BerryBob,
}

// ProfileFor resolves a theme's physics profile, failing closed to the
// default theme's profile like the registry does for visuals.
func ProfileFor(id theme.ID) *Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles[theme.Default]
}
