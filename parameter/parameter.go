// Package parameter centralizes timing and tuning constants. Values that
// must stay in sync with each other (animation durations and the phase
// deadlines estimated from them) live side by side here.
package parameter

import "time"

// Frame loop
const (
	TickRate     = 30
	TickInterval = time.Second / TickRate
)

// Ambient particle field
const (
	// One particle per this many cells of viewport area
	ParticleAreaDivisor = 60

	// Below this width the seed count is halved to protect frame rate
	SmallViewportWidth = 80

	ParticleMinCount = 12
	ParticleMaxCount = 160

	// Ticks of linear fade at each end of a particle's life
	ParticleFadeTicks = 50

	// Cells beyond the viewport edge before a particle is recycled
	ParticleOverscan = 50.0

	// Global opacity multiplier keeping the field ambient
	ParticleGlobalOpacity = 0.5
)

// Celebration bursts
const (
	BurstCount    = 42
	BurstLifeMin  = 24 // ticks
	BurstLifeMax  = 42
	BurstGravity  = 0.06 // cells per tick^2
	BurstSpreadX  = 1.2  // cells per tick
	BurstInitialY = -0.9
)

// Reveal animation, standard variant (envelope). PanelDuration and
// FlapDuration describe the drawn motion; ReadingDelayStandard estimates
// its visual completion and must track them.
const (
	PanelDuration        = 1500 * time.Millisecond
	FlapDuration         = 600 * time.Millisecond
	BurstDelayStandard   = 500 * time.Millisecond
	ReadingDelayStandard = 2500 * time.Millisecond
)

// Reveal animation, holiday variant (gift box)
const (
	LidDelay            = 200 * time.Millisecond
	LidDuration         = 1200 * time.Millisecond
	RiseDelay           = 1500 * time.Millisecond
	RiseDuration        = 2000 * time.Millisecond
	ForegroundJumpAt    = 3200 * time.Millisecond
	BurstDelayHoliday   = 2500 * time.Millisecond
	ReadingDelayHoliday = 4000 * time.Millisecond
)

// Engagement
const (
	// Continuous time a feed card must stay active before its view counts
	FeedViewDwell = 2 * time.Second
)

// Coupon
const (
	CouponShareDelay = 1500 * time.Millisecond
)

// UI
const (
	ToastDuration  = 3 * time.Second
	CountdownTick  = time.Second
	FeedPageSize   = 10
	FeedScrollStep = 2 // rows per wheel/key step
)
