// Package particle implements the ambient theme-driven particle field and
// the short-lived foreground celebration bursts. The field is cosmetic:
// it renders nothing when no surface is available and must never block or
// fail the view that owns it.
package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// Particle is pool-allocated and recycled in place, never freed.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Age      int
	Lifespan int
	Kind     float64 // [0,1) discriminant for color/shape variation
}

// Field animates one theme's particles over a viewport. All methods must be
// called from the frame loop goroutine.
type Field struct {
	th      theme.Theme
	prof    *Profile
	parts   []Particle
	w, h    int
	tick    uint64
	rng     *rand.Rand
	stopped bool
}

// NewField seeds a particle field for the theme over a w x h viewport.
func NewField(id theme.ID, w, h int) *Field {
	f := &Field{
		th:   theme.Resolve(string(id)),
		prof: ProfileFor(id),
		w:    w,
		h:    h,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	f.seed()
	return f
}

func seedCount(w, h int) int {
	n := w * h / parameter.ParticleAreaDivisor
	if w < parameter.SmallViewportWidth {
		n /= 2
	}
	if n < parameter.ParticleMinCount {
		n = parameter.ParticleMinCount
	}
	if n > parameter.ParticleMaxCount {
		n = parameter.ParticleMaxCount
	}
	return n
}

func (f *Field) seed() {
	f.parts = make([]Particle, seedCount(f.w, f.h))
	for i := range f.parts {
		f.init(&f.parts[i], true)
	}
}

// init reinitializes a particle in place. initial placement scatters over
// the whole viewport so the field does not start empty; recycle placement
// follows the profile's spawn policy.
func (f *Field) init(p *Particle, initial bool) {
	pr := f.prof
	p.VX = (f.rng.Float64()*2 - 1) * pr.DriftXAmp
	p.VY = pr.DriftYMin + f.rng.Float64()*(pr.DriftYMax-pr.DriftYMin)
	p.Size = pr.SizeMin + f.rng.Float64()*(pr.SizeMax-pr.SizeMin)
	p.Age = 0
	p.Lifespan = pr.LifeMin + f.rng.Intn(pr.LifeMax-pr.LifeMin+1)
	p.Kind = f.rng.Float64()

	if initial {
		p.X = f.rng.Float64() * float64(f.w)
		p.Y = f.rng.Float64() * float64(f.h)
		// Stagger ages so the initial population doesn't expire in lockstep
		p.Age = f.rng.Intn(p.Lifespan)
		return
	}

	p.X = f.rng.Float64() * float64(f.w)
	switch pr.Spawn {
	case SpawnBelow:
		p.Y = float64(f.h) + f.rng.Float64()*3
	case SpawnAbove:
		p.Y = -f.rng.Float64() * 3
	default:
		p.X = f.rng.Float64() * float64(f.w)
		p.Y = f.rng.Float64() * float64(f.h)
	}
}

// Retarget points the field at a new theme, reseeding the pool. Used by the
// feed when the active card changes.
func (f *Field) Retarget(id theme.ID) {
	f.th = theme.Resolve(string(id))
	f.prof = ProfileFor(id)
	f.seed()
}

// Resize updates the bounds without resetting particle state; positions
// adapt on the next recycle.
func (f *Field) Resize(w, h int) {
	f.w, f.h = w, h
}

// Theme returns the theme currently driving the field.
func (f *Field) Theme() theme.Theme { return f.th }

// Stop permanently halts the field. Step and Draw become no-ops, so a stale
// frame callback firing after teardown does no work.
func (f *Field) Stop() { f.stopped = true }

// Step advances every particle by one tick.
func (f *Field) Step() {
	if f.stopped {
		return
	}
	f.tick++
	for i := range f.parts {
		p := &f.parts[i]
		p.Age++
		p.X += p.VX
		p.Y += p.VY
		if f.th.Sway {
			phase := float64(f.tick)*0.08 + p.Kind*2*math.Pi
			p.X += math.Sin(phase) * f.prof.SwayAmp * 0.3
		}
		if f.expired(p) {
			f.init(p, false)
		}
	}
}

func (f *Field) expired(p *Particle) bool {
	if p.Age >= p.Lifespan {
		return true
	}
	m := parameter.ParticleOverscan
	return p.Y > float64(f.h)+m || p.Y < -m || p.X > float64(f.w)+m || p.X < -m
}

// opacity is the three-phase life envelope: linear fade-in, hold, linear
// fade-out. Independent of the theme's draw routine.
func (f *Field) opacity(p *Particle) float64 {
	in := 1.0
	if p.Age < parameter.ParticleFadeTicks {
		in = float64(p.Age) / parameter.ParticleFadeTicks
	}
	out := 1.0
	if left := p.Lifespan - p.Age; left < parameter.ParticleFadeTicks {
		out = float64(left) / parameter.ParticleFadeTicks
	}
	o := math.Min(in, out)
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Draw renders the field onto s. A nil screen is a silent no-op.
func (f *Field) Draw(s tcell.Screen) {
	if s == nil || f.stopped {
		return
	}
	bg := f.th.Colors.Paper
	for i := range f.parts {
		p := &f.parts[i]
		x, y := int(p.X), int(p.Y)
		if x < 0 || x >= f.w || y < 0 || y >= f.h {
			continue
		}
		o := f.opacity(p) * parameter.ParticleGlobalOpacity
		if o <= 0 {
			continue
		}
		f.drawOne(s, p, x, y, o, bg)
	}
}

func (f *Field) drawOne(s tcell.Screen, p *Particle, x, y int, o float64, bg tcell.Color) {
	put := func(px, py int, r rune, c tcell.Color, alpha float64) {
		if px < 0 || px >= f.w || py < 0 || py >= f.h {
			return
		}
		fg := tui.Blend(bg, c, alpha)
		s.SetContent(px, py, r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
	}
	accent := f.th.Colors.Accent

	switch f.th.Draw {
	case theme.DrawSoftBlob:
		r := '•'
		if p.Size > 1.6 {
			r = '●'
		}
		put(x, y, r, accent, o)
		if p.Size > 1.6 {
			// soft radial falloff
			put(x-1, y, '·', accent, o*0.35)
			put(x+1, y, '·', accent, o*0.35)
		}
	case theme.DrawRing:
		put(x, y, '○', accent, o)
	case theme.DrawStarfield:
		r, a := '·', o
		// rare twinkle flash
		if f.rng.Float64() < 0.003 {
			r, a = '✦', math.Min(1, o*2)
		}
		put(x, y, r, f.th.Colors.Text, a)
	case theme.DrawPaperFleck:
		put(x, y, '▪', accent, o)
	case theme.DrawFrostDisc:
		glow := tui.Blend(accent, tcell.NewRGBColor(255, 255, 255), 0.6)
		r := '•'
		if p.Size > 1.2 {
			r = '❄'
		}
		put(x, y, r, glow, o)
	case theme.DrawMinimalPane:
		put(x, y, '░', accent, o*0.6)
		put(x+1, y, '░', accent, o*0.6)
	case theme.DrawBerryDot:
		c := theme.BerryPalette[int(p.Kind*float64(len(theme.BerryPalette)))%len(theme.BerryPalette)]
		put(x, y, '●', c, o)
	default:
		put(x, y, '•', hueColor(p.Kind), o)
	}
}

// hueColor maps a [0,1) discriminant to a fully saturated hue.
func hueColor(k float64) tcell.Color {
	h := k * 6
	seg := int(h) % 6
	frac := int32((h - math.Floor(h)) * 255)
	switch seg {
	case 0:
		return tcell.NewRGBColor(255, frac, 0)
	case 1:
		return tcell.NewRGBColor(255-frac, 255, 0)
	case 2:
		return tcell.NewRGBColor(0, 255, frac)
	case 3:
		return tcell.NewRGBColor(0, 255-frac, 255)
	case 4:
		return tcell.NewRGBColor(frac, 0, 255)
	default:
		return tcell.NewRGBColor(255, 0, 255-frac)
	}
}
