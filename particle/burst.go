package particle

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

var burstRunes = []rune{'✦', '✳', '•', '▪', '◆'}

type burstParticle struct {
	x, y     float64
	vx, vy   float64
	age      int
	lifespan int
	color    tcell.Color
	r        rune
}

// Burst is the short-lived foreground celebration effect, unrelated to the
// ambient field: it fires once, falls under gravity, and expires.
type Burst struct {
	parts []burstParticle
	alive int
}

// NewBurst scatters confetti from (x, y) using the theme's palette.
func NewBurst(x, y int, th theme.Theme, rng *rand.Rand) *Burst {
	palette := []tcell.Color{
		th.Colors.Accent,
		th.Swatch,
		th.Colors.Text,
		tcell.NewRGBColor(255, 240, 180),
	}
	b := &Burst{parts: make([]burstParticle, parameter.BurstCount)}
	for i := range b.parts {
		p := &b.parts[i]
		p.x = float64(x)
		p.y = float64(y)
		p.vx = (rng.Float64()*2 - 1) * parameter.BurstSpreadX
		p.vy = parameter.BurstInitialY * (0.4 + rng.Float64())
		p.lifespan = parameter.BurstLifeMin + rng.Intn(parameter.BurstLifeMax-parameter.BurstLifeMin+1)
		p.color = palette[rng.Intn(len(palette))]
		p.r = burstRunes[rng.Intn(len(burstRunes))]
	}
	b.alive = len(b.parts)
	return b
}

// Step advances the burst one tick and reports whether it is still alive.
func (b *Burst) Step() bool {
	alive := 0
	for i := range b.parts {
		p := &b.parts[i]
		if p.age >= p.lifespan {
			continue
		}
		p.age++
		p.vy += parameter.BurstGravity
		p.x += p.vx
		p.y += p.vy
		alive++
	}
	b.alive = alive
	return alive > 0
}

// Done reports whether every burst particle has expired.
func (b *Burst) Done() bool { return b.alive == 0 }

// Draw renders the burst over whatever is already on screen.
func (b *Burst) Draw(s tcell.Screen, bg tcell.Color) {
	if s == nil {
		return
	}
	w, h := s.Size()
	for i := range b.parts {
		p := &b.parts[i]
		if p.age >= p.lifespan {
			continue
		}
		x, y := int(p.x), int(p.y)
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		fade := 1 - float64(p.age)/float64(p.lifespan)
		fg := tui.Blend(bg, p.color, 0.3+0.7*fade)
		s.SetContent(x, y, p.r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
	}
}
