package particle

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/theme"
)

func TestBurstExpires(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBurst(40, 12, theme.Resolve("VELVET"), rng)
	if b.Done() {
		t.Fatal("Expected a fresh burst to be alive")
	}
	steps := 0
	for b.Step() {
		steps++
		if steps > parameter.BurstLifeMax+1 {
			t.Fatalf("Expected burst to expire within %d steps", parameter.BurstLifeMax)
		}
	}
	if !b.Done() {
		t.Error("Expected burst to report done after expiry")
	}
	if b.Step() {
		t.Error("Expected an expired burst to stay expired")
	}
	b.Draw(nil, theme.Resolve("VELVET").Colors.Paper) // must not panic
}

func TestBurstFallsUnderGravity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := NewBurst(40, 12, theme.Resolve("YULE"), rng)
	for i := 0; i < 20; i++ {
		b.Step()
	}
	falling := 0
	for i := range b.parts {
		if b.parts[i].vy > 0 {
			falling++
		}
	}
	if falling == 0 {
		t.Error("Expected gravity to pull burst particles downward")
	}
}
