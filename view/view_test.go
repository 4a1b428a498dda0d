package view

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/audio"
	"github.com/lixenwraith/keepsake/config"
	"github.com/lixenwraith/keepsake/engage"
	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/reveal"
	"github.com/lixenwraith/keepsake/scribe"
	"github.com/lixenwraith/keepsake/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeLikes struct {
	liked map[string]bool
}

func (l *fakeLikes) DeviceID() string     { return "device-1" }
func (l *fakeLikes) Liked(id string) bool { return l.liked[id] }
func (l *fakeLikes) SetLiked(id string, liked bool) error {
	l.liked[id] = liked
	return nil
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return app.New(screen, audio.NewCoordinator(t.TempDir(), nil))
}

func newTestDeps(st store.Store, clk reveal.Clock) *Deps {
	return &Deps{
		Store:   st,
		Tracker: engage.NewTracker(st, &fakeLikes{liked: make(map[string]bool)}),
		Scribe:  scribe.New(nil),
		Cfg: &config.Config{
			DataDir:      "/tmp/keepsake-test",
			ShareBaseURL: "https://keepsake.example",
		},
		Clock: clk,
	}
}

func TestClamp01AndPhase(t *testing.T) {
	if got := clamp01(-0.5); got != 0 {
		t.Errorf("Expected clamp below zero, got %f", got)
	}
	if got := clamp01(1.5); got != 1 {
		t.Errorf("Expected clamp above one, got %f", got)
	}

	if got := phase(0, time.Second, time.Second); got != 0 {
		t.Errorf("Expected phase before the delay to be 0, got %f", got)
	}
	if got := phase(1500*time.Millisecond, time.Second, time.Second); got != 0.5 {
		t.Errorf("Expected phase at the midpoint to be 0.5, got %f", got)
	}
	if got := phase(5*time.Second, time.Second, time.Second); got != 1 {
		t.Errorf("Expected phase past the duration to be 1, got %f", got)
	}
}

func TestRevealFlowCountsOneView(t *testing.T) {
	st := store.NewMemoryStore()
	id, err := st.Create(t.Context(), model.Message{
		RecipientName: "Sam",
		SenderName:    "Riley",
		Body:          "a little hello across the distance",
		Theme:         "VELVET",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	msg, _ := st.Get(t.Context(), id)

	clk := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	deps := newTestDeps(st, clk)
	a := newTestApp(t)

	v := NewRevealView(deps, msg, false)
	v.Mount(a)
	defer v.Unmount()
	v.Draw(a.Screen())

	// enter opens the container
	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	clk.now = clk.now.Add(time.Second)
	v.Tick(clk.now)
	v.Draw(a.Screen())
	if v.machine.State() != reveal.StateOpening {
		t.Fatalf("Expected opening, got %v", v.machine.State())
	}

	// past the reading deadline the view is counted exactly once
	clk.now = clk.now.Add(2 * time.Second)
	v.Tick(clk.now)
	v.Draw(a.Screen())
	if v.machine.State() != reveal.StateReading {
		t.Fatalf("Expected reading, got %v", v.machine.State())
	}
	if got := deps.Tracker.Views(id); got != 1 {
		t.Errorf("Expected one counted view, got %d", got)
	}

	stored, _ := st.Get(t.Context(), id)
	if stored.Views != 1 {
		t.Errorf("Expected the backend counter at 1, got %d", stored.Views)
	}

	clk.now = clk.now.Add(time.Second)
	v.Tick(clk.now)
	if got := deps.Tracker.Views(id); got != 1 {
		t.Errorf("Expected no further counting, got %d", got)
	}
}

func TestPreviewNeverCounts(t *testing.T) {
	st := store.NewMemoryStore()
	clk := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	deps := newTestDeps(st, clk)
	a := newTestApp(t)

	v := NewRevealView(deps, model.Message{
		RecipientName: "Sam",
		Body:          "draft words",
		Theme:         "WINTER",
	}, true)
	v.Mount(a)
	defer v.Unmount()

	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	clk.now = clk.now.Add(10 * time.Second)
	v.Tick(clk.now)
	v.Draw(a.Screen())

	if v.machine.State() != reveal.StateReading {
		t.Fatalf("Expected reading, got %v", v.machine.State())
	}
	if got := deps.Tracker.Views(""); got != 0 {
		t.Errorf("Expected no counted views in preview, got %d", got)
	}
}

func TestLockedRevealShowsCountdown(t *testing.T) {
	st := store.NewMemoryStore()
	clk := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	deps := newTestDeps(st, clk)
	a := newTestApp(t)

	unlock := clk.now.Add(24 * time.Hour)
	v := NewRevealView(deps, model.Message{
		ID:            "locked-1",
		RecipientName: "Sam",
		Body:          "patience",
		Theme:         "VELVET",
		UnlockAt:      &unlock,
	}, false)
	v.Mount(a)
	defer v.Unmount()

	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if v.machine.State() != reveal.StateClosed {
		t.Errorf("Expected a locked capsule to stay closed, got %v", v.machine.State())
	}
	v.Tick(clk.now)
	v.Draw(a.Screen())
	if got := deps.Tracker.Views("locked-1"); got != 0 {
		t.Errorf("Expected no counted views while locked, got %d", got)
	}
}

func TestCreateViewBuildsMessage(t *testing.T) {
	st := store.NewMemoryStore()
	clk := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	deps := newTestDeps(st, clk)
	a := newTestApp(t)

	v := NewCreateView(deps)
	v.Mount(a)
	defer v.Unmount()

	v.recipient.SetString("Sam")
	v.sender.SetString("Riley")
	v.body.SetString("see you soon")
	m := v.buildMessage()

	if m.RecipientName != "Sam" || m.SenderName != "Riley" || m.Body != "see you soon" {
		t.Errorf("Expected the form fields in the message, got %+v", m)
	}
	if m.Theme != "VELVET" {
		t.Errorf("Expected the default theme, got %s", m.Theme)
	}
	if m.Coupon != nil || m.UnlockAt != nil {
		t.Errorf("Expected no coupon or unlock by default, got %+v", m)
	}
	v.Draw(a.Screen())
}

func TestCreateViewRoundTripsThroughPreview(t *testing.T) {
	st := store.NewMemoryStore()
	clk := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	deps := newTestDeps(st, clk)
	a := newTestApp(t)

	v := NewCreateView(deps)
	v.Mount(a)
	v.recipient.SetString("Sam")
	v.body.SetString("hold this thought")
	v.hasCoupon = true
	v.cpTitle.SetString("a hug")
	m := v.buildMessage()
	v.Unmount()

	restored := NewCreateViewWith(deps, m)
	restored.Mount(a)
	defer restored.Unmount()
	got := restored.buildMessage()
	if got.RecipientName != m.RecipientName || got.Body != m.Body {
		t.Errorf("Expected the preview round-trip to keep the form, got %+v", got)
	}
	if got.Coupon == nil || got.Coupon.Title != "a hug" {
		t.Errorf("Expected the coupon to survive the round-trip, got %+v", got.Coupon)
	}
}
