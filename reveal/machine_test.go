package reveal

import (
	"testing"
	"time"

	"github.com/lixenwraith/keepsake/theme"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFake() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
}

func hasEvent(evs []Event, want Event) bool {
	for _, ev := range evs {
		if ev == want {
			return true
		}
	}
	return false
}

func TestStandardSequence(t *testing.T) {
	clk := newFake()
	m := New(theme.CategoryStandard, nil, clk)

	if m.State() != StateClosed {
		t.Errorf("Expected initial state to be closed, got %v", m.State())
	}
	if evs := m.Tick(); len(evs) != 0 {
		t.Errorf("Expected no events before open, got %v", evs)
	}

	if err := m.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.State() != StateOpening {
		t.Errorf("Expected state to be opening, got %v", m.State())
	}

	clk.advance(400 * time.Millisecond)
	if evs := m.Tick(); len(evs) != 0 {
		t.Errorf("Expected no events at 400ms, got %v", evs)
	}

	clk.advance(100 * time.Millisecond)
	evs := m.Tick()
	if !hasEvent(evs, EventBurst) {
		t.Errorf("Expected burst at 500ms, got %v", evs)
	}
	if hasEvent(evs, EventForeground) {
		t.Error("Standard variant must never fire the foreground jump")
	}

	// burst fires once
	clk.advance(100 * time.Millisecond)
	if evs := m.Tick(); hasEvent(evs, EventBurst) {
		t.Error("Expected burst to fire exactly once")
	}

	clk.advance(1900 * time.Millisecond) // t = 2.5s
	evs = m.Tick()
	if !hasEvent(evs, EventReading) {
		t.Errorf("Expected reading at 2.5s, got %v", evs)
	}
	if m.State() != StateReading {
		t.Errorf("Expected state to be reading, got %v", m.State())
	}
}

func TestHolidaySequence(t *testing.T) {
	clk := newFake()
	m := New(theme.CategoryHoliday, nil, clk)
	if err := m.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	clk.advance(2500 * time.Millisecond)
	if evs := m.Tick(); !hasEvent(evs, EventBurst) {
		t.Errorf("Expected holiday burst at 2.5s, got %v", evs)
	}

	clk.advance(700 * time.Millisecond) // t = 3.2s
	if evs := m.Tick(); !hasEvent(evs, EventForeground) {
		t.Errorf("Expected foreground jump at 3.2s, got %v", evs)
	}

	clk.advance(800 * time.Millisecond) // t = 4.0s
	evs := m.Tick()
	if !hasEvent(evs, EventReading) {
		t.Errorf("Expected holiday reading at 4.0s, got %v", evs)
	}
	if m.State() != StateReading {
		t.Errorf("Expected state to be reading, got %v", m.State())
	}
}

func TestSkippedFrameDeliversAllEvents(t *testing.T) {
	clk := newFake()
	m := New(theme.CategoryHoliday, nil, clk)
	if err := m.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// one giant frame gap past every deadline
	clk.advance(10 * time.Second)
	evs := m.Tick()
	for _, want := range []Event{EventBurst, EventForeground, EventReading} {
		if !hasEvent(evs, want) {
			t.Errorf("Expected event %d after frame gap, got %v", want, evs)
		}
	}
}

func TestLockedRejectsOpen(t *testing.T) {
	clk := newFake()
	unlock := clk.now.Add(48*time.Hour + 30*time.Minute + 10*time.Second)
	m := New(theme.CategoryStandard, &unlock, clk)

	if !m.Locked() {
		t.Error("Expected machine to be locked")
	}
	if err := m.Open(); err != ErrLocked {
		t.Errorf("Expected ErrLocked, got %v", err)
	}
	if m.State() != StateClosed {
		t.Errorf("Expected state to stay closed, got %v", m.State())
	}

	cd := m.Countdown()
	if cd.Days != 2 || cd.Hours != 0 || cd.Mins != 30 || cd.Secs != 10 {
		t.Errorf("Expected countdown 2d 00:30:10, got %+v", cd)
	}

	// countdown decreases and clamps at zero
	clk.advance(time.Second)
	if got := m.Countdown().Secs; got != 9 {
		t.Errorf("Expected seconds to tick down to 9, got %d", got)
	}
	clk.advance(100 * time.Hour)
	if cd := m.Countdown(); cd != (Countdown{}) {
		t.Errorf("Expected countdown to clamp at zero, got %+v", cd)
	}

	if m.Locked() {
		t.Error("Expected machine to unlock once the instant passed")
	}
	if err := m.Open(); err != nil {
		t.Errorf("Expected open to succeed after unlock, got %v", err)
	}
}

func TestPastUnlockOpensImmediately(t *testing.T) {
	clk := newFake()
	unlock := clk.now.Add(-time.Hour)
	m := New(theme.CategoryStandard, &unlock, clk)
	if m.Locked() {
		t.Error("Expected past unlock instant to be unlocked")
	}
	if err := m.Open(); err != nil {
		t.Errorf("Expected open to succeed, got %v", err)
	}
}

func TestOpenIsForwardOnly(t *testing.T) {
	clk := newFake()
	m := New(theme.CategoryStandard, nil, clk)
	if err := m.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	clk.advance(3 * time.Second)
	m.Tick()
	if err := m.Open(); err != nil {
		t.Errorf("Expected open past closed to be a no-op, got %v", err)
	}
	if m.State() != StateReading {
		t.Errorf("Expected state to stay reading, got %v", m.State())
	}
}

func TestTearAndShareDelay(t *testing.T) {
	clk := newFake()
	m := New(theme.CategoryStandard, nil, clk)

	if m.Tear() {
		t.Error("Expected tear to be rejected before reading")
	}

	m.Open()
	clk.advance(3 * time.Second)
	m.Tick()

	if !m.Tear() {
		t.Error("Expected first tear to succeed")
	}
	if m.Tear() {
		t.Error("Expected second tear to be rejected")
	}
	if !m.Torn() {
		t.Error("Expected torn flag to be set")
	}

	clk.advance(1400 * time.Millisecond)
	if evs := m.Tick(); hasEvent(evs, EventCouponShare) {
		t.Errorf("Expected no share event at 1.4s after tear, got %v", evs)
	}
	clk.advance(100 * time.Millisecond)
	if evs := m.Tick(); !hasEvent(evs, EventCouponShare) {
		t.Errorf("Expected share event 1.5s after tear, got %v", evs)
	}
	clk.advance(time.Second)
	if evs := m.Tick(); hasEvent(evs, EventCouponShare) {
		t.Error("Expected share event to fire exactly once")
	}
}

func TestReadingDelayPerVariant(t *testing.T) {
	if got := ReadingDelay(theme.CategoryStandard); got != 2500*time.Millisecond {
		t.Errorf("Expected standard reading delay to be 2.5s, got %v", got)
	}
	if got := ReadingDelay(theme.CategoryHoliday); got != 4*time.Second {
		t.Errorf("Expected holiday reading delay to be 4s, got %v", got)
	}
}
