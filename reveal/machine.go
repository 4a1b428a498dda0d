// Package reveal drives the closed → opening → reading lifecycle of a
// message container. Transitions are strictly forward; a locked message
// rejects opening until its unlock instant. The opening → reading
// transition is time-gated off fixed deadlines that estimate the drawn
// animation's completion (see parameter: the deadlines live beside the
// durations they must track).
package reveal

import (
	"errors"
	"time"

	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/theme"
)

// State is the reveal lifecycle position. Strictly forward-moving per
// instance; returning to an editing context discards the instance.
type State uint8

const (
	StateClosed State = iota
	StateOpening
	StateReading
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateReading:
		return "reading"
	}
	return "unknown"
}

// ErrLocked rejects Open while the unlock instant is still in the future.
var ErrLocked = errors.New("still locked")

// Event is a timed effect owed to the view.
type Event uint8

const (
	// EventBurst fires the celebration burst, variant-synchronized with the
	// container clearing
	EventBurst Event = iota
	// EventForeground jumps the holiday box content to the front depth
	EventForeground
	// EventReading marks entry into the reading state
	EventReading
	// EventCouponShare opens the messaging hand-off after the tear delay
	EventCouponShare
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default wall clock.
var SystemClock Clock = systemClock{}

// Machine is one message's reveal instance.
type Machine struct {
	clock    Clock
	category theme.Category
	unlockAt *time.Time

	state    State
	openedAt time.Time

	burstFired      bool
	foregroundFired bool

	torn       bool
	tornAt     time.Time
	shareFired bool
}

// New creates a reveal instance for a message with the given theme category
// and optional unlock instant. A nil clock uses the system clock.
func New(cat theme.Category, unlockAt *time.Time, clock Clock) *Machine {
	if clock == nil {
		clock = SystemClock
	}
	return &Machine{clock: clock, category: cat, unlockAt: unlockAt}
}

// State returns the current lifecycle position.
func (m *Machine) State() State { return m.state }

// Category returns the presentation variant selector.
func (m *Machine) Category() theme.Category { return m.category }

// Locked reports whether the unlock instant is still in the future. Locked
// is a precondition on opening, not a state of the machine.
func (m *Machine) Locked() bool {
	return m.unlockAt != nil && m.unlockAt.After(m.clock.Now())
}

// Open attempts the closed → opening transition. Rejected with ErrLocked
// while locked; a no-op in any state past closed.
func (m *Machine) Open() error {
	if m.state != StateClosed {
		return nil
	}
	if m.Locked() {
		return ErrLocked
	}
	m.state = StateOpening
	m.openedAt = m.clock.Now()
	return nil
}

// Elapsed is the time since opening began. Zero before Open succeeds.
func (m *Machine) Elapsed() time.Duration {
	if m.state == StateClosed {
		return 0
	}
	return m.clock.Now().Sub(m.openedAt)
}

func burstDelay(cat theme.Category) time.Duration {
	if cat == theme.CategoryHoliday {
		return parameter.BurstDelayHoliday
	}
	return parameter.BurstDelayStandard
}

// ReadingDelay returns the fixed opening → reading deadline for a variant.
func ReadingDelay(cat theme.Category) time.Duration {
	if cat == theme.CategoryHoliday {
		return parameter.ReadingDelayHoliday
	}
	return parameter.ReadingDelayStandard
}

// Tick evaluates due deadlines and returns the events owed since the last
// call. Call once per frame.
func (m *Machine) Tick() []Event {
	var evs []Event
	switch m.state {
	case StateOpening:
		el := m.Elapsed()
		if !m.burstFired && el >= burstDelay(m.category) {
			m.burstFired = true
			evs = append(evs, EventBurst)
		}
		if m.category == theme.CategoryHoliday && !m.foregroundFired && el >= parameter.ForegroundJumpAt {
			m.foregroundFired = true
			evs = append(evs, EventForeground)
		}
		if el >= ReadingDelay(m.category) {
			m.state = StateReading
			evs = append(evs, EventReading)
		}
	case StateReading:
		if m.torn && !m.shareFired && m.clock.Now().Sub(m.tornAt) >= parameter.CouponShareDelay {
			m.shareFired = true
			evs = append(evs, EventCouponShare)
		}
	}
	return evs
}

// Tear flips the local torn flag, idempotent-once. Returns true only on the
// first invocation, and only once the message is readable.
func (m *Machine) Tear() bool {
	if m.state != StateReading || m.torn {
		return false
	}
	m.torn = true
	m.tornAt = m.clock.Now()
	return true
}

// Torn reports the local, never-persisted tear flag.
func (m *Machine) Torn() bool { return m.torn }

// Countdown is the remaining time before unlock, split for display.
type Countdown struct {
	Days, Hours, Mins, Secs int
}

// Countdown computes the live time-capsule countdown. All fields are zero
// once the unlock instant has passed.
func (m *Machine) Countdown() Countdown {
	if m.unlockAt == nil {
		return Countdown{}
	}
	rem := m.unlockAt.Sub(m.clock.Now())
	if rem < 0 {
		rem = 0
	}
	return Countdown{
		Days:  int(rem / (24 * time.Hour)),
		Hours: int(rem/time.Hour) % 24,
		Mins:  int(rem/time.Minute) % 60,
		Secs:  int(rem/time.Second) % 60,
	}
}
