// Package app runs the frame loop: a fixed tick drives the mounted view's
// animation, tcell events and async completions are delivered into the same
// goroutine, and view switches tear the old view down before the new one
// mounts. All UI state is owned by the loop goroutine; remote calls run
// elsewhere and post their results back with Post.
package app

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/audio"
	"github.com/lixenwraith/keepsake/parameter"
)

// View is one mounted screen. Mount and Unmount bracket its resource
// ownership: fields, timers, and the audio claim must not outlive Unmount.
type View interface {
	Mount(a *App)
	HandleEvent(ev tcell.Event) bool
	Tick(now time.Time)
	Draw(s tcell.Screen)
	Unmount()
}

// App owns the screen, the single audio coordinator, and the mounted view.
type App struct {
	screen tcell.Screen
	Audio  *audio.Coordinator

	view View

	msgs     chan func()
	events   chan tcell.Event
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates the app over an initialized screen.
func New(screen tcell.Screen, coord *audio.Coordinator) *App {
	return &App{
		screen:   screen,
		Audio:    coord,
		msgs:     make(chan func(), 64),
		events:   make(chan tcell.Event, 16),
		stopChan: make(chan struct{}),
	}
}

// Screen returns the drawing surface.
func (a *App) Screen() tcell.Screen { return a.screen }

// Post delivers fn to the frame loop goroutine. Safe from any goroutine;
// used by async completions so all state mutation stays on the loop.
func (a *App) Post(fn func()) {
	select {
	case a.msgs <- fn:
	case <-a.stopChan:
	}
}

// SetView switches the mounted view. Must be called on the loop goroutine.
// The old view is fully unmounted before the new one mounts, so at most one
// particle field and one audio claim exist at a time.
func (a *App) SetView(v View) {
	if a.view != nil {
		a.view.Unmount()
	}
	a.screen.HideCursor()
	a.view = v
	if v != nil {
		v.Mount(a)
	}
}

// Stop ends the frame loop.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
}

// Run mounts initial and loops until Stop. Blocks the calling goroutine.
func (a *App) Run(initial View) {
	a.wg.Add(1)
	go a.pollEvents()

	a.SetView(initial)

	ticker := time.NewTicker(parameter.TickInterval)
	defer ticker.Stop()

	armed := false
	for {
		select {
		case <-a.stopChan:
			a.SetView(nil)
			a.screen.Fini()
			a.wg.Wait()
			return

		case ev := <-a.events:
			switch ev.(type) {
			case *tcell.EventKey, *tcell.EventMouse:
				// first interaction arms autoplay, process-wide, exactly once
				if !armed {
					armed = true
					audio.Arm()
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			if a.view != nil {
				a.view.HandleEvent(ev)
			}

		case fn := <-a.msgs:
			fn()

		case <-ticker.C:
			now := time.Now()
			if a.view != nil {
				a.view.Tick(now)
				a.screen.Clear()
				a.view.Draw(a.screen)
				a.screen.Show()
			}
		}
	}
}

func (a *App) pollEvents() {
	defer a.wg.Done()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.stopChan:
			return
		}
	}
}
