package view

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/engage"
	"github.com/lixenwraith/keepsake/feed"
	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/particle"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// FeedView scrolls the public listing one full-height card at a time. The
// centered card is active: its theme drives the ambient field and audio,
// and dwelling on it long enough counts a view.
type FeedView struct {
	deps *Deps
	app  *app.App

	scroller *feed.Scroller
	field    *particle.Field
	bursts   []*particle.Burst
	toast    tui.Toast
	rng      *rand.Rand

	activeID    string
	loading     bool
	pendingLike *engage.LikeToggle
	w, h        int
}

func NewFeedView(deps *Deps) *FeedView {
	return &FeedView{
		deps: deps,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (v *FeedView) Mount(a *app.App) {
	v.app = a
	v.w, v.h = a.Screen().Size()
	v.field = particle.NewField(theme.Default, v.w, v.h)
	v.scroller = feed.New(v.deps.Store, parameter.FeedPageSize)
	v.scroller.SetViewport(v.h)
	v.loadMore()
}

func (v *FeedView) Unmount() {
	v.field.Stop()
	v.app.Audio.Stop()
}

func (v *FeedView) loadMore() {
	if v.loading || !v.scroller.NeedsMore() {
		return
	}
	v.loading = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := v.scroller.LoadNext(ctx)
		v.app.Post(func() {
			v.loading = false
			if err != nil {
				v.toast.Show("couldn't load the feed", tui.ToastError,
					v.deps.clock().Now(), parameter.ToastDuration)
			}
		})
	}()
}

func (v *FeedView) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.w, v.h = ev.Size()
		v.field.Resize(v.w, v.h)
		v.scroller.SetViewport(v.h)
		return true
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *FeedView) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.app.SetView(NewCreateView(v.deps))
		return true
	case tcell.KeyDown, tcell.KeyPgDn:
		v.scroller.Scroll(v.h)
		return true
	case tcell.KeyUp, tcell.KeyPgUp:
		v.scroller.Scroll(-v.h)
		return true
	case tcell.KeyEnter:
		if card, ok := v.scroller.ActiveCard(); ok {
			v.app.SetView(NewRevealView(v.deps, card, false))
		}
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			v.app.SetView(NewCreateView(v.deps))
			return true
		case 'j':
			v.scroller.Scroll(parameter.FeedScrollStep)
			return true
		case 'k':
			v.scroller.Scroll(-parameter.FeedScrollStep)
			return true
		case 'l':
			v.toggleLike()
			return true
		case 'm':
			v.app.Audio.ToggleMute()
			return true
		case 'p':
			v.app.Audio.TogglePlay()
			return true
		}
	}
	return false
}

func (v *FeedView) toggleLike() {
	card, ok := v.scroller.ActiveCard()
	if !ok || v.pendingLike != nil {
		return
	}
	lt := v.deps.Tracker.BeginToggleLike(card.ID)
	v.pendingLike = lt
	if lt.Celebrates() {
		idx := v.scroller.ActiveIndex()
		y := idx*v.h - v.scroller.Offset() + v.h/2
		v.bursts = append(v.bursts, particle.NewBurst(v.w/2, y, v.activeTheme(), v.rng))
	}
	id := card.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		ok := v.deps.Tracker.Toggle(ctx, id)
		v.app.Post(func() {
			lt.Resolve(ok)
			v.pendingLike = nil
		})
	}()
}

func (v *FeedView) activeTheme() theme.Theme {
	if card, ok := v.scroller.ActiveCard(); ok {
		return theme.Resolve(card.Theme)
	}
	th, _ := theme.Lookup(theme.Default)
	return th
}

func (v *FeedView) Tick(now time.Time) {
	v.field.Step()
	v.loadMore()

	if card, ok := v.scroller.ActiveCard(); ok && card.ID != v.activeID {
		v.activeID = card.ID
		th := theme.Resolve(card.Theme)
		v.field.Retarget(th.ID)
		v.app.Audio.SetSource(card.TrackURL, th, v.app.Post)
		v.deps.Tracker.Seed(card.ID, card.Views, card.Likes)
		v.deps.Tracker.SetActive(card.ID, now)
	}
	v.deps.Tracker.FeedTick(context.Background(), now)

	alive := v.bursts[:0]
	for _, b := range v.bursts {
		if b.Step() {
			alive = append(alive, b)
		}
	}
	v.bursts = alive
}

func (v *FeedView) Draw(s tcell.Screen) {
	th := v.activeTheme()
	tui.FillRect(s, 0, 0, v.w, v.h, ' ', paperStyle(th))
	v.field.Draw(s)

	switch {
	case v.scroller.Empty():
		tui.DrawTextCentered(s, v.h/2-1, paperStyle(th), "the feed is quiet")
		tui.DrawTextCentered(s, v.h/2+1, accentStyle(th), "be the first — esc to compose")
	case len(v.scroller.Cards()) == 0 && v.loading:
		tui.DrawTextCentered(s, v.h/2, paperStyle(th), "fetching keepsakes...")
	default:
		v.drawCards(s)
	}

	for _, b := range v.bursts {
		b.Draw(s, th.Colors.Paper)
	}

	hints := "↑↓ browse  enter open  l like  m mute  esc back"
	tui.DrawText(s, 1, v.h-1, paperStyle(th), hints)
	v.toast.Draw(s, v.deps.clock().Now())
}

func (v *FeedView) drawCards(s tcell.Screen) {
	offset := v.scroller.Offset()
	cards := v.scroller.Cards()
	for i, card := range cards {
		top := i*v.h - offset
		if top+v.h <= 0 || top >= v.h {
			continue
		}
		v.drawCard(s, card, top)
	}
	if v.scroller.Exhausted() && len(cards) > 0 {
		tail := len(cards)*v.h - offset
		if tail < v.h {
			tui.DrawTextCentered(s, tail-2, accentStyle(v.activeTheme()), "♥ you're all caught up")
		}
	}
}

func (v *FeedView) drawCard(s tcell.Screen, card model.Message, top int) {
	th := theme.Resolve(card.Theme)
	cw := containerW
	if cw > v.w-4 {
		cw = v.w - 4
	}
	ch := v.h - 6
	if ch < 6 {
		ch = 6
	}
	x := (v.w - cw) / 2
	y := top + 3
	cs := containerStyle(th)

	tui.FillRect(s, x, y, cw, ch, ' ', cs)
	tui.DrawBox(s, x, y, cw, ch, cs)
	tui.DrawText(s, x+2, y+1, cs.Foreground(th.Colors.Accent), "for "+card.RecipientName)

	lines := tui.WrapText(card.Body, cw-4)
	maxLines := ch - 5
	for j, line := range lines {
		if j >= maxLines {
			tui.DrawText(s, x+2, y+3+maxLines-1, cs, "…")
			break
		}
		tui.DrawText(s, x+2, y+3+j, cs, line)
	}

	liked := " "
	if v.deps.Tracker.Liked(card.ID) {
		liked = "♥"
	}
	footer := fmt.Sprintf("%s %d   seen %d   — %s", liked,
		v.deps.Tracker.LikeCount(card.ID), v.deps.Tracker.Views(card.ID), card.SenderName)
	tui.DrawText(s, x+2, y+ch-2, cs, footer)
}
