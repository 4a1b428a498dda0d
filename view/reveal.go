package view

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/engage"
	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/parameter"
	"github.com/lixenwraith/keepsake/particle"
	"github.com/lixenwraith/keepsake/reveal"
	"github.com/lixenwraith/keepsake/share"
	"github.com/lixenwraith/keepsake/theme"
	"github.com/lixenwraith/keepsake/tui"
)

// RevealView drives one message's animated reveal: ambient field behind a
// closed container, the timed opening sequence, then the readable message
// with counters and the coupon sub-flow.
type RevealView struct {
	deps    *Deps
	app     *app.App
	msg     model.Message
	preview bool

	th      theme.Theme
	machine *reveal.Machine
	field   *particle.Field
	bursts  []*particle.Burst
	toast   tui.Toast
	rng     *rand.Rand

	foreground  bool
	pendingLike *engage.LikeToggle
	w, h        int
}

// NewRevealView creates the reveal for msg. preview marks the composer's
// editor preview: counters never fire and Esc returns to the form.
func NewRevealView(deps *Deps, msg model.Message, preview bool) *RevealView {
	return &RevealView{
		deps:    deps,
		msg:     msg,
		preview: preview,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (v *RevealView) Mount(a *app.App) {
	v.app = a
	v.w, v.h = a.Screen().Size()
	v.th = theme.Resolve(v.msg.Theme)
	v.field = particle.NewField(v.th.ID, v.w, v.h)
	v.machine = reveal.New(v.th.Category, v.msg.UnlockAt, v.deps.clock())
	v.deps.Tracker.Seed(v.msg.ID, v.msg.Views, v.msg.Likes)
}

func (v *RevealView) Unmount() {
	v.field.Stop()
	v.app.Audio.Stop()
}

func (v *RevealView) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.w, v.h = ev.Size()
		v.field.Resize(v.w, v.h)
		return true
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *RevealView) handleKey(ev *tcell.EventKey) bool {
	now := v.deps.clock().Now()
	if ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		if v.preview {
			v.app.SetView(NewCreateViewWith(v.deps, v.msg))
		} else {
			v.app.SetView(NewCreateView(v.deps))
		}
		return true
	}

	switch v.machine.State() {
	case reveal.StateClosed:
		if ev.Key() == tcell.KeyEnter {
			if err := v.machine.Open(); err == reveal.ErrLocked {
				v.toast.Show("still locked — come back later", tui.ToastWarning, now, parameter.ToastDuration)
			}
			return true
		}
	case reveal.StateReading:
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'l':
			v.toggleLike()
			return true
		case 't':
			v.tearCoupon()
			return true
		case 'c':
			v.copyLink()
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

func (v *RevealView) toggleLike() {
	if v.preview || v.msg.ID == "" || v.pendingLike != nil {
		return
	}
	lt := v.deps.Tracker.BeginToggleLike(v.msg.ID)
	v.pendingLike = lt
	if lt.Celebrates() {
		v.bursts = append(v.bursts, particle.NewBurst(v.w/2, v.h/2, v.th, v.rng))
	}
	id := v.msg.ID
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

func (v *RevealView) tearCoupon() {
	if v.msg.Coupon == nil || !v.machine.Tear() {
		return
	}
	v.bursts = append(v.bursts, particle.NewBurst(v.w/2, v.h*3/4, v.th, v.rng))
	if path, err := share.ExportCouponSnapshot(v.deps.Cfg.DataDir, &v.msg); err != nil {
		logger.Log.Warn("coupon snapshot failed", "err", err)
	} else {
		logger.Log.Info("coupon snapshot written", "path", path)
	}
}

func (v *RevealView) copyLink() {
	var link string
	if v.msg.ID != "" {
		link = share.BuildLink(v.deps.Cfg.ShareBaseURL, v.msg.ID)
	} else {
		link = share.EncodeLegacy(v.deps.Cfg.ShareBaseURL, v.msg)
	}
	share.CopyToClipboard(v.app.Screen(), link)
	v.toast.Show("link copied", tui.ToastSuccess, v.deps.clock().Now(), parameter.ToastDuration)
}

func (v *RevealView) Tick(now time.Time) {
	v.field.Step()

	for _, ev := range v.machine.Tick() {
		switch ev {
		case reveal.EventBurst:
			v.bursts = append(v.bursts, particle.NewBurst(v.w/2, v.h/2, v.th, v.rng))
		case reveal.EventForeground:
			v.foreground = true
		case reveal.EventReading:
			v.deps.Tracker.CountView(context.Background(), v.msg.ID,
				engage.ViewContext{Preview: v.preview})
			v.app.Audio.SetSource(v.msg.TrackURL, v.th, v.app.Post)
		case reveal.EventCouponShare:
			text := fmt.Sprintf("I just tore the \"%s\" coupon from your keepsake! 🎁", v.msg.Coupon.Title)
			share.OpenExternal(share.MessagingURL(v.msg.Coupon.Contact, text))
		}
	}

	alive := v.bursts[:0]
	for _, b := range v.bursts {
		if b.Step() {
			alive = append(alive, b)
		}
	}
	v.bursts = alive
}

func (v *RevealView) Draw(s tcell.Screen) {
	bg := paperStyle(v.th)
	tui.FillRect(s, 0, 0, v.w, v.h, ' ', bg)
	v.field.Draw(s)

	switch v.machine.State() {
	case reveal.StateClosed:
		if v.machine.Locked() {
			v.drawCountdown(s)
		} else {
			v.drawContainer(s, 0)
			tui.DrawTextCentered(s, v.h-3, accentStyle(v.th), "press enter to open")
		}
	case reveal.StateOpening:
		v.drawContainer(s, v.machine.Elapsed())
	case reveal.StateReading:
		v.drawReading(s)
	}

	for _, b := range v.bursts {
		b.Draw(s, v.th.Colors.Paper)
	}
	v.toast.Draw(s, v.deps.clock().Now())
}

func (v *RevealView) drawContainer(s tcell.Screen, elapsed time.Duration) {
	if v.th.Category == theme.CategoryHoliday {
		drawGiftBox(s, v.th, v.w, v.h, elapsed, v.foreground)
	} else {
		drawEnvelope(s, v.th, v.w, v.h, elapsed)
	}
}

func (v *RevealView) drawCountdown(s tcell.Screen) {
	cd := v.machine.Countdown()
	as := accentStyle(v.th)
	tui.DrawTextCentered(s, v.h/2-3, paperStyle(v.th), "⏳ this keepsake is a time capsule")
	tui.DrawTextCentered(s, v.h/2-1, as,
		fmt.Sprintf("%d days  %02d:%02d:%02d", cd.Days, cd.Hours, cd.Mins, cd.Secs))
	tui.DrawTextCentered(s, v.h/2+2, paperStyle(v.th), "it unlocks itself — no peeking")
}

func (v *RevealView) drawReading(s tcell.Screen) {
	th := v.th
	ps := paperStyle(th)
	as := accentStyle(th)

	tui.DrawTextCentered(s, 2, as, fmt.Sprintf("to %s", v.msg.RecipientName))

	lines := tui.WrapText(v.msg.Body, min(v.w-12, 60))
	y := 4
	maxY := v.h - 8
	for _, line := range lines {
		if y > maxY {
			break
		}
		tui.DrawTextCentered(s, y, ps, line)
		y++
	}
	y += 2
	tui.DrawTextCentered(s, y, as, fmt.Sprintf("— %s", v.msg.SenderName))

	if v.msg.Coupon != nil {
		v.drawCoupon(s, v.h-6)
	}

	v.drawFooter(s)
}

func (v *RevealView) drawCoupon(s tcell.Screen, y int) {
	c := v.msg.Coupon
	cs := containerStyle(v.th)
	x := (v.w - containerW) / 2
	tui.FillRect(s, x, y, containerW, 3, ' ', cs)
	tui.DrawBox(s, x, y, containerW, 3, cs)
	if v.machine.Torn() {
		label := "🎁 " + c.Title
		if c.Code != "" {
			label += "  code: " + c.Code
		}
		tui.DrawText(s, x+2, y+1, cs, label)
	} else {
		tui.DrawText(s, x+2, y+1, cs, "🎫 a coupon is attached — press t to tear")
	}
}

func (v *RevealView) drawFooter(s tcell.Screen) {
	ps := paperStyle(v.th)
	id := v.msg.ID
	counts := fmt.Sprintf("♥ %d   seen %d",
		v.deps.Tracker.LikeCount(id), v.deps.Tracker.Views(id))
	if id == "" {
		counts = "draft preview"
	}
	tui.DrawText(s, 1, v.h-2, ps, counts)

	hints := "l like  c copy link  q back"
	if !v.app.Audio.Hidden() {
		play := "▷"
		if v.app.Audio.Playing() {
			play = "♪"
		}
		mute := ""
		if v.app.Audio.Muted() {
			mute = " muted"
		}
		hints = play + mute + "  p play  m mute  " + hints
	}
	tui.DrawText(s, v.w-len([]rune(hints))-1, v.h-2, ps, hints)
}
