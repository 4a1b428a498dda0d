// Package view implements the compose, reveal, and feed screens plus the
// blocking notice. Views own their particle field, timers, and audio claim
// between Mount and Unmount.
package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/config"
	"github.com/lixenwraith/keepsake/engage"
	"github.com/lixenwraith/keepsake/reveal"
	"github.com/lixenwraith/keepsake/scribe"
	"github.com/lixenwraith/keepsake/store"
	"github.com/lixenwraith/keepsake/theme"
)

// Deps bundles the collaborators every view draws on.
type Deps struct {
	Store   store.Store
	Tracker *engage.Tracker
	Scribe  *scribe.Scribe
	Cfg     *config.Config
	Clock   reveal.Clock
}

func (d *Deps) clock() reveal.Clock {
	if d.Clock != nil {
		return d.Clock
	}
	return reveal.SystemClock
}

func paperStyle(th theme.Theme) tcell.Style {
	return tcell.StyleDefault.Foreground(th.Colors.Text).Background(th.Colors.Paper)
}

func accentStyle(th theme.Theme) tcell.Style {
	return tcell.StyleDefault.Foreground(th.Colors.Accent).Background(th.Colors.Paper)
}

func containerStyle(th theme.Theme) tcell.Style {
	return tcell.StyleDefault.Foreground(th.Colors.Text).Background(th.Colors.Container)
}
