// Package audio owns the single persistent playback handle. Source
// resolution falls back message override -> operator pool -> theme default;
// a load failure gets exactly one fallback substitution, after which the
// player hides itself rather than presenting a broken control. Audio is
// cosmetic: every failure degrades silently.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/theme"
)

// unlocked is the process-wide interaction flag: autoplay is only attempted
// once the user has interacted with the app at least once. Armed exactly
// once by the frame loop's first input event.
var unlocked atomic.Bool

// Arm marks that the user has interacted with the app.
func Arm() { unlocked.Store(true) }

// Unlocked reports whether autoplay is permitted.
func Unlocked() bool { return unlocked.Load() }

const mixRate = beep.SampleRate(44100)

// httpClient bounds remote track fetches so a stalled host cannot hold a
// loader goroutine forever.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// Coordinator is the single playback handle. Only the currently mounted
// view drives it; loads run on their own goroutine and re-enter through
// the frame loop.
type Coordinator struct {
	trackDir string
	pool     []string
	rng      *rand.Rand

	disabled atomic.Bool   // no audio backend; every method no-ops
	gen      atomic.Uint64 // invalidates in-flight loads on SetSource/Stop
	hidden   bool          // both source and fallback failed

	ctrl   *beep.Ctrl
	volume *effects.Volume
	muted  bool
}

// NewCoordinator initializes the speaker. Backend failure disables audio
// without returning an error.
func NewCoordinator(trackDir string, pool []string) *Coordinator {
	c := &Coordinator{
		trackDir: trackDir,
		pool:     pool,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := speaker.Init(mixRate, mixRate.N(time.Second/10)); err != nil {
		logger.Log.Warn("audio backend unavailable", "err", err)
		c.disabled.Store(true)
	}
	return c
}

// resolveChain builds the fallback priority for a message and theme.
func (c *Coordinator) resolveChain(override string, th theme.Theme) []string {
	var chain []string
	if override != "" {
		chain = append(chain, override)
	}
	if len(c.pool) > 0 {
		chain = append(chain, c.pool[c.rng.Intn(len(c.pool))])
	}
	if th.Track != "" {
		chain = append(chain, filepath.Join(c.trackDir, th.Track))
	}
	return chain
}

// SetSource resolves the track for a message override and theme and loads
// it off the calling goroutine. post delivers the install step back to the
// frame loop; a later SetSource or Stop makes a still-in-flight result a
// no-op. One fallback substitution on error, then the player hides itself.
func (c *Coordinator) SetSource(override string, th theme.Theme, post func(func())) {
	if c.disabled.Load() {
		return
	}
	c.hidden = false
	gen := c.gen.Add(1)
	chain := c.resolveChain(override, th)
	go func() {
		for i, src := range chain {
			ctrl, vol, err := c.prepare(src)
			if err != nil {
				logger.Log.Debug("track load failed", "src", src, "err", err)
				if i >= 1 {
					// already on a fallback; stop substituting
					break
				}
				continue
			}
			post(func() { c.install(gen, ctrl, vol) })
			return
		}
		post(func() { c.hide(gen) })
	}()
}

// readSeekCloser keeps the Seeker side of the in-memory track visible to
// the decoders; the looped streamer rewinds through Seek when it drains.
type readSeekCloser struct{ *bytes.Reader }

func (readSeekCloser) Close() error { return nil }

// prepare fetches and decodes src into a paused pipeline. No speaker or
// coordinator state is touched here; install does that on the frame loop.
func (c *Coordinator) prepare(src string) (*beep.Ctrl, *effects.Volume, error) {
	var data []byte
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := httpClient.Get(src)
		if err != nil {
			return nil, nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, nil, fmt.Errorf("fetch track: %s", resp.Status)
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, 32<<20))
		if err != nil {
			return nil, nil, err
		}
	} else {
		var err error
		data, err = os.ReadFile(src)
		if err != nil {
			return nil, nil, err
		}
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	rc := readSeekCloser{bytes.NewReader(data)}
	if strings.HasSuffix(strings.ToLower(src), ".mp3") {
		streamer, format, err = mp3.Decode(rc)
	} else {
		streamer, format, err = wav.Decode(rc)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("decode track: %w", err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != mixRate {
		s = beep.Resample(4, format.SampleRate, mixRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	return ctrl, &effects.Volume{Streamer: ctrl, Base: 2, Volume: 0}, nil
}

// install swaps the prepared pipeline in. Runs on the frame loop; a result
// from a superseded load is dropped.
func (c *Coordinator) install(gen uint64, ctrl *beep.Ctrl, vol *effects.Volume) {
	if gen != c.gen.Load() {
		return
	}
	// Autoplay only after the first user interaction; a blocked autoplay is
	// a normal outcome, the toggle just stays paused.
	ctrl.Paused = !Unlocked()
	vol.Silent = c.muted
	speaker.Clear()
	speaker.Play(vol)
	c.ctrl = ctrl
	c.volume = vol
}

// hide removes the player after the whole chain failed.
func (c *Coordinator) hide(gen uint64) {
	if gen != c.gen.Load() {
		return
	}
	c.hidden = true
	c.ctrl = nil
	c.volume = nil
	speaker.Clear()
}

// Hidden reports whether the player removed itself after repeated failure.
func (c *Coordinator) Hidden() bool { return c.hidden || c.disabled.Load() }

// Playing reports whether playback is currently running.
func (c *Coordinator) Playing() bool {
	if c.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !c.ctrl.Paused
}

// Muted reports the mute toggle, independent of play/pause.
func (c *Coordinator) Muted() bool { return c.muted }

// TogglePlay flips play/pause. Play attempts before the interaction unlock
// revert to paused without surfacing an error.
func (c *Coordinator) TogglePlay() {
	if c.Hidden() || c.ctrl == nil {
		return
	}
	speaker.Lock()
	want := !c.ctrl.Paused
	if !want && !Unlocked() {
		want = true
	}
	c.ctrl.Paused = want
	speaker.Unlock()
}

// ToggleMute flips the mute toggle without touching play state.
func (c *Coordinator) ToggleMute() {
	c.muted = !c.muted
	if c.volume == nil {
		return
	}
	speaker.Lock()
	c.volume.Silent = c.muted
	speaker.Unlock()
}

// Stop releases the playback handle. The coordinator may be reused by the
// next mounted view via SetSource.
func (c *Coordinator) Stop() {
	if c.disabled.Load() {
		return
	}
	c.gen.Add(1) // drop any in-flight load
	speaker.Clear()
	c.ctrl = nil
	c.volume = nil
}
