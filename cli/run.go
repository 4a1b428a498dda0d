package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/audio"
	"github.com/lixenwraith/keepsake/client"
	"github.com/lixenwraith/keepsake/device"
	"github.com/lixenwraith/keepsake/engage"
	"github.com/lixenwraith/keepsake/scribe"
	"github.com/lixenwraith/keepsake/store"
	"github.com/lixenwraith/keepsake/view"
)

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store {
	case "pebble", "":
		return store.OpenPebble(cfg.DataDir + "/store")
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend needs database_url")
		}
		return store.OpenPostgres(ctx, cfg.DatabaseURL)
	case "remote":
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("remote backend needs remote_url")
		}
		return client.New(cfg.RemoteURL), nil
	case "memory":
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
}

func buildScribe() *scribe.Scribe {
	if cfg.ScribeURL == "" {
		return scribe.New(nil)
	}
	return scribe.New(scribe.NewOllamaProvider(cfg.ScribeURL, cfg.ScribeModel))
}

// runTUI wires the full interactive stack and blocks until the user quits.
func runTUI(makeView func(*view.Deps) (app.View, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStore(ctx)
	cancel()
	if err != nil {
		return err
	}
	defer st.Close()

	dev, err := device.Open(cfg.DataDir)
	if err != nil {
		return err
	}

	deps := &view.Deps{
		Store:   st,
		Tracker: engage.NewTracker(engage.AsyncCounter{Inner: st}, dev),
		Scribe:  buildScribe(),
		Cfg:     cfg,
	}

	initial, err := makeView(deps)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	coord := audio.NewCoordinator(cfg.TrackDir, cfg.AudioPool)
	defer coord.Stop()

	a := app.New(screen, coord)
	a.Run(initial)
	return nil
}
