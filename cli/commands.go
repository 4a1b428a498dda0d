package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/keepsake/app"
	"github.com/lixenwraith/keepsake/share"
	"github.com/lixenwraith/keepsake/store"
	"github.com/lixenwraith/keepsake/view"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Compose a new keepsake",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(func(deps *view.Deps) (app.View, error) {
			return view.NewCreateView(deps), nil
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <link-or-id>",
	Short: "Open a keepsake from a share link or identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := args[0]
		return runTUI(func(deps *view.Deps) (app.View, error) {
			id, inline, err := share.ParseRef(ref)
			if err != nil {
				return view.NewNoticeView(deps, "that link looks broken",
					"the keepsake reference couldn't be read"), nil
			}
			if inline != nil {
				return view.NewRevealView(deps, *inline, false), nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			msg, err := deps.Store.Get(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return view.NewNoticeView(deps, "keepsake not found",
					"it may have been a draft, or the link was copied wrong"), nil
			}
			if err != nil {
				return view.NewNoticeView(deps, "couldn't reach the keepsake",
					fmt.Sprintf("the backend didn't answer: %v", err)), nil
			}
			return view.NewRevealView(deps, msg, false), nil
		})
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse public keepsakes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(func(deps *view.Deps) (app.View, error) {
			return view.NewFeedView(deps), nil
		})
	},
}
