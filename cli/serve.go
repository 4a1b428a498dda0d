package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the card API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := server.New(st, server.Config{
			Addr:      cfg.ServerAddr,
			RateRPS:   cfg.RateRPS,
			RateBurst: cfg.RateBurst,
		})
		logger.Log.Info("serving", "addr", cfg.ServerAddr, "store", cfg.Store)
		return srv.Run(ctx)
	},
}
