// Package cli defines the keepsake command tree: compose, view, feed, and
// the API server. Backend selection and all shared wiring live here so the
// views stay free of construction concerns.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/keepsake/config"
	"github.com/lixenwraith/keepsake/logger"
)

var (
	cfgPath  string
	dataDir  string
	storeArg string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "keepsake",
	Short:         "Compose, share and unwrap little animated keepsakes in your terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if storeArg != "" {
			cfg.Store = storeArg
		}
		logger.Init(cfg.DataDir)
		return nil
	},
	// bare `keepsake` drops into the composer
	RunE: func(cmd *cobra.Command, args []string) error {
		return createCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory override")
	rootCmd.PersistentFlags().StringVar(&storeArg, "store", "", "backend: pebble, postgres, remote, memory")

	rootCmd.AddCommand(createCmd, viewCmd, feedCmd, serveCmd)
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "keepsake:", err)
		os.Exit(1)
	}
}
