package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobuilding/internal/app"
	"github.com/philipparndt/gobuilding/internal/config"
	"github.com/philipparndt/gobuilding/internal/logging"
	"github.com/philipparndt/gobuilding/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:     "gobuilding",
	Short:   "3D building viewer with navigable links between models",
	Long:    `GoBuilding shows a building model and lets you place links on its surfaces that lead to floors and rooms.`,
	Args:    cobra.NoArgs,
	Version: version.GetFullVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		log := logging.New(cfg.LogLevel, os.Stderr)
		log.Info().Str("assets", cfg.Assets.Dir).Str("store", cfg.Store.Type).Msg("starting viewer")
		return app.Run(cfg, log)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configDir, "config", "c", ".", "Directory containing "+config.FileName)
	flags.String("assets", "", "Directory with building and target models")
	flags.String("store", "", "Link store location")
	flags.String("store-type", "", "Link store backend (file, sqlite, memory)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("metrics", false, "Export OpenTelemetry metrics to metrics.file or stderr")

	bind("assets.dir", "assets")
	bind("store.path", "store")
	bind("store.type", "store-type")
	bind("logLevel", "log-level")
	bind("metrics.enabled", "metrics")
}

func bind(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
