package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gobuilding/internal/config"
	"github.com/philipparndt/gobuilding/internal/kv"
	"github.com/philipparndt/gobuilding/internal/links"
	"github.com/philipparndt/gobuilding/internal/logging"
	"github.com/philipparndt/gobuilding/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "gobuilding-links",
	Short: "Inspect and edit the persisted link store",
	Long: `gobuilding-links reads the same link store as the viewer and can list,
remove, clear or export links without opening a window.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: bindFlags,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configDir, "config", "c", ".", "Directory containing "+config.FileName)
	flags.String("store", "", "Link store location")
	flags.String("store-type", "", "Link store backend (file, sqlite, memory)")
}

func bindFlags(cmd *cobra.Command, args []string) error {
	for key, flag := range map[string]string{"store.path": "store", "store.type": "store-type"} {
		if err := bindFlag(cmd, key, flag); err != nil {
			return err
		}
	}
	return nil
}

func bindFlag(cmd *cobra.Command, key, flag string) error {
	return viper.BindPFlag(key, cmd.Flags().Lookup(flag))
}

// openStore loads the configured link store. The returned close function
// releases the backend.
func openStore() (*links.Store, func(), error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, err
	}

	backend, err := kv.Open(kv.Config{Type: cfg.Store.Type, Path: cfg.Store.Path})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open link store: %w", err)
	}

	log := logging.New(cfg.LogLevel, os.Stderr)
	store := links.NewStore(backend, logging.Component(log, "links"))
	if err := store.Load(); err != nil {
		backend.Close()
		return nil, nil, err
	}
	return store, func() { backend.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
