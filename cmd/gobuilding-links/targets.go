package main

import (
	"fmt"

	"github.com/philipparndt/gobuilding/internal/config"
	"github.com/philipparndt/gobuilding/internal/loader"
	"github.com/philipparndt/gobuilding/pkg/analysis"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the models links can point to",
	Long:  "List the configured link targets, or every loadable model in the asset directory when none are configured. Triangle models are measured.",
	Args:  cobra.NoArgs,
	RunE:  runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.Flags().String("assets", "", "Directory with building and target models")
}

func runTargets(cmd *cobra.Command, args []string) error {
	if err := bindFlag(cmd, "assets.dir", "assets"); err != nil {
		return err
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	targets := cfg.Assets.Targets
	if len(targets) == 0 {
		if targets, err = loader.ScanTargets(cfg.Assets.Dir, cfg.Assets.Building); err != nil {
			return err
		}
	}

	l := loader.New(cfg.Assets.Dir, cfg.Assets.Building, zerolog.Nop())
	defer l.Close()

	out := cmd.OutOrStdout()
	for _, target := range targets {
		path, err := l.Resolve(target)
		if err != nil {
			fmt.Fprintf(out, "%-24s %v\n", target, err)
			continue
		}
		asset, err := loader.Decode(cmd.Context(), target, path)
		if err != nil {
			fmt.Fprintf(out, "%-24s error: %v\n", target, err)
			continue
		}
		if asset.Model == nil {
			fmt.Fprintf(out, "%-24s %s\n", target, asset.Format)
			continue
		}
		s := analysis.Summarize(asset.Model)
		fmt.Fprintf(out, "%-24s %s  %d triangles  %s\n", target, asset.Format, s.TriangleCount, analysis.FormatDimensions(s.Dimensions))
	}
	return nil
}
