package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [object]",
	Short: "List links, optionally only those of one object",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	objects := store.Objects()
	if len(args) == 1 {
		objects = []string{args[0]}
	}

	out := cmd.OutOrStdout()
	if store.Count() == 0 {
		fmt.Fprintln(out, "No links stored")
		return nil
	}

	for _, object := range objects {
		list := store.LinksFor(object)
		fmt.Fprintf(out, "%s (%d)\n", object, len(list))
		for i, link := range list {
			fmt.Fprintf(out, "  [%d] %s -> %s\n", i, link.Position, link.Target)
		}
	}
	return nil
}
