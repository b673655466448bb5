package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/database"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached entries",
		Args:  cobra.NoArgs,
		RunE:  runCacheListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE:  runCacheClearCmd,
	})
	return cmd
}

// openCache opens the store regardless of --no-cache.
func openCache(cmd *cobra.Command) (*database.Store, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.NoCache = false
	return openStore(cfg)
}

func runCacheListCmd(cmd *cobra.Command, _ []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Entries(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-48s %8d bytes  %s\n", e.Key, e.Size, e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "%d entries in %s\n", len(entries), store.Path())
	return nil
}

func runCacheClearCmd(cmd *cobra.Command, _ []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries.\n", n)
	return nil
}
