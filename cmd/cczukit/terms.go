package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTermsCmd creates the terms command. It needs no account.
func NewTermsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terms",
		Short: "List academic terms, current first",
		Args:  cobra.NoArgs,
		RunE:  runTermsCmd,
	}
}

func runTermsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	a, err := newApp(cfg, logger, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(logger)
	defer cancel()

	terms, err := a.portal.Terms(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, t := range terms {
		if i == 0 {
			fmt.Fprintf(out, "%s (current)\n", t.Term)
			continue
		}
		fmt.Fprintln(out, t.Term)
	}
	return nil
}
