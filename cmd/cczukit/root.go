package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cczukit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cczukit",
		Short: "Command line client for the CCZU academic portal",
		Long: `cczukit logs in to the CCZU single sign-on portal, directly or through
the WebVPN gateway, and queries the academic application API.

The account is read from the configuration file (.cczukit), from the
CCZU_USERNAME and CCZU_PASSWORD environment variables, or from the
--username and --password flags, in increasing order of precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .cczukit in current or home directory)")
	cmd.PersistentFlags().StringP("username", "u", "", "Student number (overrides config and environment)")
	cmd.PersistentFlags().StringP("password", "p", "", "Portal password (overrides config and environment)")
	cmd.PersistentFlags().Bool("no-cache", false, "Do not read or write the disk cache")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewTermsCmd())
	cmd.AddCommand(NewPlanCmd())
	cmd.AddCommand(NewScheduleCmd())
	cmd.AddCommand(NewGradesCmd())
	cmd.AddCommand(NewExamsCmd())
	cmd.AddCommand(NewCacheCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
