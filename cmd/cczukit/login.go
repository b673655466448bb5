package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/database"
	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/sso"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and report how the portal was reached",
		Long: `Login authenticates against the SSO portal and the application API and
prints the resulting session. The training plan is loaded into the cache
in the background, so a following "cczukit plan" is served locally.

With --last, no login is performed; the connection type recorded by the
previous login is printed instead.

Examples:
  cczukit login
  CCZU_USERNAME=2100001234 CCZU_PASSWORD=secret cczukit login
  cczukit login --last`,
		Args: cobra.NoArgs,
		RunE: runLoginCmd,
	}

	cmd.Flags().Bool("last", false, "Print the connection type recorded by the last login")

	return cmd
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	if boolFlag(cmd, "last") {
		return runLastTopology(cmd)
	}

	_, cancel, a, err := prepare(cmd, true)
	if err != nil {
		return err
	}
	defer cancel()
	defer a.Close()

	session, ok := a.portal.Session().(*model.Authenticated)
	if !ok {
		return model.ErrSessionMissing
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged in as %s\n", session.StudentNumber())
	fmt.Fprintf(out, "  connection: %s\n", describeTopology(session.Topology()))
	if a.store != nil {
		fmt.Fprintf(out, "  cache:      %s\n", a.store.Path())
	}

	a.logger.Debug("login complete", "session", session)
	return nil
}

// runLastTopology prints the topology stored by the previous login.
func runLastTopology(cmd *cobra.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.NoCache = false

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	value, err := store.Property(cmd.Context(), sso.TopologyPropertyKey)
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No login recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}

	topology, err := model.ParseLoginTopology(value)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Last connection: %s\n", describeTopology(topology))
	return nil
}

func describeTopology(t model.LoginTopology) string {
	switch t {
	case model.TopologyDirect:
		return "direct (campus network)"
	case model.TopologyWebVPN:
		return "WebVPN gateway"
	default:
		return t.String()
	}
}
