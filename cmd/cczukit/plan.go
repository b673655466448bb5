package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/report"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the training plan",
		Long: `Plan prints the curriculum of the logged-in student, grouped by semester,
with credits split into required, elective and practice courses.

The plan is cached on disk after the first fetch. Use --refresh to drop
the cached copy and fetch it again.

Examples:
  cczukit plan
  cczukit plan --markdown -o plan.md
  cczukit plan --refresh --raw > plan.json`,
		Args: cobra.NoArgs,
		RunE: runPlanCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().BoolP("refresh", "r", false, "Ignore the cached plan and fetch it again")
	cmd.Flags().Bool("raw", false, "Print the raw portal response instead of a report")

	return cmd
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	ctx, cancel, a, err := prepare(cmd, false)
	if err != nil {
		return err
	}
	defer cancel()
	defer a.Close()

	if boolFlag(cmd, "refresh") {
		a.portal.DeleteTrainingPlanDiskCache(ctx)
		a.portal.ClearTrainingPlanCache()
	}

	plan, err := a.portal.TrainingPlan(ctx)
	if err != nil {
		return fmt.Errorf("failed to load training plan: %w", err)
	}
	a.logger.Debug("training plan loaded",
		"courses", plan.CourseCount(),
		"semesters", len(plan.Semesters()),
	)

	if boolFlag(cmd, "raw") {
		raw := a.portal.LastTrainingPlanRawResponse()
		if raw == "" {
			return errors.New("no raw response: the plan was served from the cache (use --refresh)")
		}
		output, closeOutput, err := openOutput(a.cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		_, err = io.WriteString(output, raw+"\n")
		return errors.Join(err, closeOutput())
	}

	return writeReport(cmd, a.cfg, func(w report.Writer) (int, error) {
		return w.WritePlan(plan)
	})
}
