package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/CCZU-OSSA/cczukit/internal/report"
)

// NewGradesCmd creates the grades command.
func NewGradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Show course grades, GPA and ranking",
		Args:  cobra.NoArgs,
		RunE:  runGradesCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func runGradesCmd(cmd *cobra.Command, _ []string) error {
	ctx, cancel, a, err := prepare(cmd, false)
	if err != nil {
		return err
	}
	defer cancel()
	defer a.Close()

	var result report.Grades
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grades, err := a.portal.Grades(gctx)
		if err != nil {
			return fmt.Errorf("failed to load grades: %w", err)
		}
		result.Grades = grades
		return nil
	})
	g.Go(func() error {
		points, err := a.portal.CreditsAndRank(gctx)
		if err != nil {
			return fmt.Errorf("failed to load ranking: %w", err)
		}
		result.Points = points
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return writeReport(cmd, a.cfg, func(w report.Writer) (int, error) {
		return w.WriteGrades(&result)
	})
}
