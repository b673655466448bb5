package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/portal"
	"github.com/CCZU-OSSA/cczukit/internal/report"
)

// NewExamsCmd creates the exams command.
func NewExamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "Show exam arrangements",
		Long: `Exams prints the exam time, room and seat of each course in a term.

Examples:
  cczukit exams
  cczukit exams --term 24-25-2 --json`,
		Args: cobra.NoArgs,
		RunE: runExamsCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().StringP("term", "t", "", "Term such as 25-26-1 (default: current term)")
	cmd.Flags().String("type", portal.DefaultExamType, "Exam category")

	return cmd
}

func runExamsCmd(cmd *cobra.Command, _ []string) error {
	ctx, cancel, a, err := prepare(cmd, false)
	if err != nil {
		return err
	}
	defer cancel()
	defer a.Close()

	term := stringFlag(cmd, "term")
	if term == "" {
		if term, err = a.portal.CurrentTerm(ctx); err != nil {
			return err
		}
	}

	exams, err := a.portal.ExamArrangements(ctx, term, stringFlag(cmd, "type"))
	if err != nil {
		return fmt.Errorf("failed to load exams: %w", err)
	}

	return writeReport(cmd, a.cfg, func(w report.Writer) (int, error) {
		return w.WriteExams(&report.Exams{Term: term, Exams: exams})
	})
}
