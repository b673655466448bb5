package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/report"
)

// NewScheduleCmd creates the schedule command.
func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the class schedule",
		Long: `Schedule prints the class timetable of a term, one entry per course
occurrence with its teacher, location and teaching weeks.

Examples:
  # Current term
  cczukit schedule

  # A given term, only classes held in week 3
  cczukit schedule --term 24-25-2 --week 3`,
		Args: cobra.NoArgs,
		RunE: runScheduleCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().StringP("term", "t", "", "Term such as 25-26-1 (default: current term)")
	cmd.Flags().IntP("week", "w", 0, "Only show classes held in this teaching week")

	return cmd
}

func runScheduleCmd(cmd *cobra.Command, _ []string) error {
	week, err := cmd.Flags().GetInt("week")
	if err != nil {
		return err
	}
	if week < 0 {
		return fmt.Errorf("invalid week %d", week)
	}

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

	courses, err := a.portal.ClassScheduleParsed(ctx, term)
	if err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}
	if week > 0 {
		courses = filterWeek(courses, week)
	}

	return writeReport(cmd, a.cfg, func(w report.Writer) (int, error) {
		return w.WriteSchedule(&report.Schedule{Term: term, Courses: courses})
	})
}

// filterWeek keeps the courses held in week.
func filterWeek(courses []model.ParsedCourse, week int) []model.ParsedCourse {
	out := make([]model.ParsedCourse, 0, len(courses))
	for _, c := range courses {
		if c.InWeek(week) {
			out = append(out, c)
		}
	}
	return out
}
