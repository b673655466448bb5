package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for the terminal.
type SimpleWriter struct {
	baseWriter

	// showEmpty prints sections that have no rows.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePlan outputs the plan summary followed by its courses per semester.
func (w *SimpleWriter) WritePlan(plan *model.TrainingPlan) (int, error) {
	var sb strings.Builder
	writeBanner(&sb, "TRAINING PLAN")

	fmt.Fprintf(&sb, "Major:            %s\n", orDash(plan.MajorName))
	fmt.Fprintf(&sb, "Duration:         %d years\n", plan.DurationYears)
	fmt.Fprintf(&sb, "Courses:          %d\n", plan.CourseCount())
	sb.WriteString("\n")

	writeSection(&sb, "CREDITS")
	fmt.Fprintf(&sb, "  Total:     %s\n", formatCredits(plan.TotalCredits))
	fmt.Fprintf(&sb, "  Required:  %s\n", formatCredits(plan.RequiredCredits))
	fmt.Fprintf(&sb, "  Elective:  %s\n", formatCredits(plan.ElectiveCredits))
	fmt.Fprintf(&sb, "  Practice:  %s\n", formatCredits(plan.PracticeCredits))
	sb.WriteString("\n")

	for _, semester := range plan.Semesters() {
		courses := plan.CoursesBySemester[semester]
		if len(courses) == 0 && !w.showEmpty {
			continue
		}
		writeSection(&sb, fmt.Sprintf("SEMESTER %d", semester))
		for _, c := range courses {
			fmt.Fprintf(&sb, "  %-10s %-30s %5s  %s\n",
				c.Code, truncateString(c.Name, 30), formatCredits(c.Credits), categoryLabel(c.Category))
		}
		sb.WriteString("\n")
	}
	if plan.CourseCount() == 0 {
		sb.WriteString("No courses in plan.\n\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSchedule outputs one line per course occurrence ordered by day and slot.
func (w *SimpleWriter) WriteSchedule(schedule *Schedule) (int, error) {
	var sb strings.Builder
	writeBanner(&sb, "CLASS SCHEDULE")
	fmt.Fprintf(&sb, "Term: %s\n\n", orDash(schedule.Term))

	courses := sortedCourses(schedule.Courses)
	if len(courses) == 0 {
		sb.WriteString("No classes scheduled.\n")
		return w.output.Write([]byte(sb.String()))
	}

	day := 0
	for _, c := range courses {
		if c.DayOfWeek != day {
			if day != 0 {
				sb.WriteString("\n")
			}
			day = c.DayOfWeek
			writeSection(&sb, strings.ToUpper(dayName(day)))
		}
		fmt.Fprintf(&sb, "  [%2d] %-24s %-10s %-12s weeks %s\n",
			c.TimeSlot, truncateString(c.Name, 24), orDash(c.Teacher), orDash(c.Location), formatWeeks(c.Weeks))
	}
	sb.WriteString("\n")
	return w.output.Write([]byte(sb.String()))
}

// WriteGrades outputs the ranking summary and one line per course.
func (w *SimpleWriter) WriteGrades(grades *Grades) (int, error) {
	var sb strings.Builder
	writeBanner(&sb, "GRADES")

	for _, p := range grades.Points {
		writeSection(&sb, "SUMMARY")
		fmt.Fprintf(&sb, "  GPA:          %s\n", formatCredits(float64(p.GPA)))
		fmt.Fprintf(&sb, "  Credits:      %s\n", formatCredits(float64(p.TotalCredits)))
		fmt.Fprintf(&sb, "  Class rank:   %d\n", p.ClassRank)
		fmt.Fprintf(&sb, "  Major rank:   %d\n", p.MajorRank)
		sb.WriteString("\n")
	}

	if len(grades.Grades) == 0 {
		sb.WriteString("No grades recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	writeSection(&sb, "COURSES")
	for _, g := range grades.Grades {
		fmt.Fprintf(&sb, "  %-10s %-30s %5s %6s %5s\n",
			g.Term, truncateString(g.CourseName, 30), formatCredits(float64(g.Credits)),
			orDash(string(g.Score)), formatCredits(float64(g.GradePoint)))
	}
	sb.WriteString("\n")
	return w.output.Write([]byte(sb.String()))
}

// WriteExams outputs one line per exam.
func (w *SimpleWriter) WriteExams(exams *Exams) (int, error) {
	var sb strings.Builder
	writeBanner(&sb, "EXAMS")
	fmt.Fprintf(&sb, "Term: %s\n\n", orDash(exams.Term))

	if len(exams.Exams) == 0 {
		sb.WriteString("No exams scheduled.\n")
		return w.output.Write([]byte(sb.String()))
	}
	for _, e := range exams.Exams {
		fmt.Fprintf(&sb, "  %-24s %-20s %-12s seat %s\n",
			truncateString(e.CourseName, 24), orDash(e.Time), orDash(e.Location), orDash(string(e.Seat)))
	}
	sb.WriteString("\n")
	return w.output.Write([]byte(sb.String()))
}

func writeBanner(sb *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(strings.Repeat(" ", (ruleWidth-len(title))/2) + title + "\n")
	sb.WriteString(rule + "\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", len(title)) + "\n")
}

// sortedCourses returns a copy ordered by day, then slot.
func sortedCourses(courses []model.ParsedCourse) []model.ParsedCourse {
	out := slices.Clone(courses)
	slices.SortStableFunc(out, func(a, b model.ParsedCourse) int {
		if c := cmp.Compare(a.DayOfWeek, b.DayOfWeek); c != 0 {
			return c
		}
		return cmp.Compare(a.TimeSlot, b.TimeSlot)
	})
	return out
}
