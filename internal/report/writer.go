package report

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// Writer defines the interface for report output.
// Each method returns the number of bytes written.
type Writer interface {
	// WritePlan outputs a training plan.
	WritePlan(plan *model.TrainingPlan) (int, error)

	// WriteSchedule outputs the parsed class schedule of one term.
	WriteSchedule(schedule *Schedule) (int, error)

	// WriteGrades outputs course grades with the ranking summary.
	WriteGrades(grades *Grades) (int, error)

	// WriteExams outputs the exam arrangements of one term.
	WriteExams(exams *Exams) (int, error)
}

// Schedule is the class schedule of one term.
type Schedule struct {
	Term    string               `json:"term"`
	Courses []model.ParsedCourse `json:"courses"`
}

// Grades combines course grades with the credit and ranking summary.
type Grades struct {
	Grades []model.CourseGrade  `json:"grades"`
	Points []model.StudentPoint `json:"points,omitempty"`
}

// Exams is the exam arrangement list of one term.
type Exams struct {
	Term  string                  `json:"term"`
	Exams []model.ExamArrangement `json:"exams"`
}

// MultiWriter writes to multiple Writers in order and stops on the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WritePlan writes the plan to every Writer.
func (m *MultiWriter) WritePlan(plan *model.TrainingPlan) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WritePlan(plan) })
}

// WriteSchedule writes the schedule to every Writer.
func (m *MultiWriter) WriteSchedule(schedule *Schedule) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteSchedule(schedule) })
}

// WriteGrades writes the grades to every Writer.
func (m *MultiWriter) WriteGrades(grades *Grades) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteGrades(grades) })
}

// WriteExams writes the exams to every Writer.
func (m *MultiWriter) WriteExams(exams *Exams) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteExams(exams) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

var titleCaser = cases.Title(language.Und)

// categoryLabel turns a category into a display label, e.g. "Required".
func categoryLabel(c model.Category) string {
	return titleCaser.String(string(c))
}

var dayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayName returns the short weekday name for a 1-based day of week.
func dayName(day int) string {
	if day < 1 || day > len(dayNames) {
		return strconv.Itoa(day)
	}
	return dayNames[day-1]
}

// formatWeeks compresses sorted weeks into runs, e.g. [1 2 3 5] -> "1-3,5".
func formatWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return "-"
	}
	var parts []string
	start, prev := weeks[0], weeks[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
			return
		}
		parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
	}
	for _, w := range weeks[1:] {
		if w == prev+1 {
			prev = w
			continue
		}
		flush()
		start, prev = w, w
	}
	flush()
	return strings.Join(parts, ",")
}

// formatCredits prints credits without a trailing ".0".
func formatCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// orDash returns "-" for an empty string.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString shortens s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
