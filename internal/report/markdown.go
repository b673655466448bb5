package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// MarkdownWriter outputs reports as Markdown documents.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WritePlan outputs the plan summary, a category chart and one table per
// semester.
func (w *MarkdownWriter) WritePlan(plan *model.TrainingPlan) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Training Plan")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Major", orDash(plan.MajorName)},
			{"Duration", strconv.Itoa(plan.DurationYears) + " years"},
			{"Courses", strconv.Itoa(plan.CourseCount())},
		},
	})
	md.PlainText("")

	w.writeCredits(md, plan)

	for _, semester := range plan.Semesters() {
		courses := plan.CoursesBySemester[semester]
		if len(courses) == 0 {
			continue
		}
		md.H2(fmt.Sprintf("Semester %d", semester))
		md.PlainText("")
		rows := make([][]string, len(courses))
		for i, c := range courses {
			rows[i] = []string{"`" + c.Code + "`", c.Name, formatCredits(c.Credits), categoryLabel(c.Category)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Code", "Name", "Credits", "Category"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeCredits writes the credit table, the category chart and an alert
// when the buckets do not add up.
func (w *MarkdownWriter) writeCredits(md *markdown.Markdown, plan *model.TrainingPlan) {
	md.H2("Credits")
	md.PlainText("")

	rows := [][]string{}
	credits := map[model.Category]float64{
		model.CategoryRequired: plan.RequiredCredits,
		model.CategoryElective: plan.ElectiveCredits,
		model.CategoryPractice: plan.PracticeCredits,
	}
	for _, c := range model.Categories() {
		rows = append(rows, []string{categoryLabel(c), formatCredits(credits[c])})
	}
	rows = append(rows, []string{"**Total**", "**" + formatCredits(plan.TotalCredits) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Credits"},
		Rows:   rows,
	})
	md.PlainText("")

	if plan.CourseCount() > 0 {
		w.writePieChart(md, plan)
	}

	if !plan.CreditsBalanced() {
		md.Warningf("Category credits do not add up to the total of %s.", formatCredits(plan.TotalCredits))
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of course counts per category.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, plan *model.TrainingPlan) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Courses by Category"),
		piechart.WithShowData(true),
	)

	counts := plan.CountByCategory()
	for _, c := range model.Categories() {
		if n := counts[c]; n > 0 {
			chart.LabelAndIntValue(categoryLabel(c), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteSchedule outputs the schedule as a table ordered by day and slot.
func (w *MarkdownWriter) WriteSchedule(schedule *Schedule) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Class Schedule")
	md.PlainText("")
	md.PlainTextf("Term: %s", orDash(schedule.Term))
	md.PlainText("")

	courses := sortedCourses(schedule.Courses)
	if len(courses) == 0 {
		md.Note("No classes scheduled.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(courses))
		for i, c := range courses {
			rows[i] = []string{
				dayName(c.DayOfWeek),
				strconv.Itoa(c.TimeSlot),
				c.Name,
				orDash(c.Teacher),
				orDash(c.Location),
				formatWeeks(c.Weeks),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Day", "Slot", "Course", "Teacher", "Location", "Weeks"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteGrades outputs the ranking summary and the grade table.
func (w *MarkdownWriter) WriteGrades(grades *Grades) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Grades")
	md.PlainText("")

	if len(grades.Points) > 0 {
		md.H2("Summary")
		md.PlainText("")
		rows := make([][]string, len(grades.Points))
		for i, p := range grades.Points {
			rows[i] = []string{
				formatCredits(float64(p.GPA)),
				formatCredits(float64(p.TotalCredits)),
				strconv.Itoa(int(p.ClassRank)),
				strconv.Itoa(int(p.MajorRank)),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"GPA", "Credits", "Class Rank", "Major Rank"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Courses")
	md.PlainText("")
	if len(grades.Grades) == 0 {
		md.PlainText("No grades recorded.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(grades.Grades))
		for i, g := range grades.Grades {
			rows[i] = []string{
				string(g.Term),
				g.CourseName,
				formatCredits(float64(g.Credits)),
				orDash(string(g.Score)),
				formatCredits(float64(g.GradePoint)),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Term", "Course", "Credits", "Score", "Grade Point"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteExams outputs the exam table.
func (w *MarkdownWriter) WriteExams(exams *Exams) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Exams")
	md.PlainText("")
	md.PlainTextf("Term: %s", orDash(exams.Term))
	md.PlainText("")

	if len(exams.Exams) == 0 {
		md.Tip("No exams scheduled.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(exams.Exams))
		for i, e := range exams.Exams {
			rows[i] = []string{e.CourseName, orDash(e.Time), orDash(e.Location), orDash(string(e.Seat))}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Course", "Time", "Location", "Seat"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [cczukit](https://github.com/CCZU-OSSA/cczukit)*")
}
