package schedule

import (
	"regexp"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// weekTokenPattern matches bare week lists such as "1-8,10" or "3,".
var weekTokenPattern = regexp.MustCompile(`^[0-9,\-]+[,，]?$`)

// locationTrim is stripped from both ends of a location fragment.
const locationTrim = ",，;:。"

// ParseMatrix expands the grid into one ParsedCourse per cell entry.
// grid[i][j] is time slot i+1 on day j+1. Empty cells and blank entries
// produce nothing.
func ParseMatrix(grid [][]model.RawCourseCell) []model.ParsedCourse {
	courses := make([]model.ParsedCourse, 0)
	for slot, row := range grid {
		for day, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			teacher := ResolveTeacher(cell.Teacher)
			for _, entry := range strings.Split(cell.Course, "/") {
				course, ok := ParseEntry(entry)
				if !ok {
					continue
				}
				course.Teacher = teacher
				course.DayOfWeek = day + 1
				course.TimeSlot = slot + 1
				courses = append(courses, course)
			}
		}
	}
	return courses
}

// ParseEntry parses one cell entry into name, weeks and location. The
// returned course has no teacher, day or slot. It reports false for a
// blank entry.
func ParseEntry(entry string) (model.ParsedCourse, bool) {
	tokens := strings.Fields(entry)
	if len(tokens) == 0 {
		return model.ParsedCourse{}, false
	}

	var weekTokens, locationParts []string
	for _, token := range tokens[1:] {
		if isWeekToken(token) {
			weekTokens = append(weekTokens, token)
			continue
		}
		if cleaned := strings.Trim(token, locationTrim); cleaned != "" {
			locationParts = append(locationParts, cleaned)
		}
	}

	weeks := []int{}
	if len(weekTokens) > 0 {
		weeks = ExpandWeeks(strings.Join(weekTokens, " "))
	}

	return model.ParsedCourse{
		Name:     tokens[0],
		Location: strings.Join(locationParts, " "),
		Weeks:    weeks,
	}, true
}

func isWeekToken(token string) bool {
	return strings.Contains(token, "周") ||
		token == "单" ||
		token == "双" ||
		weekTokenPattern.MatchString(token)
}

// ResolveTeacher takes the first name out of a teacher lookup string such
// as "张三,李四" or "张三/李四".
func ResolveTeacher(lookup string) string {
	parts := strings.FieldsFunc(lookup, func(r rune) bool {
		return r == ',' || r == '，' || r == '/' || r == ' '
	})
	if len(parts) == 0 {
		return ""
	}
	return strings.Trim(parts[0], ",，/ ")
}

// CellsFromRow splits one schedule row into per-day cells. Courses and
// teachers are ";"-separated; the shorter list is padded with empty strings.
func CellsFromRow(row model.ScheduleRow) []model.RawCourseCell {
	courses := splitNonEmptyInput(row.Courses)
	teachers := splitNonEmptyInput(row.Teachers)

	n := max(len(courses), len(teachers))
	cells := make([]model.RawCourseCell, n)
	for i := range n {
		if i < len(courses) {
			cells[i].Course = courses[i]
		}
		if i < len(teachers) {
			cells[i].Teacher = teachers[i]
		}
	}
	return cells
}

// GridFromRows converts schedule rows into the cell grid ParseMatrix expects.
func GridFromRows(rows []model.ScheduleRow) [][]model.RawCourseCell {
	grid := make([][]model.RawCourseCell, len(rows))
	for i, row := range rows {
		grid[i] = CellsFromRow(row)
	}
	return grid
}

// splitNonEmptyInput splits on ";" and returns nil for an empty string, so
// that "" yields no cells instead of one empty cell.
func splitNonEmptyInput(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}
