package schedule

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

func TestExpandWeeks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		spec     string
		expected []int
	}{
		{"simple range", "1-4", []int{1, 2, 3, 4}},
		{"range with 周", "1-16周", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
		{"list and odd range", "5,7,9-11单", []int{5, 7, 9, 11}},
		{"even weeks", "2-8双周", []int{2, 4, 6, 8}},
		{"odd marker as separate token", "1-7 单", []int{1, 3, 5, 7}},
		{"both parity markers keep everything", "1-4单双", []int{1, 2, 3, 4}},
		{"duplicates are removed and sorted", "9,3,3-5,1", []int{1, 3, 4, 5, 9}},
		{"whitespace between numbers is a separator", "1-3 7", []int{1, 2, 3, 7}},
		{"full-width comma", "1，3", []int{1, 3}},
		{"trailing comma", "4,", []int{4}},
		{"reversed range contributes nothing", "9-3,12", []int{12}},
		{"single week", "8周", []int{8}},
		{"empty string", "", []int{}},
		{"no digits", "周单", []int{}},
		{"odd filter drops even single", "4单", []int{}},
		{"space separated descriptors", "1-8周 10周", []int{1, 2, 3, 4, 5, 6, 7, 8, 10}},
		{"huge range is dropped", "1-30000000周", []int{}},
		{"range ending at max int is dropped", "1-9223372036854775807", []int{}},
		{"number beyond int is dropped", "3,99999999999999999999", []int{3}},
		{"week zero is dropped", "0-2,5", []int{5}},
		{"upper bound is inclusive", "59-60,61", []int{59, 60}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ExpandWeeks(tc.spec)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("ExpandWeeks(%q) mismatch (-want +got):\n%s", tc.spec, diff)
			}
		})
	}
}

func TestExpandWeeksRangeProperty(t *testing.T) {
	t.Parallel()

	for a := 1; a <= 20; a++ {
		for b := a; b <= 20; b++ {
			got := ExpandWeeks(strconv.Itoa(a) + "-" + strconv.Itoa(b))
			if len(got) != b-a+1 {
				t.Fatalf("%d-%d: got %d weeks", a, b, len(got))
			}
			for i, w := range got {
				if w != a+i {
					t.Fatalf("%d-%d: week[%d] = %d", a, b, i, w)
				}
			}
		}
	}
}

func TestParseEntry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		entry    string
		expected model.ParsedCourse
		ok       bool
	}{
		{
			name:     "name weeks location",
			entry:    "高等数学 1-16周 W201",
			expected: model.ParsedCourse{Name: "高等数学", Location: "W201", Weeks: expandRange(1, 16)},
			ok:       true,
		},
		{
			name:     "location with trailing punctuation",
			entry:    "大学英语 2-8双周 外语楼305，",
			expected: model.ParsedCourse{Name: "大学英语", Location: "外语楼305", Weeks: []int{2, 4, 6, 8}},
			ok:       true,
		},
		{
			name:     "bare week list token",
			entry:    "体育 1-4, 操场",
			expected: model.ParsedCourse{Name: "体育", Location: "操场", Weeks: []int{1, 2, 3, 4}},
			ok:       true,
		},
		{
			name:     "multi-part location",
			entry:    "实验 3,5 单 实验楼 B101",
			expected: model.ParsedCourse{Name: "实验", Location: "实验楼 B101", Weeks: []int{3, 5}},
			ok:       true,
		},
		{
			name:     "name only",
			entry:    "班会",
			expected: model.ParsedCourse{Name: "班会", Weeks: []int{}},
			ok:       true,
		},
		{
			name:  "blank entry",
			entry: "   ",
			ok:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseEntry(tc.entry)
			if ok != tc.ok {
				t.Fatalf("ParseEntry(%q) ok = %v, want %v", tc.entry, ok, tc.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("ParseEntry(%q) mismatch (-want +got):\n%s", tc.entry, diff)
			}
		})
	}
}

func expandRange(a, b int) []int {
	out := make([]int, 0, b-a+1)
	for i := a; i <= b; i++ {
		out = append(out, i)
	}
	return out
}

func TestResolveTeacher(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		lookup   string
		expected string
	}{
		{"张三", "张三"},
		{"张三,李四", "张三"},
		{"张三/李四", "张三"},
		{",张三", "张三"},
		{"王五 赵六", "王五"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := ResolveTeacher(tc.lookup); got != tc.expected {
			t.Errorf("ResolveTeacher(%q) = %q, want %q", tc.lookup, got, tc.expected)
		}
	}
}

func TestParseMatrix(t *testing.T) {
	t.Parallel()

	grid := [][]model.RawCourseCell{
		{
			{Course: "高等数学 1-2周 W201", Teacher: "张三,李四"},
			{},
		},
		{
			{},
			{Course: "大学物理 1-3单周 S101/物理实验 2,4 实验楼", Teacher: "王五"},
		},
	}

	want := []model.ParsedCourse{
		{Name: "高等数学", Teacher: "张三", Location: "W201", Weeks: []int{1, 2}, DayOfWeek: 1, TimeSlot: 1},
		{Name: "大学物理", Teacher: "王五", Location: "S101", Weeks: []int{1, 3}, DayOfWeek: 2, TimeSlot: 2},
		{Name: "物理实验", Teacher: "王五", Location: "实验楼", Weeks: []int{2, 4}, DayOfWeek: 2, TimeSlot: 2},
	}

	got := ParseMatrix(grid)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseMatrix() mismatch (-want +got):\n%s", diff)
	}

	if got := ParseMatrix(nil); len(got) != 0 {
		t.Errorf("ParseMatrix(nil) = %v, want empty", got)
	}
}

func TestCellsFromRow(t *testing.T) {
	t.Parallel()

	t.Run("teachers shorter than courses", func(t *testing.T) {
		t.Parallel()

		row := model.ScheduleRow{Courses: "高数 1-16周 W201;;英语 1-8周 F301", Teachers: "张三"}
		want := []model.RawCourseCell{
			{Course: "高数 1-16周 W201", Teacher: "张三"},
			{},
			{Course: "英语 1-8周 F301"},
		}
		if diff := cmp.Diff(want, CellsFromRow(row)); diff != "" {
			t.Errorf("CellsFromRow() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty row yields no cells", func(t *testing.T) {
		t.Parallel()

		if got := CellsFromRow(model.ScheduleRow{}); len(got) != 0 {
			t.Errorf("CellsFromRow(empty) = %v", got)
		}
	})

	t.Run("grid keeps row order", func(t *testing.T) {
		t.Parallel()

		grid := GridFromRows([]model.ScheduleRow{
			{Courses: "A 1周 R1"},
			{Courses: ";B 2周 R2"},
		})
		courses := ParseMatrix(grid)
		if len(courses) != 2 {
			t.Fatalf("got %d courses, want 2", len(courses))
		}
		if courses[1].TimeSlot != 2 || courses[1].DayOfWeek != 2 {
			t.Errorf("unexpected position: %+v", courses[1])
		}
	})
}
