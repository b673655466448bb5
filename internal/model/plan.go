package model

import (
	"math"
	"slices"
)

// creditTolerance absorbs float rounding when comparing credit sums.
const creditTolerance = 1e-6

// Category is the coarse classification used to bucket plan credits.
type Category string

const (
	// CategoryRequired covers the A1, B1 and C1 classification codes.
	CategoryRequired Category = "required"

	// CategoryElective covers every code that is neither required nor practice.
	CategoryElective Category = "elective"

	// CategoryPractice covers codes starting with S (internships, projects, labs).
	CategoryPractice Category = "practice"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryRequired, CategoryElective, CategoryPractice}
}

// RawTrainingPlanItem is one curriculum row as the portal returns it.
type RawTrainingPlanItem struct {
	Semester           int      `json:"xq"`
	CourseCode         string   `json:"kcdm"`
	CourseName         string   `json:"kcmc"`
	ClassificationCode string   `json:"lbdh"`
	ClassificationName string   `json:"lbmc"`
	Credits            float64  `json:"xf"`
	Year               *int     `json:"nj,omitempty"`
	MajorCode          string   `json:"zydm,omitempty"`
	StudyLength        string   `json:"xz,omitempty"`
	StudentID          string   `json:"xh,omitempty"`
	Score              *float64 `json:"kscj,omitempty"`
	Category           string   `json:"lb,omitempty"`
	MajorName          string   `json:"zymc,omitempty"`
}

// PlanCourse is a single course inside a TrainingPlan.
type PlanCourse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Credits  float64  `json:"credits"`
	Category Category `json:"category"`
	Teacher  string   `json:"teacher,omitempty"`
}

// TrainingPlan is the normalized curriculum of one student.
type TrainingPlan struct {
	MajorName         string               `json:"majorName"`
	Degree            string               `json:"degree"`
	DurationYears     int                  `json:"durationYears"`
	TotalCredits      float64              `json:"totalCredits"`
	RequiredCredits   float64              `json:"requiredCredits"`
	ElectiveCredits   float64              `json:"electiveCredits"`
	PracticeCredits   float64              `json:"practiceCredits"`
	Objectives        *string              `json:"objectives,omitempty"`
	CoursesBySemester map[int][]PlanCourse `json:"coursesBySemester"`
}

// NewTrainingPlan returns an empty plan ready for AddCourse.
func NewTrainingPlan(majorName string, durationYears int) *TrainingPlan {
	return &TrainingPlan{
		MajorName:         majorName,
		DurationYears:     durationYears,
		CoursesBySemester: make(map[int][]PlanCourse),
	}
}

// AddCourse appends a course to its semester bucket and updates the credit sums.
func (p *TrainingPlan) AddCourse(semester int, course PlanCourse) {
	if p.CoursesBySemester == nil {
		p.CoursesBySemester = make(map[int][]PlanCourse)
	}
	p.TotalCredits += course.Credits
	switch course.Category {
	case CategoryRequired:
		p.RequiredCredits += course.Credits
	case CategoryPractice:
		p.PracticeCredits += course.Credits
	default:
		p.ElectiveCredits += course.Credits
	}
	p.CoursesBySemester[semester] = append(p.CoursesBySemester[semester], course)
}

// Semesters returns the semester numbers in ascending order.
func (p *TrainingPlan) Semesters() []int {
	keys := make([]int, 0, len(p.CoursesBySemester))
	for k := range p.CoursesBySemester {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// CourseCount returns the number of courses across all semesters.
func (p *TrainingPlan) CourseCount() int {
	n := 0
	for _, courses := range p.CoursesBySemester {
		n += len(courses)
	}
	return n
}

// CountByCategory returns how many courses fall into each category.
func (p *TrainingPlan) CountByCategory() map[Category]int {
	counts := make(map[Category]int, 3)
	for _, courses := range p.CoursesBySemester {
		for _, c := range courses {
			counts[c.Category]++
		}
	}
	return counts
}

// CreditsBalanced reports whether the three buckets add up to the total.
func (p *TrainingPlan) CreditsBalanced() bool {
	sum := p.RequiredCredits + p.ElectiveCredits + p.PracticeCredits
	return math.Abs(sum-p.TotalCredits) <= creditTolerance
}
