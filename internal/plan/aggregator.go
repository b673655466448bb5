package plan

import (
	"strconv"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// requiredCodes are the classification codes counted as required credits.
var requiredCodes = map[string]struct{}{
	"A1": {},
	"B1": {},
	"C1": {},
}

// Aggregate decodes raw and builds the normalized plan. basic may be nil;
// when present its non-empty major name and study length win over the
// values carried by the curriculum rows.
func Aggregate(raw []byte, basic *model.StudentBasicInfo) (*model.TrainingPlan, error) {
	items, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Build(items, basic), nil
}

// Build groups items by semester and sums credits per category.
func Build(items []model.RawTrainingPlanItem, basic *model.StudentBasicInfo) *model.TrainingPlan {
	plan := model.NewTrainingPlan(majorName(items, basic), durationYears(items, basic))
	for _, item := range items {
		code := strings.TrimSpace(item.CourseCode)
		plan.AddCourse(item.Semester, model.PlanCourse{
			ID:       code,
			Name:     strings.TrimSpace(item.CourseName),
			Code:     code,
			Credits:  item.Credits,
			Category: Classify(item.ClassificationCode),
		})
	}
	return plan
}

// Classify maps a classification code (lbdh) to its category.
func Classify(code string) model.Category {
	code = strings.TrimSpace(code)
	if _, ok := requiredCodes[code]; ok {
		return model.CategoryRequired
	}
	if strings.HasPrefix(strings.ToUpper(code), "S") {
		return model.CategoryPractice
	}
	return model.CategoryElective
}

func majorName(items []model.RawTrainingPlanItem, basic *model.StudentBasicInfo) string {
	if basic != nil {
		if name := strings.TrimSpace(basic.Major); name != "" {
			return name
		}
	}
	if len(items) > 0 {
		return strings.TrimSpace(items[0].MajorName)
	}
	return ""
}

func durationYears(items []model.RawTrainingPlanItem, basic *model.StudentBasicInfo) int {
	if basic != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(string(basic.StudyLength))); err == nil {
			return n
		}
	}
	if len(items) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(items[0].StudyLength)); err == nil {
			return n
		}
	}
	return 0
}
