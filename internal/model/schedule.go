package model

// RawCourseCell is one cell of the class schedule grid.
// Course may hold several "/"-separated entries; Teacher is the lookup
// string the portal returns alongside it.
type RawCourseCell struct {
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
}

// IsEmpty reports whether the cell carries no course text.
func (c RawCourseCell) IsEmpty() bool {
	return c.Course == ""
}

// ParsedCourse is one course occurrence expanded from the schedule grid.
type ParsedCourse struct {
	Name      string `json:"name"`
	Teacher   string `json:"teacher"`
	Location  string `json:"location"`
	Weeks     []int  `json:"weeks"`
	DayOfWeek int    `json:"dayOfWeek"`
	TimeSlot  int    `json:"timeSlot"`
}

// InWeek reports whether the course takes place in the given teaching week.
func (c ParsedCourse) InWeek(week int) bool {
	for _, w := range c.Weeks {
		if w == week {
			return true
		}
		if w > week {
			return false
		}
	}
	return false
}

// ScheduleRow is one time-slot row of the kb_xq_xh response. Course names
// and teachers for the seven days are packed into ";"-separated strings.
type ScheduleRow struct {
	Courses  string `json:"kcmc"`
	Teachers string `json:"jsxx"`
	Slot     string `json:"jc"`
}
