package model

// Message is the envelope every portal API endpoint answers with.
// Token is only present on the login response.
type Message[T any] struct {
	Status  int    `json:"status"`
	Message []T    `json:"message"`
	Token   string `json:"token,omitempty"`
}

// First returns the first payload element, if any.
func (m Message[T]) First() (T, bool) {
	var zero T
	if len(m.Message) == 0 {
		return zero, false
	}
	return m.Message[0], true
}

// LoginUserData is the user row returned by the application login.
type LoginUserData struct {
	ID       FlexString `json:"id"`
	UserID   FlexString `json:"userid"`
	Username string     `json:"username,omitempty"`
}

// StudentBasicInfo is the student record from xs_xh_jbxx.
type StudentBasicInfo struct {
	Name          string     `json:"xm"`
	StudentNumber FlexString `json:"xh"`
	Gender        string     `json:"xb,omitempty"`
	College       string     `json:"xbmc,omitempty"`
	Major         string     `json:"zymc"`
	MajorCode     FlexString `json:"zydm"`
	ClassName     string     `json:"bj,omitempty"`
	Grade         FlexInt    `json:"nj"`
	StudyLength   FlexString `json:"xz"`
	Campus        string     `json:"xq,omitempty"`
}

// CourseGrade is one row of cj_xh.
type CourseGrade struct {
	Term        FlexString `json:"xq"`
	CourseCode  string     `json:"kcdm"`
	CourseName  string     `json:"kcmc"`
	Credits     FlexFloat  `json:"xf"`
	Score       FlexString `json:"kscj"`
	GradePoint  FlexFloat  `json:"jd"`
	CourseType  string     `json:"lbmc,omitempty"`
	ExamType    string     `json:"ksxz,omitempty"`
	TeacherName string     `json:"jsmc,omitempty"`
}

// StudentPoint is the credit and ranking summary from cj_xh_xfjd.
type StudentPoint struct {
	StudentNumber FlexString `json:"xh"`
	Name          string     `json:"xm"`
	ClassName     string     `json:"bj,omitempty"`
	Major         string     `json:"zymc,omitempty"`
	GPA           FlexFloat  `json:"pjxfjd"`
	TotalCredits  FlexFloat  `json:"zxf"`
	MajorRank     FlexInt    `json:"zypm"`
	ClassRank     FlexInt    `json:"bjpm"`
}

// Term is one academic term from xqall; the first element is the current one.
type Term struct {
	Term string `json:"xq"`
}

// ExamArrangement is one row of ks_xs_kslb.
type ExamArrangement struct {
	CourseName string     `json:"kcmc"`
	CourseCode string     `json:"kcdm,omitempty"`
	Time       string     `json:"kssj"`
	Location   string     `json:"jsmc"`
	Seat       FlexString `json:"zwh,omitempty"`
	ExamType   string     `json:"ksxz,omitempty"`
	Week       FlexString `json:"zc,omitempty"`
}

// EvaluatableClass is one course awaiting teacher evaluation.
type EvaluatableClass struct {
	ClassID     FlexString `json:"jxbid"`
	CourseCode  string     `json:"kcdm"`
	CourseName  string     `json:"kcmc"`
	TeacherID   FlexString `json:"jsdm,omitempty"`
	TeacherName string     `json:"jsmc"`
	EvaluateID  FlexString `json:"pjid,omitempty"`
}

// SubmittedEvaluation is one evaluation the student already submitted.
type SubmittedEvaluation struct {
	EvaluateID  FlexString `json:"pjid"`
	CourseName  string     `json:"kcmc"`
	TeacherName string     `json:"jsmc"`
	Score       FlexString `json:"zf"`
	Comments    string     `json:"yjjy,omitempty"`
}
