package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/schedule"
)

// DefaultExamType is the exam category queried when none is given.
const DefaultExamType = "学分制考试"

// Grades returns every course grade of the logged-in student.
func (c *Client) Grades(ctx context.Context) ([]model.CourseGrade, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	return fetch[model.CourseGrade](ctx, c, "/api/cj_xh", st.headers,
		map[string]string{"xh": st.session.SubjectID()})
}

// CreditsAndRank returns the GPA, credit and ranking summary.
func (c *Client) CreditsAndRank(ctx context.Context) ([]model.StudentPoint, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	return fetch[model.StudentPoint](ctx, c, "/api/cj_xh_xfjd", st.headers,
		map[string]string{"xh": st.session.SubjectID()})
}

// Terms lists academic terms, current first. It needs no login.
func (c *Client) Terms(ctx context.Context) ([]model.Term, error) {
	const path = "/api/xqall"
	resp, err := c.doer.Get(ctx, c.baseURL+path, c.currentHeaders())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	return decodeMessage[model.Term](path, resp.Body)
}

// CurrentTerm returns the first term reported by Terms.
func (c *Client) CurrentTerm(ctx context.Context) (string, error) {
	terms, err := c.Terms(ctx)
	if err != nil {
		return "", err
	}
	if len(terms) == 0 || terms[0].Term == "" {
		return "", fmt.Errorf("%w: no term found", model.ErrMalformedResponse)
	}
	return terms[0].Term, nil
}

// resolveTerm returns term, or the current term when term is empty.
func (c *Client) resolveTerm(ctx context.Context, term string) (string, error) {
	if term != "" {
		return term, nil
	}
	return c.CurrentTerm(ctx)
}

// StudentBasicInfo returns the student record. It reports
// model.ErrMalformedResponse when the list is empty.
func (c *Client) StudentBasicInfo(ctx context.Context) (*model.StudentBasicInfo, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	rows, err := fetch[model.StudentBasicInfo](ctx, c, "/api/xs_xh_jbxx", st.headers, map[string]string{
		"xh":   st.session.StudentNumber(),
		"yhid": st.session.SubjectID(),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty student info", model.ErrMalformedResponse)
	}
	return &rows[0], nil
}

// ClassSchedule returns the raw timetable grid for term: one row per
// time slot, one cell per day.
func (c *Client) ClassSchedule(ctx context.Context, term string) ([][]model.RawCourseCell, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	rows, err := fetch[model.ScheduleRow](ctx, c, "/api/kb_xq_xh", st.headers, map[string]string{
		"xh":   st.cred.Username(),
		"xq":   term,
		"yhid": st.session.SubjectID(),
	})
	if err != nil {
		return nil, err
	}
	return schedule.GridFromRows(rows), nil
}

// CurrentClassSchedule is ClassSchedule for the current term.
func (c *Client) CurrentClassSchedule(ctx context.Context) ([][]model.RawCourseCell, error) {
	term, err := c.CurrentTerm(ctx)
	if err != nil {
		return nil, err
	}
	return c.ClassSchedule(ctx, term)
}

// ClassScheduleParsed returns the timetable of term as course occurrences.
func (c *Client) ClassScheduleParsed(ctx context.Context, term string) ([]model.ParsedCourse, error) {
	grid, err := c.ClassSchedule(ctx, term)
	if err != nil {
		return nil, err
	}
	return schedule.ParseMatrix(grid), nil
}

// CurrentClassScheduleParsed is ClassScheduleParsed for the current term.
func (c *Client) CurrentClassScheduleParsed(ctx context.Context) ([]model.ParsedCourse, error) {
	grid, err := c.CurrentClassSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.ParseMatrix(grid), nil
}

// ExamArrangements lists exams of examType in term. An empty term means
// the current term and an empty examType means DefaultExamType.
func (c *Client) ExamArrangements(ctx context.Context, term, examType string) ([]model.ExamArrangement, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	if term, err = c.resolveTerm(ctx, term); err != nil {
		return nil, err
	}
	if examType == "" {
		examType = DefaultExamType
	}
	return fetch[model.ExamArrangement](ctx, c, "/api/ks_xs_kslb", st.headers, map[string]string{
		"xq":   term,
		"yhdm": st.cred.Username(),
		"dm":   examType,
		"yhid": st.session.SubjectID(),
	})
}

// EvaluatableClasses lists courses whose teachers can be evaluated in
// term. An empty term means the current term.
func (c *Client) EvaluatableClasses(ctx context.Context, term string) ([]model.EvaluatableClass, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	if term, err = c.resolveTerm(ctx, term); err != nil {
		return nil, err
	}
	return fetch[model.EvaluatableClass](ctx, c, "/api/pj_xspj_kcxx", st.headers, map[string]string{
		"pjxq": term,
		"xh":   st.cred.Username(),
		"yhid": st.session.SubjectID(),
	})
}

// SubmittedEvaluations lists evaluations already submitted in term. An
// empty term means the current term.
func (c *Client) SubmittedEvaluations(ctx context.Context, term string) ([]model.SubmittedEvaluation, error) {
	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}
	if term, err = c.resolveTerm(ctx, term); err != nil {
		return nil, err
	}
	return fetch[model.SubmittedEvaluation](ctx, c, "/api/pj_xh_pjxx", st.headers, map[string]string{
		"pjxq": term,
		"xh":   st.cred.Username(),
	})
}

// Evaluation is a teacher evaluation to submit.
type Evaluation struct {
	Term         string
	EvaluationID string
	// Scores is the score string in the format the portal expects.
	Scores   string
	Comments string
}

// SubmitEvaluation submits e and reports whether the portal accepted it
// with HTTP 200.
func (c *Client) SubmitEvaluation(ctx context.Context, e Evaluation) (bool, error) {
	st, err := c.authenticated()
	if err != nil {
		return false, err
	}
	const path = "/api/pj_xh_tj_pjxx"
	resp, err := c.doer.PostJSON(ctx, c.baseURL+path, st.headers, map[string]string{
		"pjxq": e.Term,
		"pjid": e.EvaluationID,
		"xh":   st.cred.Username(),
		"zf":   e.Scores,
		"yjjy": e.Comments,
		"yhid": st.session.SubjectID(),
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return resp.StatusCode == http.StatusOK, nil
}
