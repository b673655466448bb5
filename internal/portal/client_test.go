package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/CCZU-OSSA/cczukit/internal/database"
	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/sso"
	"github.com/CCZU-OSSA/cczukit/internal/transport"
)

const (
	testSubjectID     = "42"
	testStudentNumber = "2100001234"
	testToken         = "app-token"
)

const planBody = `{"status": 200, "message": [
	{"xq": 1, "kcdm": "1001", "kcmc": "高等数学", "lbdh": "A1", "xf": 5, "lbmc": "公共基础", "zymc": "软件工程", "xz": "4"},
	{"xq": 2, "kcdm": "2001", "kcmc": "生产实习", "lbdh": "S1", "xf": 2, "lbmc": "实践"}
]}`

// fakeSSO stands in for the SSO login.
type fakeSSO struct {
	topology model.LoginTopology
	err      error
}

func (f *fakeSSO) Authenticate(context.Context, model.Credential) (*sso.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sso.Result{Topology: f.topology}, nil
}

// apiServer fakes the application API and records what it receives.
type apiServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies map[string][]map[string]string
	auth   map[string]string

	loginResponse string
	loginStatus   int
	planHandler   func(body map[string]string) string
	planStatus    int
	planCalls     atomic.Int64
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	s := &apiServer{
		bodies:        make(map[string][]map[string]string),
		auth:          make(map[string]string),
		loginStatus:   http.StatusOK,
		planStatus:    http.StatusOK,
		loginResponse: `{"status": 200, "token": "` + testToken + `", "message": [{"id": "` + testSubjectID + `", "userid": "` + testStudentNumber + `"}]}`,
		planHandler:   func(map[string]string) string { return planBody },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(s.loginStatus)
		_, _ = w.Write([]byte(s.loginResponse))
	})
	mux.HandleFunc("GET /api/xqall", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [{"xq": "25-26-1"}, {"xq": "24-25-2"}]}`))
	})
	mux.HandleFunc("POST /api/xs_xh_jbxx", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [{"xm": "张三", "xh": "2100001234", "zymc": "计算机科学与技术", "zydm": "0809", "nj": "2021", "xz": 4}]}`))
	})
	mux.HandleFunc("POST /api/cj_xh_jxjh_cj", func(w http.ResponseWriter, r *http.Request) {
		body := s.record(r)
		s.planCalls.Add(1)
		w.WriteHeader(s.planStatus)
		_, _ = w.Write([]byte(s.planHandler(body)))
	})
	mux.HandleFunc("POST /api/cj_xh", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [{"xq": "24-25-2", "kcdm": "1001", "kcmc": "高等数学", "xf": "5", "kscj": "92", "jd": 4.2}]}`))
	})
	mux.HandleFunc("POST /api/kb_xq_xh", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [
			{"kcmc": "高等数学 1-16周 W201;;", "jsxx": "李四;;", "jc": "1"},
			{"kcmc": ";大学英语 2-8双周 F301", "jsxx": ";王五,赵六", "jc": "2"}
		]}`))
	})
	mux.HandleFunc("POST /api/ks_xs_kslb", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [{"kcmc": "高等数学", "kssj": "2026-01-10 09:00", "jsmc": "W201", "zwh": 12}]}`))
	})
	mux.HandleFunc("POST /api/pj_xspj_kcxx", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": [{"jxbid": 7, "kcdm": "1001", "kcmc": "高等数学", "jsmc": "李四"}]}`))
	})
	mux.HandleFunc("POST /api/pj_xh_pjxx", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		_, _ = w.Write([]byte(`{"status": 200, "message": []}`))
	})
	mux.HandleFunc("POST /api/pj_xh_tj_pjxx", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(http.StatusOK)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) record(r *http.Request) map[string]string {
	var body map[string]string
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[r.URL.Path] = append(s.bodies[r.URL.Path], body)
	s.auth[r.URL.Path] = r.Header.Get("Authorization")
	return body
}

func (s *apiServer) lastBody(path string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bodies[path]
	if len(b) == 0 {
		return nil
	}
	return b[len(b)-1]
}

func (s *apiServer) lastAuth(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth[path]
}

// countingDoer counts every request passed to the wrapped Doer.
type countingDoer struct {
	transport.Doer
	calls atomic.Int64
}

func (d *countingDoer) Get(ctx context.Context, rawURL string, header http.Header) (*transport.Response, error) {
	d.calls.Add(1)
	return d.Doer.Get(ctx, rawURL, header)
}

func (d *countingDoer) PostJSON(ctx context.Context, rawURL string, header http.Header, v any) (*transport.Response, error) {
	d.calls.Add(1)
	return d.Doer.PostJSON(ctx, rawURL, header, v)
}

func (d *countingDoer) PostForm(ctx context.Context, rawURL string, header http.Header, form url.Values) (*transport.Response, error) {
	d.calls.Add(1)
	return d.Doer.PostForm(ctx, rawURL, header, form)
}

// memoryCache is an in-memory Cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (m *memoryCache) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func newTestPortal(t *testing.T, srv *apiServer, opts ...Option) (*Client, *countingDoer) {
	t.Helper()

	tc, err := transport.NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	doer := &countingDoer{Doer: tc}
	opts = append([]Option{WithBaseURL(srv.URL), WithPrefetch(false)}, opts...)
	c := NewClient(doer, &fakeSSO{topology: model.TopologyDirect}, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c, doer
}

func login(t *testing.T, c *Client) *model.Authenticated {
	t.Helper()

	session, err := c.Authenticate(t.Context(), model.NewCredential(testStudentNumber, "secret"))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	return session
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	tc, err := transport.NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	c := NewClient(tc, &fakeSSO{topology: model.TopologyWebVPN}, WithBaseURL(srv.URL+"/"), WithPrefetch(false))

	if _, ok := c.Session().(model.Anonymous); !ok {
		t.Fatalf("new client session = %T, want Anonymous", c.Session())
	}

	session, err := c.Authenticate(t.Context(), model.NewCredential(testStudentNumber, "secret"))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if session.Token() != testToken || session.SubjectID() != testSubjectID ||
		session.StudentNumber() != testStudentNumber || session.Topology() != model.TopologyWebVPN {
		t.Errorf("unexpected session: %+v", session)
	}
	if got := srv.lastBody("/api/login"); got["userid"] != testStudentNumber || got["userpwd"] != "secret" {
		t.Errorf("login body = %v", got)
	}
	if got := srv.lastAuth("/api/login"); got != "" {
		t.Errorf("login must not carry Authorization, got %q", got)
	}

	if _, err := c.Grades(t.Context()); err != nil {
		t.Fatalf("Grades() error = %v", err)
	}
	if got := srv.lastAuth("/api/cj_xh"); got != "Bearer "+testToken {
		t.Errorf("Authorization = %q", got)
	}
	if _, ok := c.Session().(*model.Authenticated); !ok {
		t.Errorf("session after login = %T", c.Session())
	}
}

func TestAuthenticateFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		status     int
		response   string
		ssoErr     error
		wantErr    error
		wantReason string
	}{
		{
			name:     "empty ids mean invalid credentials",
			status:   http.StatusOK,
			response: `{"status": 200, "token": "t", "message": [{"id": "", "userid": ""}]}`,
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:       "missing token",
			status:     http.StatusOK,
			response:   `{"status": 200, "message": [{"id": "1", "userid": "2"}]}`,
			wantReason: model.ReasonMissingToken,
		},
		{
			name:       "missing user row",
			status:     http.StatusOK,
			response:   `{"status": 200, "token": "t", "message": []}`,
			wantReason: model.ReasonMissingUser,
		},
		{
			name:       "http status",
			status:     http.StatusBadGateway,
			response:   `bad gateway`,
			wantReason: "http-status:502",
		},
		{
			name:     "undecodable body",
			status:   http.StatusOK,
			response: `<html></html>`,
			wantErr:  model.ErrMalformedResponse,
		},
		{
			name:    "sso failure passes through",
			ssoErr:  model.ErrInvalidCredentials,
			wantErr: model.ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := newAPIServer(t)
			srv.loginStatus = tc.status
			srv.loginResponse = tc.response

			tr, err := transport.NewClient()
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			c := NewClient(tr, &fakeSSO{topology: model.TopologyDirect, err: tc.ssoErr}, WithBaseURL(srv.URL), WithPrefetch(false))

			session, err := c.Authenticate(t.Context(), model.NewCredential("u", "p"))
			if err == nil {
				t.Fatal("expected an error")
			}
			if session != nil {
				t.Errorf("failed login returned session %+v", session)
			}
			if _, ok := c.Session().(model.Anonymous); !ok {
				t.Errorf("session after failed login = %T, want Anonymous", c.Session())
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantReason != "" {
				var af *model.AuthFailure
				if !errors.As(err, &af) || af.Reason != tc.wantReason {
					t.Errorf("error = %v, want AuthFailure(%s)", err, tc.wantReason)
				}
			}
			if _, ok := c.Session().(model.Anonymous); !ok {
				t.Errorf("failed login changed the session to %T", c.Session())
			}
		})
	}
}

func TestFetchRequiresSession(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, _ := newTestPortal(t, srv)
	ctx := t.Context()

	calls := map[string]func() error{
		"Grades":               func() error { _, err := c.Grades(ctx); return err },
		"CreditsAndRank":       func() error { _, err := c.CreditsAndRank(ctx); return err },
		"StudentBasicInfo":     func() error { _, err := c.StudentBasicInfo(ctx); return err },
		"ClassSchedule":        func() error { _, err := c.ClassSchedule(ctx, "25-26-1"); return err },
		"ExamArrangements":     func() error { _, err := c.ExamArrangements(ctx, "", ""); return err },
		"EvaluatableClasses":   func() error { _, err := c.EvaluatableClasses(ctx, "x"); return err },
		"SubmittedEvaluations": func() error { _, err := c.SubmittedEvaluations(ctx, "x"); return err },
		"SubmitEvaluation":     func() error { _, err := c.SubmitEvaluation(ctx, Evaluation{}); return err },
		"TrainingPlan":         func() error { _, err := c.TrainingPlan(ctx); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, model.ErrSessionMissing) {
			t.Errorf("%s() error = %v, want ErrSessionMissing", name, err)
		}
	}

	terms, err := c.Terms(ctx)
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}
	if len(terms) != 2 || terms[0].Term != "25-26-1" {
		t.Errorf("Terms() = %+v", terms)
	}
}

func TestTrainingPlan(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	cache := newMemoryCache()
	c, _ := newTestPortal(t, srv, WithCache(cache))
	login(t, c)

	plan, err := c.TrainingPlan(t.Context())
	if err != nil {
		t.Fatalf("TrainingPlan() error = %v", err)
	}

	if plan.MajorName != "计算机科学与技术" || plan.DurationYears != 4 {
		t.Errorf("basic info not preferred: (%q, %d)", plan.MajorName, plan.DurationYears)
	}
	if plan.RequiredCredits != 5 || plan.PracticeCredits != 2 || plan.TotalCredits != 7 {
		t.Errorf("unexpected credits: %+v", plan)
	}

	wantBody := map[string]string{"xh": testSubjectID, "yhid": testSubjectID, "nj": "2021", "xz": "4", "zydm": "0809"}
	if diff := cmp.Diff(wantBody, srv.lastBody("/api/cj_xh_jxjh_cj")); diff != "" {
		t.Errorf("plan request mismatch (-want +got):\n%s", diff)
	}
	if c.LastTrainingPlanRawResponse() != planBody {
		t.Error("raw response not kept")
	}
	if !cache.has(TrainingPlanCacheKey(testStudentNumber)) {
		t.Error("plan not written to disk cache")
	}

	again, err := c.TrainingPlan(t.Context())
	if err != nil {
		t.Fatalf("second TrainingPlan() error = %v", err)
	}
	if again != plan {
		t.Error("second call did not use the memory cache")
	}
	if n := srv.planCalls.Load(); n != 1 {
		t.Errorf("plan endpoint called %d times, want 1", n)
	}
}

func TestTrainingPlanDiskCacheHitMakesNoRequest(t *testing.T) {
	t.Parallel()

	store, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cached := model.NewTrainingPlan("缓存专业", 4)
	cached.AddCourse(3, model.PlanCourse{ID: "X", Code: "X", Name: "缓存课程", Credits: 1, Category: model.CategoryElective})
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := store.Write(t.Context(), TrainingPlanCacheKey(testStudentNumber), data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	srv := newAPIServer(t)
	c, doer := newTestPortal(t, srv, WithCache(store))
	login(t, c)
	before := doer.calls.Load()

	plan, err := c.TrainingPlan(t.Context())
	if err != nil {
		t.Fatalf("TrainingPlan() error = %v", err)
	}
	if got := doer.calls.Load() - before; got != 0 {
		t.Errorf("disk cache hit made %d transport calls", got)
	}
	if diff := cmp.Diff(cached, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestTrainingPlanRetriesWithStudentNumber(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	srv.planHandler = func(body map[string]string) string {
		if body["xh"] != testStudentNumber {
			return `{"status": 1, "message": "未找到培养方案"}`
		}
		return planBody
	}
	c, _ := newTestPortal(t, srv)
	login(t, c)

	plan, err := c.TrainingPlan(t.Context())
	if err != nil {
		t.Fatalf("TrainingPlan() error = %v", err)
	}
	if plan.CourseCount() != 2 {
		t.Errorf("CourseCount() = %d, want 2", plan.CourseCount())
	}
	if n := srv.planCalls.Load(); n != 2 {
		t.Errorf("plan endpoint called %d times, want 2", n)
	}
}

func TestTrainingPlanDoesNotRetryHTTPErrors(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	srv.planStatus = http.StatusBadGateway
	c, _ := newTestPortal(t, srv)
	login(t, c)

	_, err := c.TrainingPlan(t.Context())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("error = %v, want ErrUnexpectedStatus", err)
	}
	if errors.Is(err, model.ErrUnknownFormat) {
		t.Errorf("status error reported as a format error: %v", err)
	}
	if n := srv.planCalls.Load(); n != 1 {
		t.Errorf("plan endpoint called %d times, want 1", n)
	}
}

func TestTrainingPlanUnknownFormat(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	srv.planHandler = func(map[string]string) string { return `{"status": 500, "message": "系统维护"}` }
	c, _ := newTestPortal(t, srv)
	login(t, c)

	_, err := c.TrainingPlan(t.Context())
	var ufe *model.UnknownFormatError
	if !errors.As(err, &ufe) || ufe.Message != "系统维护" {
		t.Errorf("error = %v, want UnknownFormatError(系统维护)", err)
	}
	if c.LastTrainingPlanRawResponse() == "" {
		t.Error("raw response should be kept even when parsing fails")
	}
}

func TestTrainingPlanConcurrentCallsShareOneFetch(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, _ := newTestPortal(t, srv)
	login(t, c)

	var wg sync.WaitGroup
	plans := make([]*model.TrainingPlan, 8)
	for i := range plans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.TrainingPlan(context.Background())
			if err != nil {
				t.Errorf("TrainingPlan() error = %v", err)
				return
			}
			plans[i] = p
		}()
	}
	wg.Wait()

	if n := srv.planCalls.Load(); n != 1 {
		t.Errorf("plan endpoint called %d times, want 1", n)
	}
	for i, p := range plans {
		if p != plans[0] {
			t.Errorf("caller %d got a different plan", i)
		}
	}
}

func TestTrainingPlanCacheControls(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	cache := newMemoryCache()
	c, _ := newTestPortal(t, srv, WithCache(cache))
	login(t, c)

	if _, err := c.TrainingPlan(t.Context()); err != nil {
		t.Fatalf("TrainingPlan() error = %v", err)
	}

	c.ClearTrainingPlanCache()
	if _, err := c.TrainingPlan(t.Context()); err != nil {
		t.Fatalf("TrainingPlan() after clear error = %v", err)
	}
	if n := srv.planCalls.Load(); n != 1 {
		t.Errorf("memory clear should fall back to disk, plan calls = %d", n)
	}

	c.DeleteTrainingPlanDiskCache(t.Context())
	if cache.has(TrainingPlanCacheKey(testStudentNumber)) {
		t.Error("disk entry still present")
	}
	c.ClearTrainingPlanCache()
	if _, err := c.TrainingPlan(t.Context()); err != nil {
		t.Fatalf("TrainingPlan() after delete error = %v", err)
	}
	if n := srv.planCalls.Load(); n != 2 {
		t.Errorf("plan calls = %d, want 2", n)
	}
}

func TestPrefetchAfterLogin(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, doer := newTestPortal(t, srv, WithPrefetch(true))
	login(t, c)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if n := srv.planCalls.Load(); n != 1 {
		t.Fatalf("prefetch made %d plan calls, want 1", n)
	}
	before := doer.calls.Load()
	if _, err := c.TrainingPlan(t.Context()); err != nil {
		t.Fatalf("TrainingPlan() error = %v", err)
	}
	if doer.calls.Load() != before {
		t.Error("prefetched plan was not reused")
	}
}

func TestClassScheduleParsed(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, _ := newTestPortal(t, srv)
	login(t, c)

	courses, err := c.CurrentClassScheduleParsed(t.Context())
	if err != nil {
		t.Fatalf("CurrentClassScheduleParsed() error = %v", err)
	}

	want := []model.ParsedCourse{
		{Name: "高等数学", Teacher: "李四", Location: "W201", Weeks: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, DayOfWeek: 1, TimeSlot: 1},
		{Name: "大学英语", Teacher: "王五", Location: "F301", Weeks: []int{2, 4, 6, 8}, DayOfWeek: 2, TimeSlot: 2},
	}
	if diff := cmp.Diff(want, courses); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}

	wantBody := map[string]string{"xh": testStudentNumber, "xq": "25-26-1", "yhid": testSubjectID}
	if diff := cmp.Diff(wantBody, srv.lastBody("/api/kb_xq_xh")); diff != "" {
		t.Errorf("schedule request mismatch (-want +got):\n%s", diff)
	}
}

func TestExamsAndEvaluations(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, _ := newTestPortal(t, srv)
	login(t, c)
	ctx := t.Context()

	exams, err := c.ExamArrangements(ctx, "", "")
	if err != nil {
		t.Fatalf("ExamArrangements() error = %v", err)
	}
	if len(exams) != 1 || exams[0].Seat != "12" {
		t.Errorf("ExamArrangements() = %+v", exams)
	}
	wantExamBody := map[string]string{"xq": "25-26-1", "yhdm": testStudentNumber, "dm": DefaultExamType, "yhid": testSubjectID}
	if diff := cmp.Diff(wantExamBody, srv.lastBody("/api/ks_xs_kslb")); diff != "" {
		t.Errorf("exam request mismatch (-want +got):\n%s", diff)
	}

	classes, err := c.EvaluatableClasses(ctx, "24-25-2")
	if err != nil {
		t.Fatalf("EvaluatableClasses() error = %v", err)
	}
	if len(classes) != 1 || classes[0].ClassID != "7" {
		t.Errorf("EvaluatableClasses() = %+v", classes)
	}

	submitted, err := c.SubmittedEvaluations(ctx, "24-25-2")
	if err != nil {
		t.Fatalf("SubmittedEvaluations() error = %v", err)
	}
	if len(submitted) != 0 {
		t.Errorf("SubmittedEvaluations() = %+v", submitted)
	}
	if got := srv.lastBody("/api/pj_xh_pjxx"); got["pjxq"] != "24-25-2" || got["xh"] != testStudentNumber {
		t.Errorf("submitted request = %v", got)
	}

	ok, err := c.SubmitEvaluation(ctx, Evaluation{Term: "24-25-2", EvaluationID: "9", Scores: "95", Comments: "好"})
	if err != nil || !ok {
		t.Fatalf("SubmitEvaluation() = %v, %v", ok, err)
	}
	wantSubmit := map[string]string{"pjxq": "24-25-2", "pjid": "9", "xh": testStudentNumber, "zf": "95", "yjjy": "好", "yhid": testSubjectID}
	if diff := cmp.Diff(wantSubmit, srv.lastBody("/api/pj_xh_tj_pjxx")); diff != "" {
		t.Errorf("submit request mismatch (-want +got):\n%s", diff)
	}
}

func TestGradesDecoding(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t)
	c, _ := newTestPortal(t, srv)
	login(t, c)

	grades, err := c.Grades(t.Context())
	if err != nil {
		t.Fatalf("Grades() error = %v", err)
	}
	if len(grades) != 1 || grades[0].Credits != 5 || grades[0].Score != "92" || grades[0].GradePoint != 4.2 {
		t.Errorf("Grades() = %+v", grades)
	}
	if got := srv.lastBody("/api/cj_xh"); got["xh"] != testSubjectID {
		t.Errorf("grades request = %v", got)
	}
}

func TestTrainingPlanCacheKey(t *testing.T) {
	t.Parallel()

	a := TrainingPlanCacheKey("2100001234")
	if a != TrainingPlanCacheKey(" 2100001234 ") {
		t.Error("key should ignore surrounding whitespace")
	}
	if a == TrainingPlanCacheKey("2100001235") {
		t.Error("different students share a key")
	}
	if len(a) != len("training_plan_")+32 {
		t.Errorf("unexpected key %q", a)
	}
}
