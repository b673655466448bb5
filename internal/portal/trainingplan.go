package portal

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/plan"
)

const trainingPlanPath = "/api/cj_xh_jxjh_cj"

// TrainingPlanCacheKey returns the disk cache key for a student number.
// The number is hashed so cache listings do not reveal it.
func TrainingPlanCacheKey(studentNumber string) string {
	sum := sha3.Sum256([]byte(strings.TrimSpace(studentNumber)))
	return "training_plan_" + hex.EncodeToString(sum[:16])
}

// TrainingPlan returns the student's training plan. It is served from
// memory, then from the disk cache, and only then fetched. Concurrent
// callers share one fetch.
func (c *Client) TrainingPlan(ctx context.Context) (*model.TrainingPlan, error) {
	c.mu.Lock()
	cached := c.plan
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	st, err := c.authenticated()
	if err != nil {
		return nil, err
	}

	key := TrainingPlanCacheKey(st.session.StudentNumber())
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.loadTrainingPlan(ctx, st, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TrainingPlan), nil //nolint:forcetypeassert // loadTrainingPlan always returns *model.TrainingPlan
}

func (c *Client) loadTrainingPlan(ctx context.Context, st state, key string) (*model.TrainingPlan, error) {
	if p := c.readPlanCache(ctx, key); p != nil {
		c.storePlan(p)
		return p, nil
	}

	body := map[string]string{
		"xh":   st.session.SubjectID(),
		"yhid": st.session.SubjectID(),
	}
	basic, err := c.StudentBasicInfo(ctx)
	if err != nil {
		c.logger.Warn("student info unavailable, requesting training plan without it", "error", err)
	} else {
		body["nj"] = strconv.Itoa(int(basic.Grade))
		body["xz"] = string(basic.StudyLength)
		if code := string(basic.MajorCode); code != "" {
			body["zydm"] = code
		}
	}

	p, err := c.requestTrainingPlan(ctx, st, body, basic)
	if errors.Is(err, model.ErrUnknownFormat) {
		// Some accounts are only recognized by student number.
		c.logger.Warn("training plan parse failed, retrying with student number", "error", err)
		body["xh"] = strings.TrimSpace(st.session.StudentNumber())
		p, err = c.requestTrainingPlan(ctx, st, body, basic)
	}
	if err != nil {
		return nil, err
	}

	c.storePlan(p)
	c.writePlanCache(ctx, key, p)
	return p, nil
}

func (c *Client) requestTrainingPlan(ctx context.Context, st state, body map[string]string, basic *model.StudentBasicInfo) (*model.TrainingPlan, error) {
	c.logger.Debug("requesting training plan", "xh", body["xh"], "nj", body["nj"], "xz", body["xz"])
	raw, err := c.post(ctx, trainingPlanPath, st.headers, body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastRaw = string(raw)
	c.mu.Unlock()
	c.logger.Debug("training plan response", "bytes", len(raw))

	return plan.Aggregate(raw, basic)
}

func (c *Client) storePlan(p *model.TrainingPlan) {
	c.mu.Lock()
	c.plan = p
	c.mu.Unlock()
}

// readPlanCache returns nil on any miss or decode failure.
func (c *Client) readPlanCache(ctx context.Context, key string) *model.TrainingPlan {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Read(ctx, key)
	if err != nil {
		c.logger.Debug("training plan cache miss", "cache_key", key, "error", err)
		return nil
	}
	var p model.TrainingPlan
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Debug("discarding unreadable training plan cache", "cache_key", key, "error", err)
		return nil
	}
	if p.CoursesBySemester == nil {
		p.CoursesBySemester = make(map[int][]model.PlanCourse)
	}
	return &p
}

func (c *Client) writePlanCache(ctx context.Context, key string, p *model.TrainingPlan) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Debug("failed to encode training plan for cache", "error", err)
		return
	}
	if err := c.cache.Write(ctx, key, data); err != nil {
		c.logger.Debug("failed to write training plan cache", "cache_key", key, "error", err)
	}
}

// LastTrainingPlanRawResponse returns the most recent raw training plan
// body, or an empty string when none was fetched.
func (c *Client) LastTrainingPlanRawResponse() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRaw
}

// ClearTrainingPlanCache drops the in-memory plan. The disk cache is kept.
func (c *Client) ClearTrainingPlanCache() {
	c.mu.Lock()
	c.plan = nil
	c.mu.Unlock()
}

// DeleteTrainingPlanDiskCache removes the logged-in student's plan from
// the disk cache. It does nothing while anonymous or without a cache.
func (c *Client) DeleteTrainingPlanDiskCache(ctx context.Context) {
	st, err := c.authenticated()
	if err != nil || c.cache == nil {
		return
	}
	key := TrainingPlanCacheKey(st.session.StudentNumber())
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.Debug("failed to delete training plan cache", "cache_key", key, "error", err)
	}
}
