// Package portal is the client for the academic application API
// (jwqywx). It logs in through the sso package, then through the
// application's own /api/login, and exposes grades, schedules, exams,
// evaluations and the training plan.
//
// A Client is not safe for concurrent mutating use: callers serialize
// Authenticate, cache clearing and fetches. The training plan prefetch
// started by Authenticate is the only background work, and Close waits
// for it.
package portal
