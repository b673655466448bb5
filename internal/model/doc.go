// Package model defines the data structures shared across cczukit.
//
// This package contains the following main types:
//   - Credential: the account supplied by the caller
//   - Session: the sealed Anonymous/Authenticated portal identity
//   - TrainingPlan: the normalized curriculum aggregate
//   - ParsedCourse: one occurrence expanded from the class schedule grid
//   - Message: the generic {status, message, token} envelope used by the portal API
//
// Models live in their own package so that sso, plan, schedule, portal and
// report can share them without import cycles. Every exported type is
// serializable to JSON for report output and disk caching.
package model
