// Package plan normalizes training plan (培养方案) responses into a
// model.TrainingPlan.
//
// The cj_xh_jxjh_cj endpoint has answered with at least four shapes over
// time: an error envelope, a well-typed success envelope, an envelope whose
// numbers arrive as strings, and a bare array. Decode tries each candidate in
// that order and uses the first that fits; partial results from different
// shapes are never merged.
package plan
