// Package schedule turns the portal's class schedule grid into course
// occurrences.
//
// The grid is indexed by time slot (row) and day of week (column), both
// 1-based once parsed. A cell may hold several "/"-separated entries, and
// each entry packs the course name, the teaching weeks and the classroom into
// one whitespace-separated string such as "高等数学 1-16周 W201".
package schedule
