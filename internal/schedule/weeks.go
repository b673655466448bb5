package schedule

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// MaxWeek is the largest teaching week ExpandWeeks accepts.
const MaxWeek = 60

// ExpandWeeks expands a week descriptor such as "1-8双周" into a sorted list
// of unique week numbers.
//
// Supported forms include "1-16周", "5,7,9-11单", "2-16双周" and "3 5 7".
// 单 keeps odd weeks only, 双 keeps even weeks only; when both appear every
// week is kept. Reversed ranges such as "9-3" contribute nothing, and so do
// segments with a week outside 1..MaxWeek.
//
// Separators are read more leniently than a plain strip of everything but
// digits, commas and dashes: whitespace between two numbers and "，" act as
// commas, and "－" and "~" act as dashes. "1-8周 10周" is therefore weeks 1-8
// and 10, not "1-810".
func ExpandWeeks(spec string) []int {
	spec = strings.ReplaceAll(spec, "周", "")
	odd := strings.Contains(spec, "单")
	even := strings.Contains(spec, "双")
	spec = strings.ReplaceAll(spec, "单", "")
	spec = strings.ReplaceAll(spec, "双", "")

	cleaned := normalizeWeekSpec(spec)
	if cleaned == "" {
		return []int{}
	}

	keep := func(week int) bool {
		switch {
		case odd == even:
			return true
		case odd:
			return week%2 == 1
		default:
			return week%2 == 0
		}
	}

	seen := make(map[int]struct{})
	weeks := make([]int, 0)
	add := func(week int) {
		if !keep(week) {
			return
		}
		if _, dup := seen[week]; dup {
			return
		}
		seen[week] = struct{}{}
		weeks = append(weeks, week)
	}

	for _, segment := range strings.Split(cleaned, ",") {
		if segment == "" {
			continue
		}
		start, end, ok := parseSegment(segment)
		if !ok {
			continue
		}
		for week := start; week <= end; week++ {
			add(week)
		}
	}

	slices.Sort(weeks)
	return weeks
}

// normalizeWeekSpec keeps digits, commas and dashes. A run of whitespace
// (or a full-width comma) between two digits becomes a comma.
func normalizeWeekSpec(spec string) string {
	var b strings.Builder
	pendingSeparator := false
	var last rune
	for _, r := range spec {
		switch {
		case r >= '0' && r <= '9':
			if pendingSeparator && last >= '0' && last <= '9' {
				b.WriteRune(',')
			}
			pendingSeparator = false
			b.WriteRune(r)
			last = r
		case r == ',' || r == '，':
			pendingSeparator = false
			b.WriteRune(',')
			last = ','
		case r == '-' || r == '－' || r == '~':
			pendingSeparator = false
			b.WriteRune('-')
			last = '-'
		case unicode.IsSpace(r):
			pendingSeparator = true
		}
	}
	return b.String()
}

// parseSegment parses "n" or "a-b". It reports false for malformed or
// reversed segments and for weeks outside 1..MaxWeek.
func parseSegment(segment string) (int, int, bool) {
	lo, hi, isRange := strings.Cut(segment, "-")
	if !isRange {
		n, err := strconv.Atoi(segment)
		if err != nil || !validWeek(n) {
			return 0, 0, false
		}
		return n, n, true
	}
	start, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, false
	}
	if start > end || !validWeek(start) || !validWeek(end) {
		return 0, 0, false
	}
	return start, end, true
}

func validWeek(week int) bool {
	return week >= 1 && week <= MaxWeek
}
