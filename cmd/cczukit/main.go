// Package main provides the entry point for the cczukit CLI.
//
// cczukit logs in to the CCZU single sign-on portal and queries the
// academic application API: training plan, class schedule, grades and
// exams.
//
// Usage:
//
//	cczukit login
//	cczukit plan --markdown -o plan.md
//	cczukit schedule --week 3
//
// See --help for all available options.
package main

func main() {
	Execute()
}
