package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/CCZU-OSSA/cczukit/internal/config"
	"github.com/CCZU-OSSA/cczukit/internal/model"
	"github.com/CCZU-OSSA/cczukit/internal/report"
)

// writeConfig writes a config file into a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".cczukit")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// parsedCommand returns a report command with the root's persistent flags
// attached and args parsed.
func parsedCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := NewPlanCmd()
	cmd.Flags().AddFlagSet(NewRootCmd().PersistentFlags())
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return cmd
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `
account:
  username: "2100000001"
  password: from-file
cacheDir: /tmp/cczukit-test
`)

	t.Run("file values", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(parsedCommand(t, "-c", cfgPath))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Password != "from-file" || cfg.CacheDir != "/tmp/cczukit-test" {
			t.Errorf("file not applied: %+v", cfg)
		}
		if cfg.JSONReport || cfg.MarkdownReport || cfg.Verbose {
			t.Error("unexpected flags set")
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(parsedCommand(t, "-c", cfgPath, "-u", "2100000002", "-p", "from-flag", "-v", "--json", "-o", "out.json", "--no-cache"))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Username != "2100000002" || cfg.Password != "from-flag" {
			t.Errorf("credentials not overridden: %q", cfg.Username)
		}
		if !cfg.Verbose || !cfg.JSONReport || !cfg.NoCache || cfg.ReportFile != "out.json" {
			t.Errorf("flags not applied: %+v", cfg)
		}
	})

	t.Run("explicit missing file", func(t *testing.T) {
		t.Parallel()

		_, err := buildConfig(parsedCommand(t, "-c", filepath.Join(t.TempDir(), "missing.yaml")))
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestPrepareRejectsInvalidConfig(t *testing.T) {
	t.Setenv(config.EnvUsername, "")
	t.Setenv(config.EnvPassword, "")

	cfgPath := writeConfig(t, "timeout: 5s\n")

	t.Run("missing credentials", func(t *testing.T) {
		_, _, _, err := prepare(parsedCommand(t, "-c", cfgPath), false)
		if !errors.Is(err, config.ErrMissingCredentials) {
			t.Errorf("error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		_, _, _, err := prepare(parsedCommand(t, "-c", cfgPath, "-u", "x", "-p", "y", "--json", "--markdown"), false)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("error = %v, want ErrConflictingReportFormats", err)
		}
	})
}

func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		cfg   config.Config
		check func(report.Writer) bool
	}{
		{"default", config.Config{}, func(w report.Writer) bool { _, ok := w.(*report.SimpleWriter); return ok }},
		{"json", config.Config{JSONReport: true}, func(w report.Writer) bool { _, ok := w.(*report.JSONWriter); return ok }},
		{"markdown", config.Config{MarkdownReport: true}, func(w report.Writer) bool { _, ok := w.(*report.MarkdownWriter); return ok }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if w := newReportWriter(&tc.cfg, os.Stdout); !tc.check(w) {
				t.Errorf("unexpected writer %T", w)
			}
		})
	}
}

func TestOpenOutputCreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reports", "plan.md")
	out, closeOutput, err := openOutput(&config.Config{ReportFile: path}, os.Stdout)
	if err != nil {
		t.Fatalf("openOutput() error = %v", err)
	}
	if _, err := out.Write([]byte("# plan\n")); err != nil {
		t.Fatal(err)
	}
	if err := closeOutput(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# plan\n" {
		t.Errorf("content = %q", content)
	}
}

func TestFilterWeek(t *testing.T) {
	t.Parallel()

	courses := []model.ParsedCourse{
		{Name: "A", Weeks: []int{1, 2, 3}},
		{Name: "B", Weeks: []int{2, 4, 6}},
		{Name: "C", Weeks: []int{}},
	}

	got := filterWeek(courses, 3)
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("filterWeek(3) = %+v", got)
	}
	if got := filterWeek(courses, 2); len(got) != 2 {
		t.Errorf("filterWeek(2) returned %d courses", len(got))
	}
}
