package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pwaudit/internal/analyzer"
	"github.com/nao1215/pwaudit/internal/config"
	"github.com/nao1215/pwaudit/internal/database"
	"github.com/nao1215/pwaudit/internal/input"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/wordlist"
)

// seedHistory saves one run per password group and returns the run IDs.
func seedHistory(t *testing.T, dbDir string, groups ...[]string) []string {
	t.Helper()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	a := analyzer.New(wordlist.NewSet("password"))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		id, err := db.SaveRun(context.Background(), a.AnalyzeAll(g))
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}
	for _, name := range []string{"run", "delete", "check", "json", "markdown", "no-color", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()
		dbDir := filepath.Join(t.TempDir(), "data")

		stdout, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "--no-color")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No saved runs.") {
			t.Errorf("expected empty history, got:\n%s", stdout)
		}
	})

	t.Run("unknown run without database", func(t *testing.T) {
		t.Parallel()
		dbDir := filepath.Join(t.TempDir(), "data")

		_, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "--run", "abc")
		if !errors.Is(err, database.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("lists runs as JSON", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		ids := seedHistory(t, dbDir, []string{"password"}, []string{"password", "Xk9#mQ2$vL7!"})

		stdout, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "-j")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Runs []model.AuditRun `json:"runs"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(got.Runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(got.Runs))
		}
		if got.Runs[0].ID != ids[1] {
			t.Errorf("expected newest run first, got %s", got.Runs[0].ID)
		}
		if got.Runs[0].Summary.Total != 2 {
			t.Errorf("expected 2 passwords in newest run, got %d", got.Runs[0].Summary.Total)
		}
	})

	t.Run("shows one run with reuse", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		ids := seedHistory(t, dbDir, []string{"password"}, []string{"password"})

		stdout, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "--run", ids[1], "--no-color")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, ids[1]) {
			t.Errorf("expected run id in output, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "pa***rd") {
			t.Errorf("expected masked password in output, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "seen in 1 earlier run(s)") {
			t.Errorf("expected reuse note, got:\n%s", stdout)
		}
	})

	t.Run("markdown history", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		seedHistory(t, dbDir, []string{"password"})

		stdout, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "-m")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout, "# Password Audit History") {
			t.Errorf("expected markdown history, got:\n%s", stdout)
		}
	})

	t.Run("deletes a run", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		ids := seedHistory(t, dbDir, []string{"password"})

		stdout, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "--delete", ids[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Deleted run "+ids[0]) {
			t.Errorf("expected delete notice, got %q", stdout)
		}

		_, _, err = execute(t, NewHistoryCmd(), nil, "--db-dir", dbDir, "--run", ids[0])
		if !errors.Is(err, database.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound after delete, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", t.TempDir(), "-j", "-m")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("run and delete together", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", t.TempDir(), "--run", "a", "--delete", "b")
		if err == nil {
			t.Error("expected error for --run with --delete")
		}
	})
}

// TestHistoryCheck tests counting saved runs that contain a password.
func TestHistoryCheck(t *testing.T) {
	t.Parallel()

	t.Run("counts runs containing the password", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		seedHistory(t, dbDir, []string{"password"}, []string{"password", "hunter2"}, []string{"hunter2"})

		stdout, stderr, err := execute(t, NewHistoryCmd(), strings.NewReader("hunter2\n"),
			"--db-dir", dbDir, "--check")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Enter password to check: ") {
			t.Errorf("expected prompt on stderr, got %q", stderr)
		}
		if !strings.Contains(stdout, "hu***r2 was seen in 2 saved run(s)") {
			t.Errorf("unexpected output %q", stdout)
		}
		if strings.Contains(stdout+stderr, "hunter2") {
			t.Error("clear-text password leaked into output")
		}
	})

	t.Run("unknown password", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		seedHistory(t, dbDir, []string{"password"})

		stdout, _, err := execute(t, NewHistoryCmd(), strings.NewReader("letmein\n"),
			"--db-dir", dbDir, "--check")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "seen in 0 saved run(s)") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()
		dbDir := filepath.Join(t.TempDir(), "data")

		stdout, _, err := execute(t, NewHistoryCmd(), strings.NewReader("password\n"),
			"--db-dir", dbDir, "--check")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "seen in 0 saved run(s)") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, NewHistoryCmd(), strings.NewReader("\n"), "--db-dir", t.TempDir(), "--check")
		if !errors.Is(err, input.ErrNoPassword) {
			t.Errorf("expected ErrNoPassword, got %v", err)
		}
	})

	t.Run("cannot combine with run", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, NewHistoryCmd(), nil, "--db-dir", t.TempDir(), "--check", "--run", "a")
		if err == nil {
			t.Error("expected error for --check with --run")
		}
	})
}
