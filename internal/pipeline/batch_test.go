package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/pwaudit/internal/analyzer"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/wordlist"
)

// mockScorer is a Scorer whose behavior is controlled by the test.
type mockScorer struct {
	analyzeFunc func(password string) model.AnalysisResult
}

func (m *mockScorer) Analyze(password string) model.AnalysisResult {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(password)
	}
	return model.AnalysisResult{Password: password}
}

// discardLogger returns a logger that drops all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&mockScorer{})

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&mockScorer{}, WithConcurrency(8))
		if bp.concurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&mockScorer{}, WithConcurrency(0))
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&mockScorer{}, WithBatchLogger(nil))
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcess tests batch scoring.
func TestBatchProcessorProcess(t *testing.T) {
	t.Parallel()

	t.Run("scores with the real analyzer in order", func(t *testing.T) {
		t.Parallel()

		a := analyzer.New(wordlist.NewSet("password"))
		bp := NewBatchProcessor(a, WithConcurrency(3), WithBatchLogger(discardLogger()))

		passwords := []string{"password", "Xk9#mQ2$vL7!pR4&wZ8@", "abc", "", "Tr0ub4dor&3"}
		results, err := bp.Process(context.Background(), passwords)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(passwords) {
			t.Fatalf("expected %d results, got %d", len(passwords), len(results))
		}

		sequential := a.AnalyzeAll(passwords)
		for i := range passwords {
			if results[i].Password != passwords[i] {
				t.Errorf("result[%d]: got password %q, expected %q", i, results[i].Password, passwords[i])
			}
			if results[i].Strength != sequential[i].Strength {
				t.Errorf("result[%d]: concurrent strength %v differs from sequential %v",
					i, results[i].Strength, sequential[i].Strength)
			}
		}
		if results[0].Strength != model.StrengthWeak {
			t.Errorf("expected 'password' to be Weak, got %v", results[0].Strength)
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		var mu sync.Mutex

		scorer := &mockScorer{
			analyzeFunc: func(password string) model.AnalysisResult {
				n := current.Add(1)
				mu.Lock()
				if n > peak.Load() {
					peak.Store(n)
				}
				mu.Unlock()

				time.Sleep(20 * time.Millisecond)
				current.Add(-1)
				return model.AnalysisResult{Password: password}
			},
		}

		bp := NewBatchProcessor(scorer, WithConcurrency(2), WithBatchLogger(discardLogger()))

		passwords := make([]string, 10)
		for i := range passwords {
			passwords[i] = "pw"
		}

		if _, err := bp.Process(context.Background(), passwords); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("peak concurrency was %d, expected <= 2", peak.Load())
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(&mockScorer{}, WithBatchLogger(discardLogger()))
		results, err := bp.Process(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("cancelled context skips scoring", func(t *testing.T) {
		t.Parallel()

		var called atomic.Int32
		scorer := &mockScorer{
			analyzeFunc: func(password string) model.AnalysisResult {
				called.Add(1)
				return model.AnalysisResult{Password: password}
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(scorer, WithBatchLogger(discardLogger()))
		_, err := bp.Process(ctx, []string{"a", "b", "c"})

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if called.Load() != 0 {
			t.Errorf("expected no scoring after cancellation, got %d calls", called.Load())
		}
	})

	t.Run("cancellation mid-batch stops remaining work", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var started atomic.Int32
		scorer := &mockScorer{
			analyzeFunc: func(password string) model.AnalysisResult {
				started.Add(1)
				time.Sleep(20 * time.Millisecond)
				return model.AnalysisResult{Password: password}
			},
		}

		bp := NewBatchProcessor(scorer, WithConcurrency(2), WithBatchLogger(discardLogger()))

		passwords := make([]string, 50)
		for i := range passwords {
			passwords[i] = "pw"
		}

		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()

		_, err := bp.Process(ctx, passwords)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		//nolint:gosec // len(passwords) is small, no overflow risk
		if started.Load() >= int32(len(passwords)) {
			t.Error("expected some passwords to be skipped after cancellation")
		}
	})
}

// TestBatchProcessorProcessWithCallback tests callback-based processing.
func TestBatchProcessorProcessWithCallback(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	received := make(map[int]string)

	bp := NewBatchProcessor(&mockScorer{}, WithBatchLogger(discardLogger()))
	passwords := []string{"first", "second", "third"}

	err := bp.ProcessWithCallback(context.Background(), passwords,
		func(result model.AnalysisResult, index int) {
			mu.Lock()
			received[index] = result.Password
			mu.Unlock()
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(received) != len(passwords) {
		t.Fatalf("expected %d callbacks, got %d", len(passwords), len(received))
	}
	for i, pw := range passwords {
		if received[i] != pw {
			t.Errorf("callback %d: got %q, expected %q", i, received[i], pw)
		}
	}
}
