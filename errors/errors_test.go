package errors

import (
	"errors"
	"io"
	"testing"
)

func TestErrorf(t *testing.T) {
	cause := io.EOF

	t.Run("wrap error", func(t *testing.T) {
		err := Errorf("boom: %v", cause)
		if !errors.Is(err, cause) {
			t.Fatalf("expected errors.Is to return true")
		}
	})

	t.Run("handles nil", func(t *testing.T) {
		var err *Problem
		if errors.Is(err, cause) {
			t.Fatalf("expected errors.Is to return false")
		}
	})

	t.Run("handle no arguments", func(t *testing.T) {
		err := Errorf("boom")
		if errors.Is(err, cause) {
			t.Fatalf("expected errors.Is to return false")
		}
	})

	t.Run("handle non-error argument arguments", func(t *testing.T) {
		err := Errorf("boom: %v", "shaka")
		if errors.Is(err, cause) {
			t.Fatalf("expected errors.Is to return false")
		}
	})
}

func TestResult(t *testing.T) {
	t.Run("success is ok and has no problems", func(t *testing.T) {
		r := Success(42)
		if !r.Ok() || r.Value() != 42 || len(r.Problems()) != 0 || r.Err() != nil {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("warning with no problems collapses to success", func(t *testing.T) {
		r := Warning(42, nil)
		if !r.Ok() || len(r.Problems()) != 0 {
			t.Fatalf("expected plain success, got %+v", r)
		}
	})

	t.Run("failure is not ok and exposes joined problems as Err", func(t *testing.T) {
		r := Failure[int](Problems{Errorf("bad"), Errorf("worse")})
		if r.Ok() {
			t.Fatalf("expected failure to not be ok")
		}
		if r.Err() == nil {
			t.Fatalf("expected Err to be non-nil")
		}
	})

	t.Run("append demotes success to warning", func(t *testing.T) {
		r := Success(1).Append(Problems{Errorf("hmm")})
		if !r.Ok() || len(r.Problems()) != 1 {
			t.Fatalf("expected warning with one problem, got %+v", r)
		}
	})

	t.Run("append on failure is a no-op", func(t *testing.T) {
		r := Failure[int](Problems{Errorf("bad")}).Append(Problems{Errorf("more")})
		if len(r.Problems()) != 1 {
			t.Fatalf("expected failure problems to be unaffected, got %d", len(r.Problems()))
		}
	})

	t.Run("internal error is not ok and Err returns the wrapped cause", func(t *testing.T) {
		r := InternalErrorResult[int](io.EOF)
		if r.Ok() {
			t.Fatalf("expected internal error to not be ok")
		}
		if !errors.Is(r.Err(), io.EOF) {
			t.Fatalf("expected Err to wrap the original cause, got %v", r.Err())
		}
	})

	t.Run("AsPair folds an internal error into a single Problem", func(t *testing.T) {
		value, problems := InternalErrorResult[int](io.EOF).AsPair()
		if value != 0 {
			t.Errorf("expected zero value, got %d", value)
		}
		if len(problems) != 1 {
			t.Fatalf("expected exactly one Problem, got %d", len(problems))
		}
	})

	t.Run("AsPair on success/warning returns the value and problems as-is", func(t *testing.T) {
		value, problems := Warning(42, Problems{Errorf("hmm")}).AsPair()
		if value != 42 || len(problems) != 1 {
			t.Fatalf("unexpected pair: %d, %v", value, problems)
		}
	})
}
