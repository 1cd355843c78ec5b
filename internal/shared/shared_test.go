package shared

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "key=value") {
			t.Errorf("expected log line with message and key, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "resolution", "abc")
		logger.Info("step")

		if !strings.Contains(buf.String(), "resolution=abc") {
			t.Errorf("expected child logger field, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "playall.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("to file")
	})

	t.Run("DiscardLogger", func(t *testing.T) {
		DiscardLogger().Error("dropped")
	})
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "", want: log.InfoLevel},
		{in: "debug", want: log.DebugLevel},
		{in: " WARN ", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "chatty", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a valid uuid, got %q", id)
	}
	if id == GenerateID() {
		t.Error("expected unique ids")
	}
}

func TestFirstSuccess(t *testing.T) {
	fail := func(msg string) Attempt[string] {
		return func(context.Context) (string, error) { return "", errors.New(msg) }
	}
	ok := func(v string) Attempt[string] {
		return func(context.Context) (string, error) { return v, nil }
	}

	t.Run("returns first success in order", func(t *testing.T) {
		got, err := FirstSuccess(context.Background(), []Attempt[string]{fail("a"), ok("b"), ok("c")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "b" {
			t.Errorf("expected b, got %s", got)
		}
	})

	t.Run("stops after success", func(t *testing.T) {
		calls := 0
		count := func(context.Context) (string, error) { calls++; return "x", nil }
		if _, err := FirstSuccess(context.Background(), []Attempt[string]{count, count}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("returns last error when all fail", func(t *testing.T) {
		_, err := FirstSuccess(context.Background(), []Attempt[string]{fail("first"), fail("last")})
		if err == nil || err.Error() != "last" {
			t.Errorf("expected last error, got %v", err)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := FirstSuccess[string](context.Background(), nil)
		if !errors.Is(err, ErrNoAttempts) {
			t.Errorf("expected ErrNoAttempts, got %v", err)
		}
	})

	t.Run("cancelled context stops the chain", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		first := func(context.Context) (string, error) { calls++; cancel(); return "", errors.New("boom") }
		second := func(context.Context) (string, error) { calls++; return "late", nil }

		_, err := FirstSuccess(ctx, []Attempt[string]{first, second})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected second attempt to be skipped, got %d calls", calls)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCmd
	t.Cleanup(func() { getRuntime, startCmd = origRuntime, origStart })

	var started *exec.Cmd
	startCmd = func(cmd *exec.Cmd) error { started = cmd; return nil }

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://www.youtube.com/playlist?list=UU4QobU6STFB0P71PMvOGN5A"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open, got %+v", started)
		}
	})

	t.Run("rejects non-http targets", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		err := OpenBrowser("file:///etc/passwd")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("start failure is wrapped", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCmd = func(*exec.Cmd) error { return errors.New("no display") }
		err := OpenBrowser("https://example.com")
		if err == nil || !strings.Contains(err.Error(), "failed to open browser") {
			t.Errorf("expected wrapped start error, got %v", err)
		}
	})
}

func TestWithMessage(t *testing.T) {
	cause := errors.New("relay offline")

	t.Run("Text Is Verbatim", func(t *testing.T) {
		err := WithMessage("could not resolve @jawed", ErrResolutionExhausted, cause)
		if err.Error() != "could not resolve @jawed" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("Matches Every Wrapped Error", func(t *testing.T) {
		err := WithMessage("msg", ErrResolutionExhausted, cause)
		if !errors.Is(err, ErrResolutionExhausted) {
			t.Error("expected ErrResolutionExhausted in chain")
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause in chain")
		}
		if errors.Is(err, ErrRelayExhausted) {
			t.Error("did not expect ErrRelayExhausted in chain")
		}
	})

	t.Run("Nil Errors Dropped", func(t *testing.T) {
		err := WithMessage("msg", ErrBuildFailure, nil)
		if !errors.Is(err, ErrBuildFailure) {
			t.Error("expected ErrBuildFailure in chain")
		}
	})
}
