package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playall/internal/services"
	"github.com/desertthunder/playall/internal/shared"
	tu "github.com/desertthunder/playall/internal/testing"
)

const (
	testChannelID = "UC4QobU6STFB0P71PMvOGN5A"
	testPlaylist  = "https://www.youtube.com/playlist?list=UU4QobU6STFB0P71PMvOGN5A"
)

// run executes the app with args against r, pointing --config at a file that does not exist
// unless the caller passes its own.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	full := []string{"playall"}
	if len(args) == 0 || args[0] != "--config" {
		full = append(full, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	}
	full = append(full, args...)
	return newApp(r).Run(context.Background(), full)
}

func newTestRunner(opts RunnerOpts) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	output := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	opts.Output = output
	opts.Logger = shared.NewLogger(logs)
	return NewRunner(opts), output, logs
}

// relayConfig points every relay at rs.
func relayConfig(rs *tu.RelayServer) *shared.Config {
	cfg := shared.DefaultConfig()
	cfg.Fetcher.MinBodyLength = 10
	cfg.Fetcher.Relays = []shared.RelayConfig{{Name: "test", Template: rs.RawTemplate(), Format: shared.RelayFormatRaw}}
	cfg.Handle.DirectRelay = shared.RelayConfig{Name: "test-direct", Template: rs.RawTemplate(), Format: shared.RelayFormatRaw}
	cfg.Handle.FeedRelay = shared.RelayConfig{Name: "test-feed", Template: rs.JSONTemplate(), Format: shared.RelayFormatJSON}
	return cfg
}

type stubFetcher struct{}

func (stubFetcher) FetchPage(context.Context, string) (string, error) {
	return "", errors.New("offline")
}

func (stubFetcher) FetchVia(context.Context, services.Relay, string) (string, error) {
	return "", errors.New("offline")
}

func (stubFetcher) Relays() []services.Relay {
	return []services.Relay{{Name: "stub", Template: "https://stub.test/?u={url}", Format: shared.RelayFormatRaw}}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				Input:      input,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if len(runner.fetcher.Relays()) != len(shared.DefaultConfig().Fetcher.Relays) {
				t.Error("expected fetcher to use the default relays")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: nil})
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("custom fetcher survives configure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Fetcher: stubFetcher{}})
			runner.configure(shared.DefaultConfig())

			if _, ok := runner.fetcher.(stubFetcher); !ok {
				t.Errorf("expected custom fetcher to be kept, got %T", runner.fetcher)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := output.String(); got != "{\"key\":\"value\"}\n" {
				t.Errorf("expected compact JSON, got %q", got)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected marshal error")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected write error")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			w := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &w})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected newline write error")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("Hello %s %d\n", "World", 42); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := output.String(); got != "Hello World 42\n" {
				t.Errorf("expected 'Hello World 42\\n', got %q", got)
			}
		})

		t.Run("writePlainln appends a newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("100% done"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := output.String(); got != "100% done\n" {
				t.Errorf("expected text kept verbatim, got %q", got)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected write error")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"resolve", "classify", "batch", "relays", "setup", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if cmd.Name != want[i] {
				t.Errorf("command %d: expected %s, got %s", i, want[i], cmd.Name)
			}
		}
	})

	t.Run("SetLogger", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		engine := runner.engine
		logger := shared.DiscardLogger()

		runner.SetLogger(logger)

		if runner.logger != logger {
			t.Error("expected logger to be replaced")
		}
		if runner.engine == engine {
			t.Error("expected engine to be rebuilt with the new logger")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		runner, _, _ := newTestRunner(RunnerOpts{})
		before := runner.config

		if err := run(t, runner, "classify", testChannelID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.config != before {
			t.Error("expected config to be untouched")
		}
	})

	t.Run("valid file reconfigures the runner", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `[log]
level = "debug"

[[fetcher.relays]]
name = "only"
template = "https://relay.test/raw?url={url}"
format = "raw"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		runner, _, _ := newTestRunner(RunnerOpts{})
		if err := run(t, runner, "--config", path, "classify", testChannelID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		relays := runner.fetcher.Relays()
		if len(relays) != 1 || relays[0].Name != "only" {
			t.Errorf("expected the file's relay, got %+v", relays)
		}
		if runner.logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
		}
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `[[fetcher.relays]]
name = "broken"
template = "https://relay.test/"
format = "raw"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		runner, _, _ := newTestRunner(RunnerOpts{})
		err := run(t, runner, "--config", path, "classify", testChannelID)
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("log level flag overrides config", func(t *testing.T) {
		runner, _, _ := newTestRunner(RunnerOpts{})
		if err := run(t, runner, "--log-level", "warn", "classify", testChannelID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.logger.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", runner.logger.GetLevel())
		}
	})

	t.Run("bad log level flag", func(t *testing.T) {
		runner, _, _ := newTestRunner(RunnerOpts{})
		err := run(t, runner, "--log-level", "loud", "classify", testChannelID)
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
