package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imgrooty/roi-calculator/internal/config"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "roicalc 1.2.3 (commit abc, built today") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roicalc.yaml")

	if _, err := run(t, "config", "init", path); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "config", "init", path); err == nil {
		t.Error("init overwrote an existing file without --force")
	}
	if _, err := run(t, "config", "init", "--force", path); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := run(t, "config", "show", "--config", path, "--theme", "cyberpunk")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"address: :8080", "theme: cyberpunk", "kind: simulated"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowRejectsBadTheme(t *testing.T) {
	_, err := run(t, "config", "show", "--theme", "vaporwave")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestRecordAndList(t *testing.T) {
	t.Setenv("ROICALC_RECORDER_PATH", filepath.Join(t.TempDir(), "journal.db"))

	out, err := run(t, "record", "--recorder", "journal", "--revenue", "2000", "--cost", "5000", "--email", "ada@example.com")
	if err != nil {
		t.Fatalf("record: %v\n%s", err, out)
	}
	if !strings.Contains(out, "-$3,000") {
		t.Errorf("record output:\n%s", out)
	}

	out, err = run(t, "entries", "--recorder", "journal", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var stored []recorder.Stored
	if err := json.Unmarshal([]byte(out), &stored); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(stored) != 1 || stored[0].Email != "ada@example.com" || stored[0].ROI != -3000 {
		t.Errorf("stored = %+v", stored)
	}

	out, err = run(t, "entries", "--recorder", "journal")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ada@example.com") || !strings.Contains(out, "$5,000") {
		t.Errorf("table:\n%s", out)
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	t.Setenv("ROICALC_RECORDER_PATH", filepath.Join(t.TempDir(), "journal.db"))

	out, err := run(t, "record", "--recorder", "journal", "--revenue", "0", "--cost", "1", "--email", "a@b.co")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	if !strings.Contains(out, "greater than 0") {
		t.Errorf("no field message in output:\n%s", out)
	}

	_, err = run(t, "record", "--recorder", "journal", "--revenue", "10", "--cost", "1", "--email", "nope")
	if !errors.Is(err, ErrRejected) {
		t.Errorf("bad email err = %v", err)
	}
}

func TestRecordStrictAmounts(t *testing.T) {
	t.Setenv("ROICALC_RECORDER_PATH", filepath.Join(t.TempDir(), "journal.db"))

	out, err := run(t, "record", "--recorder", "journal", "--revenue", "12abc", "--cost", "1", "--email", "a@b.co")
	if err != nil || !strings.Contains(out, "$11") {
		t.Fatalf("lenient record: %v\n%s", err, out)
	}

	_, err = run(t, "record", "--strict", "--recorder", "journal", "--revenue", "12abc", "--cost", "1", "--email", "a@b.co")
	if !errors.Is(err, ErrRejected) || !strings.Contains(err.Error(), "--revenue") {
		t.Errorf("strict err = %v", err)
	}
}

func TestEntriesNeedsLocalRecorder(t *testing.T) {
	_, err := run(t, "entries", "--recorder", "simulated")
	if err == nil || !strings.Contains(err.Error(), "keeps no entries") {
		t.Errorf("err = %v", err)
	}
}

func TestServerRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Recorder.Kind = recorder.KindJournal
	cfg.Recorder.Path = filepath.Join(t.TempDir(), "journal.db")

	srv, err := newServer(cfg, logging.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.recorder.Close() })

	tests := []struct {
		path string
		want string
	}{
		{"/", `data-slot="calculator"`},
		{"/?theme=cyberpunk", "skin-cyberpunk"},
		{"/_live/roicalc.js", "phx_join"},
		{"/healthz", ""},
		{"/readyz", ""},
		{"/metrics", "roicalc_live_sessions"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			body, _ := io.ReadAll(rec.Body)
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestMain(m *testing.M) {
	// config.Load picks up ./roicalc.yaml; run from an empty directory.
	dir, err := os.MkdirTemp("", "roicalc-commands")
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestServerRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Recorder.Kind = recorder.KindJournal
	cfg.Recorder.Path = filepath.Join(t.TempDir(), "journal.db")
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 2

	srv, err := newServer(cfg, logging.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.recorder.Close() })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}
