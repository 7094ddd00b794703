package client

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsContainScript(t *testing.T) {
	data, err := fs.ReadFile(Assets(), Script)
	if err != nil {
		t.Fatalf("read %s: %v", Script, err)
	}
	for _, want := range []string{"phx_join", "lv-click", "lv-input", "lv-submit", "data-slot"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("%s does not handle %q", Script, want)
		}
	}
}

func TestHandler(t *testing.T) {
	h := http.StripPrefix("/_live/", Handler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/_live/"+Script, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Errorf("content type = %q", ct)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/_live/missing.js", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d", rec.Code)
	}
}
