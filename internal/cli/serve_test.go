package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "ws-42-p4.csv", sessionsCSV)
	logger := newLogger(&bytes.Buffer{}, log.DebugLevel)
	s := &server{
		logger:   logger,
		runner:   pipeline.NewRunner(logger),
		dataDir:  dir,
		registry: deadline.Default(),
		variants: chart.DefaultVariants(),
	}
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts, dir
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	return resp, buf.Bytes()
}

func TestServeChart(t *testing.T) {
	ts, _ := testServer(t)

	tests := []struct {
		query       string
		contentType string
	}{
		{"data=ws-42-p4.csv", "image/svg+xml"},
		{"data=ws-42-p4.csv&format=png", "image/png"},
		{"data=ws-42-p4.csv&format=json&variant=skyline-launches", "application/json"},
		{"data=ws-42-p4.csv&variant=area", "image/svg+xml"},
		{"data=ws-42-p4.csv&window=off&grace_days=1", "image/svg+xml"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/charts/Fall%202016/assignment3?"+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if resp.Header.Get("X-Run-ID") == "" {
				t.Error("missing X-Run-ID")
			}
			if len(body) == 0 {
				t.Error("empty body")
			}
		})
	}
}

func TestServeChartErrors(t *testing.T) {
	ts, _ := testServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"no data", "/charts/fall2016/assignment3", http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"traversal", "/charts/fall2016/assignment3?data=../secret.csv", http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"absolute", "/charts/fall2016/assignment3?data=/etc/passwd", http.StatusBadRequest, errors.ErrCodeInvalidPath},
		{"missing file", "/charts/fall2016/assignment3?data=nope.csv", http.StatusNotFound, errors.ErrCodeDataSource},
		{"unknown assignment", "/charts/fall2016/assignment9?data=ws-42-p4.csv", http.StatusNotFound, errors.ErrCodeDeadlineNotFound},
		{"bad format", "/charts/fall2016/assignment3?data=ws-42-p4.csv&format=gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad grace", "/charts/fall2016/assignment3?data=ws-42-p4.csv&grace_days=x", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown variant", "/charts/fall2016/assignment3?data=ws-42-p4.csv&variant=nope", http.StatusBadRequest, errors.ErrCodeInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorBody
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if e.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestServeListings(t *testing.T) {
	ts, _ := testServer(t)

	resp, body := get(t, ts.URL+"/deadlines")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var table deadline.Table
	if err := json.Unmarshal(body, &table); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Lookup("spring2016", "assignment4"); !ok {
		t.Error("deadlines missing spring2016/assignment4")
	}

	resp, body = get(t, ts.URL+"/variants")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var vs chart.Variants
	if err := json.Unmarshal(body, &vs); err != nil {
		t.Fatal(err)
	}
	if len(vs) != 3 {
		t.Errorf("variants = %d, want 3", len(vs))
	}

	resp, body = get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Server"); got != buildinfo.Product() {
		t.Errorf("Server header = %q, want %q", got, buildinfo.Product())
	}
}

type recordingHTTPHooks struct {
	mu    sync.Mutex
	calls []string
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, fmt.Sprintf("%s %s %d", method, route, status))
}

func TestServeHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts, _ := testServer(t)
	get(t, ts.URL+"/charts/fall2016/assignment3?data=ws-42-p4.csv")
	get(t, ts.URL+"/charts/fall2016/assignment9?data=ws-42-p4.csv")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := "GET /charts/{term}/{assignment} 200,GET /charts/{term}/{assignment} 404"
	if got := strings.Join(hooks.calls, ","); got != want {
		t.Errorf("hook calls = %q, want %q", got, want)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidKey, "bad"), http.StatusBadRequest},
		{errors.Wrap(errors.ErrCodeMalformedRecord, fmt.Errorf("x"), "record 1"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeEmptyDataset, "empty"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeUnsupported, "pdf"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "boom"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
