package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sternrassler/chute-client/internal/testutil"
)

func setupCLI(t *testing.T) *testutil.MockAPI {
	t.Helper()

	mock := testutil.NewMockAPI()
	t.Cleanup(mock.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CHUTE_API_URL", mock.URL())
	t.Setenv("CHUTE_RECEIPT_BACKEND", "pebble")
	t.Setenv("CHUTE_PEBBLE_PATH", filepath.Join(dir, "receipts"))
	t.Setenv("CHUTE_LOG_LEVEL", "error")
	t.Setenv("CHUTE_LOG_PRETTY", "false")

	return mock
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, args, &stdout, &stderr)
	return stdout.String(), err
}

func TestAssetsCommand(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 5)

	out, err := runCLI(t, "assets", "abc", "--per-page", "3", "--pages", "2")
	if err != nil {
		t.Fatalf("assets error = %v", err)
	}

	for _, shortcut := range []string{"a5", "a4", "a3", "a2", "a1"} {
		if !strings.Contains(out, shortcut) {
			t.Errorf("output missing %s:\n%s", shortcut, out)
		}
	}
	if !strings.Contains(out, "5 assets, mode cursor, more: exhausted") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if mock.RequestCount() != 2 {
		t.Errorf("requests = %d, want 2", mock.RequestCount())
	}
}

func TestAssetsCommand_PageNumberMode(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 6)

	out, err := runCLI(t, "assets", "abc", "--sort", "hearts", "--page", "2", "--per-page", "2")
	if err != nil {
		t.Fatalf("assets error = %v", err)
	}
	if !strings.Contains(out, "2 assets, mode page") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	last, _ := mock.LastRequest()
	if last.Query.Get("page") != "2" || last.Query.Get("sort") != "hearts" {
		t.Errorf("query = %v", last.Query)
	}
}

func TestAssetsCommand_UnknownAlbum(t *testing.T) {
	setupCLI(t)

	if _, err := runCLI(t, "assets", "missing"); err == nil {
		t.Error("assets on unknown album should fail")
	}
}

func TestAssetCommand(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 3)

	out, err := runCLI(t, "asset", "abc", "a2")
	if err != nil {
		t.Fatalf("asset error = %v", err)
	}

	var got struct {
		Shortcut string `json:"shortcut"`
		Album    string `json:"album"`
		Hearted  bool   `json:"hearted"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Shortcut != "a2" || got.Album != "abc" || got.Hearted {
		t.Errorf("asset = %+v", got)
	}
}

func TestHeartCommand_TogglePersists(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 3)

	out, err := runCLI(t, "heart", "abc", "a3")
	if err != nil {
		t.Fatalf("first heart error = %v", err)
	}
	if !strings.Contains(out, "abc/a3: liked (1 hearts)") {
		t.Errorf("first heart output = %q", out)
	}
	if mock.HeartCount() != 1 {
		t.Errorf("server hearts = %d, want 1", mock.HeartCount())
	}

	out, err = runCLI(t, "heart", "abc", "a3", "--status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if !strings.Contains(out, "liked") || strings.Contains(out, "not liked") {
		t.Errorf("status output = %q", out)
	}

	out, err = runCLI(t, "heart", "abc", "a3")
	if err != nil {
		t.Fatalf("second heart error = %v", err)
	}
	if !strings.Contains(out, "abc/a3: not liked (0 hearts)") {
		t.Errorf("second heart output = %q", out)
	}
	if mock.HeartCount() != 0 {
		t.Errorf("server hearts = %d, want 0", mock.HeartCount())
	}
}

func TestHeartCommand_RemoveWithoutReceipt(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 1)

	_, err := runCLI(t, "heart", "abc", "a1", "--remove")
	if err == nil || !strings.Contains(err.Error(), "not hearted") {
		t.Errorf("heart --remove error = %v, want not hearted", err)
	}
}

func TestWatchCommand(t *testing.T) {
	mock := setupCLI(t)

	var calls atomic.Int32
	mock.SetHandler("/albums/abc/assets", func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.Write([]byte(`{"data": [{"chute_asset_id": 5, "shortcut": "old5"}, {"chute_asset_id": 4, "shortcut": "old4"}]}`))
		default:
			if r.URL.Query().Get("since_id") != "5" {
				http.Error(w, `{"error": "expected since_id=5"}`, http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"data": [{"chute_asset_id": 6, "shortcut": "new6"}]}`))
		}
	})

	out, err := runCLI(t, "watch", "abc", "--interval", "10ms", "--ticks", "1")
	if err != nil {
		t.Fatalf("watch error = %v", err)
	}
	if !strings.Contains(out, "old5") || !strings.Contains(out, "1 new assets") || !strings.Contains(out, "new6") {
		t.Errorf("watch output:\n%s", out)
	}
}

func TestWatchCommand_InvalidInterval(t *testing.T) {
	mock := setupCLI(t)
	mock.SeedAlbum("abc", 2)

	for _, interval := range []string{"0s", "-1s"} {
		t.Run(interval, func(t *testing.T) {
			_, err := runCLI(t, "watch", "abc", "--interval="+interval, "--ticks", "1")
			if err == nil || !strings.Contains(err.Error(), "interval must be positive") {
				t.Errorf("watch --interval %s error = %v, want interval error", interval, err)
			}
		})
	}
	if n := mock.RequestCount(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestRootCommand(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"help", []string{"--help"}, false},
		{"version", []string{"--version"}, false},
		{"unknown command", []string{"nope"}, true},
		{"missing args", []string{"asset", "abc"}, true},
		{"bad log level", []string{"--log-level", "chatty", "assets", "abc"}, true},
		{"exclusive flags", []string{"heart", "abc", "a1", "--remove", "--status"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("run(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}
