package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "layout:abc", []byte(`[]`), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want a clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := Clear(ctx, c); err != nil {
		t.Errorf("Clear on a backend without Clearer should be a no-op: %v", err)
	}
}

func newTestFileCache(t *testing.T) (*FileCache, *time.Time) {
	t.Helper()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	if _, hit, err := c.Get(ctx, "layout:abc"); hit || err != nil {
		t.Fatalf("empty cache Get = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "layout:abc", []byte(`{"widgets":[]}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != `{"widgets":[]}` {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheLayout(t *testing.T) {
	c, _ := newTestFileCache(t)

	tests := []struct {
		key  string
		dirs string
	}{
		{"layout:abc", "layout"},
		{"render:abc", "render"},
		{"ops-team:layout:abc", filepath.Join("ops-team", "layout")},
		{"../../etc:layout:abc", filepath.Join("etc", "layout")},
		{"plain", ""},
	}
	for _, tt := range tests {
		rel, err := filepath.Rel(c.Dir(), c.path(tt.key))
		if err != nil {
			t.Fatal(err)
		}
		// rel is <dirs>/<aa>/<rest>.json
		got := filepath.Dir(filepath.Dir(rel))
		want := tt.dirs
		if want == "" {
			want = "."
		}
		if got != want {
			t.Errorf("path(%q) directories = %q, want %q", tt.key, got, want)
		}
		if strings.Contains(rel, "..") {
			t.Errorf("path(%q) = %q escapes the cache dir", tt.key, rel)
		}
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, now := newTestFileCache(t)

	if err := c.Set(ctx, "layout:k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "layout:k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	*now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "layout:k"); hit {
		t.Error("expired entry should be a miss")
	}
	if _, err := os.Stat(c.path("layout:k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}

	if err := c.Set(ctx, "layout:forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(24 * 365 * time.Hour)
	if _, hit, _ := c.Get(ctx, "layout:forever"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	path := c.path("layout:k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "layout:k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry file should be removed")
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	if err := c.Set(ctx, "layout:a", []byte("a"), 0); err != nil {
		t.Fatal(err)
	}
	// Copy a's entry to where b would live, as a hash collision would.
	raw, err := os.ReadFile(c.path("layout:a"))
	if err != nil {
		t.Fatal(err)
	}
	pathB := c.path("layout:b")
	if err := os.MkdirAll(filepath.Dir(pathB), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pathB, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "layout:b"); hit {
		t.Error("an entry stored under another key must not hit")
	}
}

func TestFileCacheNoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	for range 3 {
		if err := c.Set(ctx, "render:svg", []byte("<svg/>"), 0); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(filepath.Dir(c.path("render:svg")))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d files after rewriting one key, want 1", len(entries))
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	for _, k := range []string{"layout:a", "render:b", "team:layout:c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := Clear(ctx, c); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("cache dir should exist after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if h != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	x := 4

	tests := []struct {
		name string
		a, b LayoutKeyOpts
	}{
		{"columns", LayoutKeyOpts{Operation: "compact", Columns: 24}, LayoutKeyOpts{Operation: "compact", Columns: 12}},
		{"operation", LayoutKeyOpts{Operation: "compact", Columns: 24}, LayoutKeyOpts{Operation: "none", Columns: 24}},
		{"target", LayoutKeyOpts{Operation: "move", WidgetID: "a", Columns: 24}, LayoutKeyOpts{Operation: "move", WidgetID: "a", X: &x, Columns: 24}},
		{"packing", LayoutKeyOpts{Operation: "compact", Packing: "on"}, LayoutKeyOpts{Operation: "compact", Packing: "off"}},
	}
	for _, tt := range tests {
		if k.LayoutKey("h", tt.a) == k.LayoutKey("h", tt.b) {
			t.Errorf("%s: keys should differ", tt.name)
		}
	}

	opts := LayoutKeyOpts{Operation: "compact", Columns: 24, Packing: "on"}
	key := k.LayoutKey("h", opts)
	if !strings.HasPrefix(key, KindLayout+":") {
		t.Errorf("LayoutKey = %s, want layout: prefix", key)
	}
	if k.LayoutKey("h", opts) != key {
		t.Error("LayoutKey should be deterministic")
	}
	if k.LayoutKey("other", opts) == key {
		t.Error("different layouts should produce different keys")
	}

	svg := k.RenderKey("h", RenderKeyOpts{Format: "svg", ContainerWidth: 1200})
	txt := k.RenderKey("h", RenderKeyOpts{Format: "txt", ContainerWidth: 1200})
	if svg == txt {
		t.Error("different formats should produce different keys")
	}
	if !strings.HasPrefix(svg, KindRender+":") {
		t.Errorf("RenderKey = %s, want render: prefix", svg)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "ops")
	plain := NewDefaultKeyer()

	opts := LayoutKeyOpts{Operation: "compact"}
	if got, want := scoped.LayoutKey("h", opts), "ops:"+plain.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
	if got := scoped.RenderKey("h", RenderKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "ops:render:") {
		t.Errorf("RenderKey = %s, want ops:render: prefix", got)
	}
	if got := NewScopedKeyer(nil, "ops").LayoutKey("h", opts); !strings.HasPrefix(got, "ops:layout:") {
		t.Errorf("nil inner keyer: %s", got)
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should be nil")
	}
	err := transient(ErrBackend)
	if !IsTransient(err) {
		t.Error("wrapped error should be transient")
	}
	if !errors.Is(err, ErrBackend) {
		t.Error("transient error should unwrap to ErrBackend")
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("message = %q, want %q", err.Error(), ErrBackend.Error())
	}
	if IsTransient(ErrBackend) {
		t.Error("plain errors are not transient")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := backoff{attempts: 3, delay: time.Millisecond}
	permanent := errors.New("WRONGTYPE")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error", 5, permanent, 1, permanent},
		{"recovers", 1, transient(ErrBackend), 2, nil},
		{"exhausted", 5, transient(ErrBackend), 3, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := (backoff{}).do(ctx, func() error { return nil }); err != nil {
		t.Errorf("zero attempts should still call once: %v", err)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := defaultBackoff.do(ctx, func() error {
		return transient(ErrBackend)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
