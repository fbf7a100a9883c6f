package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePathCommand(t *testing.T) {
	cacheHome := isolate(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want := filepath.Join(cacheHome, appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCachePathFromEnvironment(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("NESTEDHEADERS_CACHE_DIR", dir)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("NESTEDHEADERS_CACHE_DIR", dir)

	for _, name := range []string{"a", filepath.Join("sub", "b")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after clear, has %d entries", len(entries))
	}
}

func TestNewCacheFallsBackToFile(t *testing.T) {
	isolate(t)
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	cc, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer cc.Close()
	if got := typeName(cc); got != "*cache.FileCache" {
		t.Errorf("newCache() = %s, want *cache.FileCache", got)
	}

	c.Config.Cache.RedisURL = "redis://localhost:6379/0"
	cc, err = c.newCache(false)
	if err != nil {
		t.Fatalf("newCache() with redis error: %v", err)
	}
	defer cc.Close()
	if got := typeName(cc); got != "*cache.RedisCache" {
		t.Errorf("newCache() = %s, want *cache.RedisCache", got)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
