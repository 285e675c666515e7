package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := FromMap(nil)
	if c.SearchDebounce() != 300*time.Millisecond {
		t.Fatalf("SearchDebounce() = %v", c.SearchDebounce())
	}
	if c.SearchMinChars() != 2 || c.SearchLimit() != 6 || c.RecentMax() != 6 {
		t.Fatalf("search defaults wrong")
	}
	if c.ToastVisible() != 2500*time.Millisecond || c.ToastExit() != 300*time.Millisecond || c.ToastMax() != 3 {
		t.Fatalf("toast defaults wrong")
	}
	if c.TMDBRevalidate() != time.Hour || c.OMDbRevalidate() != 24*time.Hour {
		t.Fatalf("revalidate defaults wrong")
	}
	if c.OMDbKey() != "42b62f24" {
		t.Fatalf("OMDbKey() = %q", c.OMDbKey())
	}
	if strings.HasPrefix(c.BasePath(), "~") {
		t.Fatalf("BasePath() not expanded: %q", c.BasePath())
	}
	if !strings.HasSuffix(c.BasePath(), ".abcinema.db") {
		t.Fatalf("BasePath() = %q", c.BasePath())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ABCINEMA_TMDB_KEY", "secret")
	t.Setenv("ABCINEMA_SEARCH_DEBOUNCE", "150ms")
	c := FromMap(nil)
	if c.TMDBKey() != "secret" {
		t.Fatalf("TMDBKey() = %q", c.TMDBKey())
	}
	if c.SearchDebounce() != 150*time.Millisecond {
		t.Fatalf("SearchDebounce() = %v", c.SearchDebounce())
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	c := FromMap(map[string]any{
		"toast.visible": "soon",
		"search.limit":  -1,
	})
	if c.ToastVisible() != 2500*time.Millisecond {
		t.Fatalf("ToastVisible() = %v", c.ToastVisible())
	}
	if c.SearchLimit() != 6 {
		t.Fatalf("SearchLimit() = %d", c.SearchLimit())
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "path: " + filepath.Join(dir, "db") + "\ntmdb:\n  rps: 5\n"
	if err := os.WriteFile(filepath.Join(dir, ".abcinema.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ABCINEMA_CONFIG_PATH", dir)
	chdir(t, dir)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("BasePath() = %q", c.BasePath())
	}
	if c.TMDBRPS() != 5 {
		t.Fatalf("TMDBRPS() = %d", c.TMDBRPS())
	}
}

func TestLoadWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ABCINEMA_CONFIG_PATH", dir)
	t.Setenv("HOME", dir)
	chdir(t, dir)
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestSet(t *testing.T) {
	c := FromMap(nil)
	c.Set("path", "/tmp/x")
	if c.BasePath() != "/tmp/x" {
		t.Fatalf("BasePath() = %q", c.BasePath())
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
