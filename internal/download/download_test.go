package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/world.svg": true,
		"HTTP://example.com/a":          true,
		"assets/map/world.svg":          false,
		"ftp://example.com/a.svg":       false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDownloadSavesSVG(t *testing.T) {
	const body = `<svg viewBox="0 0 10 10"><path d="M0 0H5V5Z"/></svg>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "maps")
	path, err := Download(context.Background(), srv.URL+"/maps/world-map.svg?v=2", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "world-map.svg" {
		t.Errorf("saved as %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Errorf("body = %q", got)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".part-") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestDownloadUsesContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="countries.svg"`)
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	path, err := Download(context.Background(), srv.URL+"/get", t.TempDir())
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "countries.svg" {
		t.Errorf("saved as %q", path)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	if _, err := Download(context.Background(), srv.URL+"/missing.svg", dir); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want HTTP 404", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files written on error: %v", entries)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":               "download",
		"..":             "download",
		"world map (v2)": "world_map_v2_",
		"ok-name_1.svg":  "ok-name_1.svg",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
