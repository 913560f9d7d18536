package fonts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.TTF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "Mono.otf"))

	got, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "Mono.otf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDir = %q, want %q", got, want)
	}

	if got, err := ScanDir(filepath.Join(dir, "missing")); err != nil || len(got) != 0 {
		t.Errorf("missing dir = %q, %v", got, err)
	}
}

func TestSearchCandidates(t *testing.T) {
	got := SearchCandidates("Inter/Inter-Regular.ttf")
	want := []string{"Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchCandidates = %q, want %q", got, want)
	}
}

func TestFindInPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Open_Sans", "OpenSans-Bold.ttf"))
	touch(t, filepath.Join(dir, "Open_Sans", "OpenSans-Regular.ttf"))

	got, err := FindIn([]string{dir}, "Open Sans")
	if err != nil {
		t.Fatalf("FindIn: %v", err)
	}
	if filepath.Base(got) != "OpenSans-Regular.ttf" {
		t.Errorf("FindIn = %q", got)
	}

	// A wrong file name still resolves by family.
	got, err = FindIn([]string{dir}, "OpenSans-Light.ttf")
	if err != nil || filepath.Base(got) != "OpenSans-Regular.ttf" {
		t.Errorf("FindIn by family = %q, %v", got, err)
	}

	if _, err := FindIn([]string{dir}, "Inter"); !os.IsNotExist(err) {
		t.Errorf("FindIn(Inter) err = %v, want not exist", err)
	}
}
