// Package fonts finds font files for the overlay by family name.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf"),
// sorted. Paths use forward slashes. A missing dir gives no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order: the term itself, its first path
// segment, the name before the first hyphen, and the name without its font extension.
// "Inter/Inter-Regular.ttf" -> ["Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"].
func SearchCandidates(pathOrName string) []string {
	pathOrName = strings.TrimSpace(pathOrName)
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	if isFont(pathOrName) {
		add(strings.TrimSuffix(pathOrName, filepath.Ext(pathOrName)))
	}
	return candidates
}

// FindIn searches dirs for a font file whose path matches search, trying each of
// SearchCandidates in turn. It returns the full path of the match. When several
// files match, one whose path contains "Regular" wins.
func FindIn(dirs []string, search string) (string, error) {
	for _, term := range SearchCandidates(search) {
		if full, ok := match(dirs, term); ok {
			return full, nil
		}
	}
	return "", os.ErrNotExist
}

// Find is FindIn over BaseDirs.
func Find(search string) (string, error) {
	return FindIn(BaseDirs(), search)
}

func match(dirs []string, term string) (string, bool) {
	norm := normalizeForMatch(term)
	if norm == "" {
		return "", false
	}
	var found []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				found = append(found, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(found) == 0 {
		return "", false
	}
	for _, f := range found {
		if strings.Contains(strings.ToLower(f), "regular") {
			return f, true
		}
	}
	return found[0], true
}
