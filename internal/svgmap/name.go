package svgmap

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName returns the label shown for the path: its name attribute or title,
// falling back to the id with separators turned into spaces ("south_africa" -> "South Africa").
func (p Path) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	id := strings.NewReplacer("_", " ", "-", " ").Replace(p.ID)
	return cases.Title(language.English).String(strings.TrimSpace(id))
}
