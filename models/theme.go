package models

// Theme names one of the export styling profiles. A theme only changes
// surface styling (colors), never the page layout.
type Theme string

const (
	ThemeSimple   Theme = "simple"
	ThemeModerate Theme = "moderate"
	ThemeFancy    Theme = "fancy"
)

// ValidTheme reports whether t names a known theme.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeSimple, ThemeModerate, ThemeFancy:
		return true
	}
	return false
}
