package stats

import "strings"

// Labels are weekday names, Monday first.
type Labels [7]string

var (
	englishLabels = Labels{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	germanLabels  = Labels{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}
)

// LabelsFor returns the weekday labels for a locale. Unknown locales fall back to English.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "de", "de-de", "de_de":
		return germanLabels
	default:
		return englishLabels
	}
}
