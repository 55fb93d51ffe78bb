package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source sheets mix Swiss and anglo number formats, so parsing is deliberately
// tolerant: anything that cannot be read resolves to an absent value instead of
// failing the row.

// ParseDecimal reads a locale-mixed amount cell. Apostrophe and space thousands
// separators are stripped and a decimal comma becomes a decimal point. Empty or
// unparsable input yields nil.
func ParseDecimal(value string) *float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return nil
	}
	cleaned = strings.NewReplacer("'", "", " ", "", ",", ".").Replace(cleaned)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

// dateLayouts are tried in order; all are day-first where ambiguous.
var dateLayouts = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate reads a day-first date cell. The pandas placeholders "NaT" and
// "nan" count as blank. Unparsable input yields nil, never an error.
func ParseDate(value string) *time.Time {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "NaT" || cleaned == "nan" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

// CleanString trims a cell value.
func CleanString(value string) string {
	return strings.TrimSpace(value)
}

// CollapseDescription joins up to three description fragments with ", ",
// skipping empties. The result may be an empty string.
func CollapseDescription(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if cleaned := CleanString(fragment); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, ", ")
}
