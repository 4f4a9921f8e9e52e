package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-superjob-automation/internal/superjob"
)

// normalizeText lowercases and strips combining marks so "менеджéр" and
// "менеджер" compare equal. The chain is built per call, it carries state.
func normalizeText(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Excluded reports whether the vacancy's title or company mentions any of
// the exclude keywords. Matching is case and diacritic insensitive.
func Excluded(v superjob.Vacancy, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}

	text := normalizeText(v.Title + " " + v.Company)
	for _, word := range excludes {
		word = normalizeText(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// BelowMinSalary reports whether the vacancy's stated salary ceiling falls
// under the minimum. Vacancies without salary data always pass.
func BelowMinSalary(v superjob.Vacancy, minimum int) bool {
	if minimum <= 0 {
		return false
	}

	ceiling := v.SalaryMax
	if ceiling == 0 {
		ceiling = v.SalaryMin
	}
	if ceiling == 0 {
		return false
	}
	return ceiling < minimum
}
