// Package i18n implements the merge and language-resolution rules for the
// per-language text maps carried by content records.
package i18n

import "sort"

// Merge returns current with every key present in incoming overwritten by the
// incoming value. Keys absent from incoming are preserved; languages are
// never deleted. A nil current is treated as an empty map.
func Merge(current, incoming map[string]string) map[string]string {
	merged := make(map[string]string, len(current)+len(incoming))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// Resolved is a display text picked for a language, or empty when no content
// is available at all.
type Resolved struct {
	Text string
	Lang string
	OK   bool
}

// Resolve picks the best display text for the requested language.
// Precedence: requested-language override, then the scalar field when the
// requested language matches sourceLang, then the scalar as implicit
// fallback, then the first non-empty override in language order, then
// nothing.
func Resolve(requested, sourceLang, scalar string, overrides map[string]string) Resolved {
	if requested != "" {
		if text, ok := overrides[requested]; ok && text != "" {
			return Resolved{Text: text, Lang: requested, OK: true}
		}
		if requested == sourceLang && scalar != "" {
			return Resolved{Text: scalar, Lang: sourceLang, OK: true}
		}
	}
	if scalar != "" {
		return Resolved{Text: scalar, Lang: sourceLang, OK: true}
	}
	langs := make([]string, 0, len(overrides))
	for lang := range overrides {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if text := overrides[lang]; text != "" {
			return Resolved{Text: text, Lang: lang, OK: true}
		}
	}
	return Resolved{}
}
