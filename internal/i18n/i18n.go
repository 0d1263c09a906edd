// Package i18n holds the display languages and the UI string table.
package i18n

import "fmt"

// Lang is a display language code.
type Lang string

const (
	EN Lang = "en"
	AR Lang = "ar"
)

// Default is the language used when nothing has been persisted.
const Default = EN

// Toggle switches between English and Arabic.
func (l Lang) Toggle() Lang {
	if l == AR {
		return EN
	}
	return AR
}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	return l == EN || l == AR
}

// ParseLang returns the language for s, or Default when s is unknown.
func ParseLang(s string) Lang {
	l := Lang(s)
	if !l.Valid() {
		return Default
	}
	return l
}

// T looks up key in the string table for lang. Missing Arabic strings fall
// back to English; unknown keys are returned as-is.
func T(lang Lang, key string) string {
	if lang == AR {
		if s, ok := arabic[key]; ok {
			return s
		}
	}
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

// Tf formats the string table entry for key with args.
func Tf(lang Lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
