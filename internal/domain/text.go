package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CollapseSpaces обрезает края и схлопывает повторяющиеся пробелы
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeAddress приводит адрес к виду "Rizal Street 12": первые буквы слов заглавные,
// остальные буквы сохраняются (аббревиатуры вроде "NLEX" не портятся)
func NormalizeAddress(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(CollapseSpaces(s))
}

// NormalizeServiceName приводит название услуги к виду "Wash & Fold"
func NormalizeServiceName(s string) string {
	return cases.Title(language.Und).String(CollapseSpaces(s))
}

// StartsWithUpper сообщает, начинается ли строка с заглавной буквы
func StartsWithUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// RuneLen длина строки в символах
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
