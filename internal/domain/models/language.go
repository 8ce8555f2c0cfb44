package models

import "strings"

// DefaultLanguage is used when detection fails or no preference is given.
const DefaultLanguage = "en"

// DefaultLocale is the provider locale for unrecognised language codes.
const DefaultLocale = "en-IN"

// Language describes one supported display language.
type Language struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Locale      string `json:"locale"`
}

// SupportedLanguages is the fixed set of display languages, in menu order.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English", EnglishName: "English", Locale: "en-IN"},
	{Code: "hi", Name: "हिंदी", EnglishName: "Hindi", Locale: "hi-IN"},
	{Code: "bn", Name: "বাংলা", EnglishName: "Bengali", Locale: "bn-IN"},
	{Code: "ta", Name: "தமிழ்", EnglishName: "Tamil", Locale: "ta-IN"},
	{Code: "te", Name: "తెలుగు", EnglishName: "Telugu", Locale: "te-IN"},
	{Code: "mr", Name: "मराठी", EnglishName: "Marathi", Locale: "mr-IN"},
	{Code: "gu", Name: "ગુજરાતી", EnglishName: "Gujarati", Locale: "gu-IN"},
	{Code: "kn", Name: "ಕನ್ನಡ", EnglishName: "Kannada", Locale: "kn-IN"},
	{Code: "ml", Name: "മലയാളം", EnglishName: "Malayalam", Locale: "ml-IN"},
	{Code: "pa", Name: "ਪੰਜਾਬੀ", EnglishName: "Punjabi", Locale: "pa-IN"},
}

var languageByCode = func() map[string]Language {
	m := make(map[string]Language, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		m[lang.Code] = lang
	}
	return m
}()

// LocaleFor maps a language code to the provider locale code, matching on
// the base language. Unknown codes map to DefaultLocale.
func LocaleFor(code string) string {
	if lang, ok := languageByCode[BaseLanguage(code)]; ok {
		return lang.Locale
	}
	return DefaultLocale
}

// IsSupportedLanguage reports whether code is in SupportedLanguages.
func IsSupportedLanguage(code string) bool {
	_, ok := languageByCode[strings.ToLower(code)]
	return ok
}

// LanguageName returns the English name for a code, matching on the base
// language. Unknown codes are returned unchanged.
func LanguageName(code string) string {
	if lang, ok := languageByCode[BaseLanguage(code)]; ok {
		return lang.EnglishName
	}
	return code
}

// BaseLanguage strips the region from a code: "hi-IN" becomes "hi".
func BaseLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return code[:i]
	}
	return code
}

// SameLanguage compares two codes on their base language.
func SameLanguage(a, b string) bool {
	return BaseLanguage(a) == BaseLanguage(b)
}
