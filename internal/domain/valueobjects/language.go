package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language selects the locale used for guild replies. Values are persisted as integer codes.
type Language int32

const (
	LanguageEnglish Language = 0
	LanguageKorean  Language = 1
)

// DefaultLanguage is used for guilds without an explicit choice
const DefaultLanguage = LanguageEnglish

var languageTags = map[Language]language.Tag{
	LanguageEnglish: language.English,
	LanguageKorean:  language.Korean,
}

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.Korean})

// String returns the string representation
func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageKorean:
		return "Korean"
	}
	return fmt.Sprintf("Language(%d)", int32(l))
}

// IsValid checks if the language is known
func (l Language) IsValid() bool {
	_, ok := languageTags[l]
	return ok
}

// Tag returns the BCP-47 tag, falling back to English for unknown codes
func (l Language) Tag() language.Tag {
	if tag, ok := languageTags[l]; ok {
		return tag
	}
	return language.English
}

// ParseLanguage accepts a display name ("Korean") or any BCP-47 tag ("ko-KR")
func ParseLanguage(input string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "english":
		return LanguageEnglish, nil
	case "korean", "한국어":
		return LanguageKorean, nil
	}

	tag, err := language.Parse(input)
	if err != nil {
		return DefaultLanguage, fmt.Errorf("unknown language %q: %w", input, err)
	}

	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage, fmt.Errorf("unsupported language %q", input)
	}
	if index == 1 {
		return LanguageKorean, nil
	}
	return LanguageEnglish, nil
}
