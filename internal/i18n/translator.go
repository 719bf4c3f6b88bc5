package i18n

import (
	"fmt"

	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator renders message keys in a guild's language
type Translator struct {
	known    map[string]struct{}
	printers map[valueobjects.Language]*message.Printer
	fallback *message.Printer
}

// NewTranslator builds the English and Korean catalogs
func NewTranslator() (*Translator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	locales := map[valueobjects.Language]map[string]string{
		valueobjects.LanguageEnglish: english,
		valueobjects.LanguageKorean:  korean,
	}

	t := &Translator{
		known:    make(map[string]struct{}, len(english)),
		printers: make(map[valueobjects.Language]*message.Printer, len(locales)),
	}

	for lang, messages := range locales {
		tag := lang.Tag()
		for key, msg := range messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", lang, key, err)
			}
			t.known[key] = struct{}{}
		}
	}

	for lang := range locales {
		t.printers[lang] = message.NewPrinter(lang.Tag(), message.Catalog(builder))
	}
	t.fallback = t.printers[valueobjects.DefaultLanguage]

	return t, nil
}

// Text returns the message for key in lang, formatted with args
func (t *Translator) Text(lang valueobjects.Language, key string, args ...interface{}) string {
	if _, ok := t.known[key]; !ok {
		return fmt.Sprintf("Failed to load translated message %q", key)
	}

	printer, ok := t.printers[lang]
	if !ok {
		printer = t.fallback
	}
	return printer.Sprintf(key, args...)
}
