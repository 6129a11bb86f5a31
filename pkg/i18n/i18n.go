// Package i18n resolves message keys into localized text.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a full catalog.
var Supported = []language.Tag{language.English, language.Spanish}

// Resolver formats catalog messages in the language negotiated from an
// Accept-Language header.
type Resolver struct {
	supported []language.Tag
	matcher   language.Matcher
	printers  map[language.Tag]*message.Printer
}

// NewResolver builds a resolver that falls back to defaultLanguage.
func NewResolver(defaultLanguage string) (*Resolver, error) {
	fallback, err := language.Parse(defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLanguage, err)
	}

	// The matcher prefers the first tag when nothing matches.
	supported := []language.Tag{fallback}
	for _, tag := range Supported {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translations := range messages {
		for tag, text := range translations {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}

	r := &Resolver{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		printers:  make(map[language.Tag]*message.Printer, len(supported)),
	}
	for _, tag := range supported {
		r.printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}
	return r, nil
}

// Match returns the supported language best matching an Accept-Language header.
func (r *Resolver) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.supported[0]
	}
	_, index, confidence := r.matcher.Match(tags...)
	if confidence == language.No {
		return r.supported[0]
	}
	return r.supported[index]
}

// Message resolves key with args in the given language. Unknown keys resolve
// to a generic placeholder message.
func (r *Resolver) Message(tag language.Tag, key string, args ...string) string {
	printer, ok := r.printers[tag]
	if !ok {
		printer = r.printers[r.supported[0]]
	}
	if _, known := messages[key]; !known {
		key = KeyMessageNotFound
	}

	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return printer.Sprintf(key, values...)
}
