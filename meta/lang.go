package meta

import (
	"context"
	"strings"
	"sync"
)

var (
	messagesOnce  sync.Once                    //nolint:gochecknoglobals // ensures SetMessages is applied once
	messages      map[string]map[string]string //nolint:gochecknoglobals // locale -> error code -> template
	defaultLocale string                       //nolint:gochecknoglobals // fallback locale
)

// SetMessages registers per-locale message templates keyed by error code and
// the fallback locale. This should be called once at application startup;
// subsequent calls are ignored.
//
// Templates may contain {name} placeholders which Localize fills from the
// error's interpolation arguments.
func SetMessages(m map[string]map[string]string, defLocale string) {
	messagesOnce.Do(func() {
		messages = m
		defaultLocale = defLocale
	})
}

// Localize renders the boundary-facing message for a stable error code.
// It falls back to the default locale when the requested locale has no
// template, and to the code itself when no template exists at all.
func Localize(code, locale string, args map[string]string) string {
	if locale == "" {
		locale = defaultLocale
	}

	tmpl := lookupTemplate(code, locale)
	if tmpl == "" {
		return code
	}

	for k, v := range args {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", v)
	}
	return tmpl
}

// LocalizeCtx renders the message using the locale carried in the context.
func LocalizeCtx(ctx context.Context, code string, args map[string]string) string {
	return Localize(code, Find(ctx, Locale), args)
}

func lookupTemplate(code, locale string) string {
	if m, ok := messages[locale]; ok {
		if tmpl, ok := m[code]; ok {
			return tmpl
		}
	}
	if m, ok := messages[defaultLocale]; ok {
		return m[code]
	}
	return ""
}
