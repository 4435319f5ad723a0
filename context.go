package goPassCheck

import "context"

type localeContextKey struct{}

// WithLocale attaches a BCP 47 locale tag to ctx. [Engine.CheckPassword]
// formats the "found" occurrence count with it, overriding the engine-wide
// [MessagesConfig.Locale] for that call. Unparsable tags fall back to the
// engine default.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

func localeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
