package middleware

import (
	"net/http"
	"strings"
)

type Middleware func(http.Handler) http.Handler

// Wrap applies mws to h; the last one ends up outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// StripPrefix serves h under prefix, e.g. when the app sits behind a proxy
// at APP_BASE_PATH. An empty prefix leaves h unchanged.
func StripPrefix(prefix string) Middleware {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(h http.Handler) http.Handler {
		if prefix == "" {
			return h
		}
		return http.StripPrefix(prefix, h)
	}
}
