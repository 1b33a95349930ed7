package middleware

import (
	"context"
	"net/http"
)

type settingsKey string

const (
	// PrettyKey is the key for the pretty output setting in the request context.
	PrettyKey settingsKey = "pretty"
)

// SettingsMiddleware checks for a "pretty=true" query parameter and sets a
// corresponding flag in the request context, making JSON responses indented
// for reading in a browser or terminal.
func SettingsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pretty := r.URL.Query().Get("pretty") == "true"
		ctx := context.WithValue(r.Context(), PrettyKey, pretty)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsPretty returns true if the pretty output flag is set in the request context.
func IsPretty(ctx context.Context) bool {
	pretty, ok := ctx.Value(PrettyKey).(bool)
	return ok && pretty
}
