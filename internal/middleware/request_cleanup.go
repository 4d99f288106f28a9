package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes caps how much of an unread body is drained; the rest is dropped with the connection.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what the handler left unread, so the connection can be reused, and closes the body.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
