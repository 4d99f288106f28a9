package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/2beens/fitsuggest/internal/telemetry/tracing"
	"github.com/2beens/fitsuggest/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const APIKeyHeader = "X-API-KEY"

type AuthMiddlewareHandler struct {
	apiKeyHash   string
	allowedPaths map[string]bool
	// bcrypt is slow, keys that matched once are remembered
	verifiedKeys sync.Map
}

// NewAuthMiddlewareHandler checks the X-API-KEY header against a bcrypt hash.
// An empty hash disables the check.
func NewAuthMiddlewareHandler(apiKeyHash string) *AuthMiddlewareHandler {
	if apiKeyHash == "" {
		log.Warnln("auth middleware: api key hash not set, all requests are allowed")
	}
	return &AuthMiddlewareHandler{
		apiKeyHash: apiKeyHash,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
	}
}

func (h *AuthMiddlewareHandler) keyIsValid(apiKey string) bool {
	if _, ok := h.verifiedKeys.Load(apiKey); ok {
		return true
	}
	if !pkg.CheckAPIKeyHash(apiKey, h.apiKeyHash) {
		return false
	}
	h.verifiedKeys.Store(apiKey, struct{}{})
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiKeyHash == "" || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			apiKey := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if apiKey == "" {
				log.Tracef("[missing api key] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-api-key")
				return
			}

			if !h.keyIsValid(apiKey) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid api key] [auth middleware] unauthorized => %s from %s", r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-api-key")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
