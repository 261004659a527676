package session

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
)

// IdentityHandlerFunc es un handler que recibe la identidad como argumento.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, identity Identity)

// ErrorUnauthenticated indica que el request no trae una sesión válida.
var ErrorUnauthenticated = errors.New("unauthenticated")

// TokenParser es lo que el Authenticator necesita del Manager.
type TokenParser interface {
	Parse(tokenString string) (Identity, error)
}

// Authenticator resuelve la sesión del header Authorization.
type Authenticator struct {
	tokens   TokenParser
	denylist Denylist
	logger   *zap.Logger
}

// NewAuthenticator crea un Authenticator.
func NewAuthenticator(tokens TokenParser, denylist Denylist, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, denylist: denylist, logger: logger}
}

// Resolve devuelve la identidad del request o ErrorUnauthenticated.
// Otros errores (Redis caído) se devuelven tal cual.
func (authenticator *Authenticator) Resolve(request *http.Request) (Identity, error) {
	tokenString, ok := bearerToken(request)
	if !ok {
		return Identity{}, ErrorUnauthenticated
	}

	identity, err := authenticator.tokens.Parse(tokenString)
	if err != nil {
		return Identity{}, ErrorUnauthenticated
	}

	revoked, err := authenticator.denylist.IsRevoked(request.Context(), identity.TokenID)
	if err != nil {
		return Identity{}, err
	}
	if revoked {
		return Identity{}, ErrorUnauthenticated
	}

	return identity, nil
}

// Require corta con 401 los requests sin sesión válida.
func (authenticator *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authenticator.resolveOrFail(w, r); !ok {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithIdentity adapta un IdentityHandlerFunc: resuelve la sesión y la pasa como argumento.
func (authenticator *Authenticator) WithIdentity(handler IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authenticator.resolveOrFail(w, r)
		if !ok {
			return
		}
		handler(w, r, identity)
	}
}

// Peek resuelve la sesión si existe, sin exigirla.
func (authenticator *Authenticator) Peek(r *http.Request) (Identity, bool) {
	identity, err := authenticator.Resolve(r)
	if err != nil {
		return Identity{}, false
	}
	return identity, true
}

func (authenticator *Authenticator) resolveOrFail(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	identity, err := authenticator.Resolve(r)
	if err == nil {
		return identity, true
	}

	if errors.Is(err, ErrorUnauthenticated) {
		httpx.Fail(w, r, http.StatusUnauthorized, "unauthorized", "authentication required")
		return Identity{}, false
	}

	authenticator.logger.Error("session lookup failed",
		zap.Error(err),
		zap.String("request_id", httpx.RequestIDFrom(r)))
	httpx.Fail(w, r, http.StatusServiceUnavailable, "session_unavailable", "session store is not reachable")
	return Identity{}, false
}

func bearerToken(request *http.Request) (string, bool) {
	header := strings.TrimSpace(request.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
