package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
	"github.com/Lelo88/backoffice-api-golang/internal/session"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	Register(ctx context.Context, input RegisterInput) (User, error)
	Login(ctx context.Context, credentials Credentials) (LoginResult, error)
	Logout(ctx context.Context, identity session.Identity) error
}

// SessionPeeker resuelve una sesión opcional.
type SessionPeeker interface {
	Peek(r *http.Request) (session.Identity, bool)
}

// Handler HTTP para cuentas.
type Handler struct {
	service  ServiceAPI
	sessions SessionPeeker
}

// NewHandler crea un handler de cuentas.
func NewHandler(service ServiceAPI, sessions SessionPeeker) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Register maneja POST /auth/register.
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		var validationError *ValidationError
		switch {
		case errors.As(err, &validationError):
			httpx.FailFields(writer, request, http.StatusBadRequest, "invalid_input", "registration failed, check the submitted data", validationError.Fields)
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "registration failed, check the submitted data")
		case errors.Is(err, ErrorDuplicateUsername):
			httpx.Fail(writer, request, http.StatusConflict, "conflict", "username already exists")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusCreated, map[string]any{
		"user":    user,
		"message": "Account created. Log in with your new username and password.",
	})
}

// Login maneja POST /auth/login.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var credentials Credentials
	if err := json.NewDecoder(request.Body).Decode(&credentials); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	result, err := handler.service.Login(request.Context(), credentials)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidCredentials):
			httpx.Fail(writer, request, http.StatusUnauthorized, "invalid_credentials", "wrong username or password, please try again")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, result)
}

// Logout maneja POST /auth/logout. Recibe la sesión actual como argumento.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request, identity session.Identity) {
	if err := handler.service.Logout(request.Context(), identity); err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// Root maneja GET /: redirige al dashboard si hay sesión, si no al login.
func (handler *Handler) Root(writer http.ResponseWriter, request *http.Request) {
	if _, ok := handler.sessions.Peek(request); ok {
		http.Redirect(writer, request, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(writer, request, "/auth/login", http.StatusFound)
}
