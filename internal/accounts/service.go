package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Lelo88/backoffice-api-golang/internal/session"
	"github.com/Lelo88/backoffice-api-golang/internal/validation"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput       = errors.New("invalid input")
	ErrorDuplicateUsername  = errors.New("duplicate username")
	ErrorNotFound           = errors.New("user not found")
	ErrorInvalidCredentials = errors.New("invalid credentials")
)

const maxPasswordBytes = 72

// ValidationError lleva el detalle por campo. errors.Is(err, ErrorInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", validationError.Fields)
}

func (validationError *ValidationError) Unwrap() error {
	return ErrorInvalidInput
}

// RepositoryAPI define lo que el service necesita de persistencia.
type RepositoryAPI interface {
	Insert(ctx context.Context, username, email, passwordHash string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// TokenIssuer emite tokens de sesión.
type TokenIssuer interface {
	Issue(userID, username string) (string, session.Identity, error)
}

// Revoker invalida tokens antes de que expiren.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// Service contiene registro, login y logout.
type Service struct {
	repository RepositoryAPI
	tokens     TokenIssuer
	revoker    Revoker
	validate   *validator.Validate
	logger     *zap.Logger
	hashCost   int
	now        func() time.Time
}

// NewService crea un service de cuentas.
func NewService(repository RepositoryAPI, tokens TokenIssuer, revoker Revoker, logger *zap.Logger) *Service {
	return &Service{
		repository: repository,
		tokens:     tokens,
		revoker:    revoker,
		validate:   validation.New(),
		logger:     logger,
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Register valida el formulario y crea la cuenta con la contraseña hasheada.
func (service *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	fields := validation.Fields(service.validate.Struct(input))
	if _, exists := fields["password1"]; !exists {
		// bcrypt limita por bytes, no por caracteres.
		switch {
		case len(input.Password1) > maxPasswordBytes:
			fields = setField(fields, "password1", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
		case isNumeric(input.Password1):
			fields = setField(fields, "password1", "must not be entirely numeric")
		}
	}
	if len(fields) > 0 {
		return User{}, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password1), service.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := service.repository.Insert(ctx, input.Username, input.Email, string(hash))
	if err != nil {
		if errors.Is(err, ErrorDuplicateUsername) {
			return User{}, ErrorDuplicateUsername
		}
		return User{}, err
	}

	service.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifica credenciales y emite un token.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (service *Service) Login(ctx context.Context, credentials Credentials) (LoginResult, error) {
	username := strings.TrimSpace(credentials.Username)
	if username == "" || credentials.Password == "" {
		return LoginResult{}, ErrorInvalidCredentials
	}

	user, err := service.repository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			service.logger.Debug("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
			return LoginResult{}, ErrorInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		service.logger.Debug("login failed", zap.String("username", username), zap.String("reason", "wrong password"))
		return LoginResult{}, ErrorInvalidCredentials
	}

	token, identity, err := service.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: identity.ExpiresAt,
		Username:  user.Username,
		Message:   fmt.Sprintf("Welcome, %s! You are now logged in.", user.Username),
	}, nil
}

// Logout revoca el token de la sesión actual hasta su expiración.
func (service *Service) Logout(ctx context.Context, identity session.Identity) error {
	ttl := identity.ExpiresAt.Sub(service.now())
	if err := service.revoker.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	service.logger.Info("user logged out", zap.String("user_id", identity.UserID))
	return nil
}

func setField(fields map[string]string, name, message string) map[string]string {
	if fields == nil {
		fields = map[string]string{}
	}
	fields[name] = message
	return fields
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
