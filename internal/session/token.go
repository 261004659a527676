package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "backoffice-api"

// ErrorInvalidToken se devuelve para cualquier token que no se pueda aceptar.
var ErrorInvalidToken = errors.New("invalid session token")

// Identity es el usuario autenticado de un request.
// Se pasa explícitamente a los handlers que la necesitan.
type Identity struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager firma y valida tokens de sesión (JWT HS256).
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager crea un Manager con la clave y duración de sesión dadas.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue genera un token para el usuario. Cada token lleva un jti único para poder revocarlo.
func (manager *Manager) Issue(userID, username string) (string, Identity, error) {
	now := manager.now()
	identity := Identity{
		UserID:    userID,
		Username:  username,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(manager.ttl).Truncate(time.Second),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.TokenID,
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
		Username: username,
	})

	signed, err := token.SignedString(manager.secret)
	if err != nil {
		return "", Identity{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, identity, nil
}

// Parse valida firma, issuer y expiración y devuelve la identidad del token.
func (manager *Manager) Parse(tokenString string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		return manager.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(manager.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrorInvalidToken, err)
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || tokenClaims.ID == "" || tokenClaims.Subject == "" {
		return Identity{}, ErrorInvalidToken
	}

	return Identity{
		UserID:    tokenClaims.Subject,
		Username:  tokenClaims.Username,
		TokenID:   tokenClaims.ID,
		ExpiresAt: tokenClaims.ExpiresAt.Time,
	}, nil
}
