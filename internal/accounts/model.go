package accounts

import "time"

// User es una cuenta de back-office.
// PasswordHash nunca se serializa.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput es el formulario de registro.
// Password2 es la confirmación y debe coincidir con Password1.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required,min=8,max=72"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

// Credentials es el payload de login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult es lo que recibe el cliente al iniciar sesión.
type LoginResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
}
