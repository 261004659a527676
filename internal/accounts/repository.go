package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es el subconjunto de pgxpool.Pool que usa el repositorio.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository accede a la tabla users.
type Repository struct {
	database Querier
}

// NewRepository crea un repositorio de usuarios.
func NewRepository(database Querier) *Repository {
	return &Repository{database: database}
}

// Insert crea un usuario. El id (uuid) y created_at los genera la DB.
func (repository *Repository) Insert(ctx context.Context, username, email, passwordHash string) (User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, username, email, password_hash, created_at;
	`

	var user User
	err := repository.database.QueryRow(ctx, query, username, email, passwordHash).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		// ux_users_username
		var postgresError *pgconn.PgError
		if errors.As(err, &postgresError) && postgresError.Code == "23505" {
			return User{}, ErrorDuplicateUsername
		}
		return User{}, err
	}

	return user, nil
}

// GetByUsername busca un usuario por username exacto.
func (repository *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
		SELECT id::text, username, email, password_hash, created_at
		FROM users
		WHERE username = $1;
	`

	var user User
	err := repository.database.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrorNotFound
		}
		return User{}, err
	}

	return user, nil
}
