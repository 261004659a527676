package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/Lelo88/backoffice-api-golang/internal/session"
)

type fakeRepo struct {
	insertCalled   bool
	insertUsername string
	insertEmail    string
	insertHash     string
	insertErr      error

	users  map[string]User
	getErr error
}

func (fakerepo *fakeRepo) Insert(ctx context.Context, username, email, passwordHash string) (User, error) {
	fakerepo.insertCalled = true
	fakerepo.insertUsername = username
	fakerepo.insertEmail = email
	fakerepo.insertHash = passwordHash
	if fakerepo.insertErr != nil {
		return User{}, fakerepo.insertErr
	}
	return User{ID: "id-1", Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (fakerepo *fakeRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	if fakerepo.getErr != nil {
		return User{}, fakerepo.getErr
	}
	user, ok := fakerepo.users[username]
	if !ok {
		return User{}, ErrorNotFound
	}
	return user, nil
}

type fakeRevoker struct {
	tokenID string
	ttl     time.Duration
	err     error
}

func (revoker *fakeRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	revoker.tokenID = tokenID
	revoker.ttl = ttl
	return revoker.err
}

func newTestService(repository RepositoryAPI, revoker Revoker, logger *zap.Logger) *Service {
	service := NewService(repository, session.NewManager("test-secret", time.Hour), revoker, logger)
	service.hashCost = bcrypt.MinCost
	return service
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:  "budi",
		Email:     "budi@example.com",
		Password1: "rahasia123",
		Password2: "rahasia123",
	}
}

func TestService_Register(t *testing.T) {
	t.Run("success hashes password and trims", func(t *testing.T) {
		repository := &fakeRepo{}
		service := newTestService(repository, &fakeRevoker{}, zap.NewNop())

		input := validRegistration()
		input.Username = "  budi  "
		user, err := service.Register(context.Background(), input)

		require.NoError(t, err)
		require.Equal(t, "budi", user.Username)
		require.Equal(t, "budi", repository.insertUsername)
		require.NotEqual(t, "rahasia123", repository.insertHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repository.insertHash), []byte("rahasia123")))
	})

	t.Run("password length counts bytes", func(t *testing.T) {
		repository := &fakeRepo{}
		service := newTestService(repository, &fakeRevoker{}, zap.NewNop())

		input := validRegistration()
		input.Password1 = strings.Repeat("é", 40)
		input.Password2 = input.Password1
		_, err := service.Register(context.Background(), input)

		var validationError *ValidationError
		require.ErrorAs(t, err, &validationError)
		require.Equal(t, "must be at most 72 bytes", validationError.Fields["password1"])
		require.False(t, repository.insertCalled)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *RegisterInput)
			field  string
		}{
			{"blank username", func(in *RegisterInput) { in.Username = " " }, "username"},
			{"bad username chars", func(in *RegisterInput) { in.Username = "budi#1" }, "username"},
			{"invalid email", func(in *RegisterInput) { in.Email = "budi" }, "email"},
			{"missing email", func(in *RegisterInput) { in.Email = "" }, "email"},
			{"short password", func(in *RegisterInput) { in.Password1, in.Password2 = "abc", "abc" }, "password1"},
			{"numeric password", func(in *RegisterInput) { in.Password1, in.Password2 = "12345678", "12345678" }, "password1"},
			{"mismatch", func(in *RegisterInput) { in.Password2 = "different1" }, "password2"},
			{"multibyte password over 72 bytes", func(in *RegisterInput) {
				in.Password1 = strings.Repeat("é", 40)
				in.Password2 = in.Password1
			}, "password1"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repository := &fakeRepo{}
				service := newTestService(repository, &fakeRevoker{}, zap.NewNop())

				input := validRegistration()
				tt.mutate(&input)
				_, err := service.Register(context.Background(), input)

				require.ErrorIs(t, err, ErrorInvalidInput)
				var validationError *ValidationError
				require.ErrorAs(t, err, &validationError)
				require.Contains(t, validationError.Fields, tt.field)
				require.False(t, repository.insertCalled)
			})
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		repository := &fakeRepo{insertErr: ErrorDuplicateUsername}
		service := newTestService(repository, &fakeRevoker{}, zap.NewNop())

		_, err := service.Register(context.Background(), validRegistration())

		require.ErrorIs(t, err, ErrorDuplicateUsername)
	})

	t.Run("repository error", func(t *testing.T) {
		dbErr := errors.New("db down")
		service := newTestService(&fakeRepo{insertErr: dbErr}, &fakeRevoker{}, zap.NewNop())

		_, err := service.Register(context.Background(), validRegistration())

		require.True(t, err == dbErr, "expected same error instance")
	})
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := map[string]User{"budi": {ID: "id-1", Username: "budi", PasswordHash: string(hash)}}

	t.Run("success issues token", func(t *testing.T) {
		service := newTestService(&fakeRepo{users: users}, &fakeRevoker{}, zap.NewNop())

		result, err := service.Login(context.Background(), Credentials{Username: " budi ", Password: "rahasia123"})

		require.NoError(t, err)
		require.NotEmpty(t, result.Token)
		require.Equal(t, "Bearer", result.TokenType)
		require.Equal(t, "budi", result.Username)
		require.True(t, result.ExpiresAt.After(time.Now()))

		identity, err := session.NewManager("test-secret", time.Hour).Parse(result.Token)
		require.NoError(t, err)
		require.Equal(t, "id-1", identity.UserID)
	})

	t.Run("failures are indistinguishable and logged", func(t *testing.T) {
		tests := []struct {
			name        string
			credentials Credentials
			wantLogs    int
		}{
			{"unknown user", Credentials{Username: "ghost", Password: "rahasia123"}, 1},
			{"wrong password", Credentials{Username: "budi", Password: "salah12345"}, 1},
			{"empty", Credentials{}, 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				core, logs := observer.New(zapcore.DebugLevel)
				service := newTestService(&fakeRepo{users: users}, &fakeRevoker{}, zap.New(core))

				_, err := service.Login(context.Background(), tt.credentials)

				require.ErrorIs(t, err, ErrorInvalidCredentials)
				require.Equal(t, tt.wantLogs, logs.FilterMessage("login failed").Len())
			})
		}
	})

	t.Run("repository error", func(t *testing.T) {
		dbErr := errors.New("db down")
		service := newTestService(&fakeRepo{getErr: dbErr}, &fakeRevoker{}, zap.NewNop())

		_, err := service.Login(context.Background(), Credentials{Username: "budi", Password: "x"})

		require.ErrorIs(t, err, dbErr)
	})
}

func TestService_Logout(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("revokes until expiry", func(t *testing.T) {
		revoker := &fakeRevoker{}
		service := newTestService(&fakeRepo{}, revoker, zap.NewNop())
		service.now = func() time.Time { return now }

		err := service.Logout(context.Background(), session.Identity{
			UserID:    "id-1",
			TokenID:   "jti-1",
			ExpiresAt: now.Add(30 * time.Minute),
		})

		require.NoError(t, err)
		require.Equal(t, "jti-1", revoker.tokenID)
		require.Equal(t, 30*time.Minute, revoker.ttl)
	})

	t.Run("revoke error", func(t *testing.T) {
		revokeErr := errors.New("redis down")
		service := newTestService(&fakeRepo{}, &fakeRevoker{err: revokeErr}, zap.NewNop())

		err := service.Logout(context.Background(), session.Identity{TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)})

		require.ErrorIs(t, err, revokeErr)
	})
}
