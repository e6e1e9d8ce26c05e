package service

import (
	"testing"

	"grocery/internal/repository"
	"grocery/internal/token"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const userSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);`

func setupAuthService(t *testing.T) (*AuthService, *repository.UserRepository, *token.Manager) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.MustExec(userSchema)
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewUserRepository(db)
	tokens := token.NewManager("test-secret")
	return NewAuthService(userRepo, tokens), userRepo, tokens
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _, tokens := setupAuthService(t)

	user, signed, err := svc.Register("Анна", "Иванова", "anna@example.com", "secret123", false)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterStoresOnlyHash(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)

	_, _, err := svc.Register("Анна", "Иванова", "anna@example.com", "secret123", false)
	require.NoError(t, err)

	stored, err := userRepo.GetByEmail("anna@example.com")
	require.NoError(t, err)
	// Открытый пароль не сохраняется, хеш сходится
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, _, err := svc.Register("Анна", "Иванова", "anna@example.com", "secret123", false)
	require.NoError(t, err)

	_, _, err = svc.Register("Анна", "Иванова", "anna@example.com", "secret123", false)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	registered, _, err := svc.Register("Анна", "Иванова", "anna@example.com", "secret123", true)
	require.NoError(t, err)

	user, signed, err := svc.Login("anna@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.True(t, user.IsAdmin)
	assert.NotEmpty(t, signed)
}

func TestLoginDoesNotLeakWhichFactorFailed(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, _, err := svc.Register("Анна", "Иванова", "anna@example.com", "secret123", false)
	require.NoError(t, err)

	// Неверный пароль и несуществующий email дают одну и ту же ошибку
	_, _, wrongPass := svc.Login("anna@example.com", "wrong")
	_, _, noUser := svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
}
