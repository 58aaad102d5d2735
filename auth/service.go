// Package auth handles registration, login, logout and bearer-token
// authentication. Tokens are opaque random keys persisted in the
// tokens table, so any process sharing the database can validate them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/memberchat/apperror"
	"github.com/user/memberchat/config"
)

const (
	// pgUniqueViolation is the PostgreSQL unique constraint error code.
	pgUniqueViolation = "23505"

	usernameMinLength = 3
	usernameMaxLength = 150
	passwordMinLength = 6

	// invalidCredentials is returned for unknown usernames and wrong
	// passwords alike, so login failures never reveal whether a
	// username exists.
	invalidCredentials = "invalid username or password"
)

// LoginResult is what a successful login produces.
type LoginResult struct {
	Token Token
	User  User
}

// Service is the authentication contract consumed by handlers and the
// token middleware.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, tokenKey string) error
	Authenticate(ctx context.Context, authorizationHeader string) (*Identity, error)
}

// AuthService implements Service against a pgx pool.
type AuthService struct {
	db         *pgxpool.Pool
	bcryptCost int
}

// NewAuthService creates an AuthService.
func NewAuthService(db *pgxpool.Pool, cfg config.AuthConfig) *AuthService {
	return &AuthService{db: db, bcryptCost: cfg.BcryptCost}
}

var _ Service = (*AuthService)(nil)

// Register validates input, hashes the password and inserts the user.
// Duplicate usernames are detected from the unique constraint at insert
// time; there is no pre-check, so concurrent registrations cannot race
// past validation.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if n := utf8.RuneCountInString(req.Username); n < usernameMinLength || n > usernameMaxLength {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("username must be between %d and %d characters", usernameMinLength, usernameMaxLength), nil)
	}
	if utf8.RuneCountInString(req.Password) < passwordMinLength {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", passwordMinLength), nil)
	}

	hashed, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{Username: req.Username, HashedPassword: hashed}
	query := `INSERT INTO users (username, password)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err = s.db.QueryRow(ctx, query, user.Username, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewDuplicateError("username already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user's token, creating one
// on first login and reusing the existing row afterwards.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.getUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthenticationError(invalidCredentials, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !VerifyPassword(user.HashedPassword, req.Password) {
		return nil, apperror.NewAuthenticationError(invalidCredentials, nil)
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: *token, User: *user}, nil
}

// Logout revokes the token. Revoking an already-unknown token is not an
// error; the end state is the same.
func (s *AuthService) Logout(ctx context.Context, tokenKey string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM tokens WHERE key = $1`, tokenKey)
	if err != nil {
		return apperror.NewDatabaseError("failed to revoke token", err)
	}
	return nil
}

// Authenticate resolves a raw Authorization header value to an
// identity. A nil identity with a nil error means no authentication was
// attempted; callers guarding protected routes must treat that as a
// failure themselves.
func (s *AuthService) Authenticate(ctx context.Context, authorizationHeader string) (*Identity, error) {
	key, attempted, err := ParseAuthorization(authorizationHeader)
	if err != nil {
		return nil, err
	}
	if !attempted {
		return nil, nil
	}

	token := Token{Key: key}
	err = s.db.QueryRow(ctx, `SELECT user_id, created_at FROM tokens WHERE key = $1`, key).
		Scan(&token.UserID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthenticationError("invalid token", nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up token", err)
	}

	var user User
	err = s.db.QueryRow(ctx, `SELECT id, username, created_at FROM users WHERE id = $1`, token.UserID).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Dangling token: the foreign key should make this impossible.
			return nil, apperror.NewNotFoundError("token user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up token user", err)
	}

	return &Identity{User: user, Token: token}, nil
}

func (s *AuthService) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password, created_at FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// getOrCreateToken returns the user's active token, minting one if none
// exists. The unique index on tokens.user_id makes the insert a no-op
// when a concurrent login got there first.
func (s *AuthService) getOrCreateToken(ctx context.Context, userID int64) (*Token, error) {
	key, err := NewTokenKey()
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate token", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO tokens (key, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		key, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create token", err)
	}

	token := Token{UserID: userID}
	err = s.db.QueryRow(ctx, `SELECT key, created_at FROM tokens WHERE user_id = $1`, userID).
		Scan(&token.Key, &token.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load token", err)
	}
	return &token, nil
}
