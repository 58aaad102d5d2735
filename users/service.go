// Package users provides profile retrieval for authenticated users.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/memberchat/apperror"
)

// Service is the user profile contract consumed by the handlers.
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error)
}

// UserService implements Service against a pgx pool.
type UserService struct {
	db *pgxpool.Pool
}

// NewUserService creates a UserService.
func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

var _ Service = (*UserService)(nil)

// GetProfile retrieves a user's profile by id. A missing row is a
// defensive condition: the id comes from a token that just resolved.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	var profile ProfileResponse
	query := `SELECT id, username, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(&profile.ID, &profile.Username, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}
	return &profile, nil
}
