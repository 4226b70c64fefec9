package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gomoku-live/server/internal/auth"
	"github.com/gomoku-live/server/internal/models"
)

// ErrUsernameTaken is returned by CreateUser when the username already exists.
var ErrUsernameTaken = errors.New("username already exists")

// CreateUser hashes the password and inserts the account, filling in the
// generated id.
func CreateUser(ctx context.Context, user *models.User) error {
	hash, err := auth.HashPassword(user.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (username, password, nickname)
	      VALUES ($1, $2, $3)
	      RETURNING id`
	err = DB.QueryRow(ctx, q, user.Username, user.Password, user.Nickname).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID loads a user row by id.
func GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	q := `SELECT id, username, password, nickname FROM users WHERE id=$1`
	err := DB.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.Password, &u.Nickname)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername loads a user row by login name.
func GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	q := `SELECT id, username, password, nickname FROM users WHERE username=$1`
	err := DB.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.Password, &u.Nickname)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthenticateUser verifies credentials and returns a signed session token.
func AuthenticateUser(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, fmt.Errorf("invalid credentials")
		}
		return "", nil, fmt.Errorf("user lookup failed: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.Password)
	if err != nil || !match {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.CreateJWT(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create jwt: %w", err)
	}
	user.Password = ""
	return token, user, nil
}

// UserStore adapts the package-level queries to the hub's UserLookup
// interface.
type UserStore struct{}

func (UserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return GetUserByID(ctx, id)
}
