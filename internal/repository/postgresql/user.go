package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"agromarket/internal/db"
	"agromarket/internal/repository"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, username, password, role string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO users (username, password, role) VALUES ($1, $2, $3)",
		username, string(hashedPassword), role)
	return err
}

// ValidateUser checks the credentials and returns the matching account. The
// returned user is what the HTTP layer turns into the dispatch actor.
func (r *UserRepo) ValidateUser(ctx context.Context, username, password string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, repository.ErrObjectNotFound
	}
	return &user, nil
}
