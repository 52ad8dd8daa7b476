package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bikerental/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

// GetByEmail returns (nil, nil) when no user has that email.
func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	query := `SELECT id, name, email, password_hash, phone, role, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

// GetByID returns (nil, nil) when the user does not exist.
func (r *UserRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	query := `SELECT id, name, email, password_hash, phone, role, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(u *db.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.DB.QueryRow(query, u.Name, u.Email, u.PasswordHash, u.Phone, u.Role).
		Scan(&u.ID, &u.CreatedAt)
}
