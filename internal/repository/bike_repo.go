package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bikerental/internal/db"

	"github.com/lib/pq"
)

type BikeRepository struct {
	DB *sql.DB
}

func NewBikeRepository(database *sql.DB) *BikeRepository {
	return &BikeRepository{DB: database}
}

func (r *BikeRepository) GetBikes() ([]db.Bike, error) {
	query := `
		SELECT id, name, type, image_url, description, price_per_hour,
		       is_available, location, rating, features, created_at, updated_at
		FROM bikes
		ORDER BY name`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying bikes: %w", err)
	}
	defer rows.Close()

	var bikes []db.Bike
	for rows.Next() {
		var b db.Bike
		err := rows.Scan(
			&b.ID, &b.Name, &b.Type, &b.ImageURL, &b.Description, &b.PricePerHour,
			&b.IsAvailable, &b.Location, &b.Rating, pq.Array(&b.Features), &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning bike: %w", err)
		}
		bikes = append(bikes, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bike rows: %w", err)
	}
	return bikes, nil
}

// GetBikeByID returns (nil, nil) when the bike does not exist.
func (r *BikeRepository) GetBikeByID(id int) (*db.Bike, error) {
	var b db.Bike
	query := `
		SELECT id, name, type, image_url, description, price_per_hour,
		       is_available, location, rating, features, created_at, updated_at
		FROM bikes WHERE id = $1`

	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.Name, &b.Type, &b.ImageURL, &b.Description, &b.PricePerHour,
		&b.IsAvailable, &b.Location, &b.Rating, pq.Array(&b.Features), &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying bike %d: %w", id, err)
	}
	return &b, nil
}

func (r *BikeRepository) CreateBike(b *db.Bike) error {
	query := `
		INSERT INTO bikes (name, type, image_url, description, price_per_hour,
		                   is_available, location, rating, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Name, b.Type, b.ImageURL, b.Description, b.PricePerHour,
		b.IsAvailable, b.Location, b.Rating, pq.Array(b.Features),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BikeRepository) UpdateBike(b *db.Bike) error {
	query := `
		UPDATE bikes
		SET name = $1, type = $2, image_url = $3, description = $4,
		    price_per_hour = $5, is_available = $6, location = $7,
		    rating = $8, features = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		b.Name, b.Type, b.ImageURL, b.Description, b.PricePerHour,
		b.IsAvailable, b.Location, b.Rating, pq.Array(b.Features), b.ID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	return err
}

// DeleteBike removes a bike and every booking attached to it, in one
// transaction.
func (r *BikeRepository) DeleteBike(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bookings WHERE bike_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting bookings for bike %d: %w", id, err)
	}
	result, err := tx.Exec(`DELETE FROM bikes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting bike %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
