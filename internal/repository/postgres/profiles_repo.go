package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/repository"
)

type profilesRepo struct{ pool *pgxpool.Pool }

func (r *profilesRepo) GetByUserID(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, phone, address, role FROM profiles WHERE user_id=$1`, userID,
	).Scan(&p.UserID, &p.Phone, &p.Address, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, repository.ErrNotFound
	}
	return p, err
}

func (r *profilesRepo) Update(ctx context.Context, p models.Profile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET phone=$2, address=$3, role=$4 WHERE user_id=$1`,
		p.UserID, p.Phone, p.Address, p.Role,
	)
	return err
}

func (r *profilesRepo) SetRole(ctx context.Context, userID, role string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET role=$2 WHERE user_id=$1`, userID, role)
	return err
}
