package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, username, email, password_hash, first_name, last_name,
       is_staff, is_superuser, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsStaff, &u.IsSuperuser, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}

// Create writes the user row and its profile in one transaction, so a user
// can never exist without a profile.
func (r *usersRepo) Create(ctx context.Context, u models.User, p models.Profile) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO users(id, username, email, password_hash, first_name, last_name, is_staff, is_superuser)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsStaff, u.IsSuperuser,
	)
	if err != nil {
		return models.User{}, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO profiles(user_id, phone, address, role) VALUES($1,$2,$3,$4)`,
		u.ID, p.Phone, p.Address, p.Role,
	)
	if err != nil {
		return models.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

// emailTakenQuery omits the id comparison when there is no row to exclude;
// an empty string is not encodable as a uuid parameter.
func emailTakenQuery(email, excludeID string) (string, []any) {
	if excludeID == "" {
		return `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email)=lower($1))`, []any{email}
	}
	return `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email)=lower($1) AND id <> $2)`, []any{email, excludeID}
}

func (r *usersRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	q, args := emailTakenQuery(email, excludeID)
	var taken bool
	err := r.pool.QueryRow(ctx, q, args...).Scan(&taken)
	return taken, err
}

func (r *usersRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`, username,
	).Scan(&taken)
	return taken, err
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email=$2, first_name=$3, last_name=$4, is_active=$5, updated_at=now() WHERE id=$1`,
		u.ID, u.Email, u.FirstName, u.LastName, u.IsActive,
	)
	return err
}

func (r *usersRepo) SetPassword(ctx context.Context, id, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, id, hash)
	return err
}

func (r *usersRepo) ListCollectors(ctx context.Context) ([]models.UserRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, u.email
		   FROM users u
		   JOIN profiles p ON p.user_id = u.id
		  WHERE p.role = $1
		  ORDER BY u.username`,
		models.RoleCollector,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserRef
	for rows.Next() {
		var ref models.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username, &ref.Email); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
