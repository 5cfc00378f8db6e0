package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/repository"
)

type requestsRepo struct{ pool *pgxpool.Pool }

const requestSelect = `
SELECT r.id, r.user_id, r.item_type, r.quantity, r.condition, r.brand,
       r.pickup_address, r.pickup_date, r.status, r.notes,
       r.collector_id, r.assigned_at, r.completed_at, r.created_at, r.updated_at,
       u.username, u.email,
       c.username, c.email
  FROM pickup_requests r
  JOIN users u ON u.id = r.user_id
  LEFT JOIN users c ON c.id = r.collector_id`

func scanRequest(row pgx.Row) (models.PickupRequest, error) {
	var (
		req                models.PickupRequest
		pickupDate         time.Time
		collUser, collMail *string
	)
	err := row.Scan(
		&req.ID, &req.UserID, &req.ItemType, &req.Quantity, &req.Condition, &req.Brand,
		&req.PickupAddress, &pickupDate, &req.Status, &req.Notes,
		&req.CollectorID, &req.AssignedAt, &req.CompletedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.User.Username, &req.User.Email,
		&collUser, &collMail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PickupRequest{}, repository.ErrNotFound
	}
	if err != nil {
		return models.PickupRequest{}, err
	}
	req.User.ID = req.UserID
	req.PickupDate = models.Date{Time: pickupDate}
	if req.CollectorID != nil && collUser != nil && collMail != nil {
		req.Collector = &models.UserRef{ID: *req.CollectorID, Username: *collUser, Email: *collMail}
	}
	return req, nil
}

func (r *requestsRepo) Create(ctx context.Context, req models.PickupRequest) (models.PickupRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO pickup_requests(id, user_id, item_type, quantity, condition, brand,
		                             pickup_address, pickup_date, status, notes)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		req.ID, req.UserID, req.ItemType, req.Quantity, req.Condition, req.Brand,
		req.PickupAddress, req.PickupDate.Time, req.Status, req.Notes,
	)
	if err != nil {
		return models.PickupRequest{}, err
	}
	return r.GetByID(ctx, req.ID)
}

func (r *requestsRepo) GetByID(ctx context.Context, id string) (models.PickupRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, requestSelect+` WHERE r.id=$1`, id))
}

func (r *requestsRepo) List(ctx context.Context, f repository.RequestFilter) ([]models.PickupRequest, error) {
	q := requestSelect
	args := []any{}
	switch {
	case f.OwnerID != "":
		q += ` WHERE r.user_id=$1`
		args = append(args, f.OwnerID)
	case f.CollectorID != "":
		q += ` WHERE r.collector_id=$1`
		args = append(args, f.CollectorID)
	}
	q += ` ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Update writes the whole mutable row in one statement so concurrent edits
// to the same request cannot interleave partially.
func (r *requestsRepo) Update(ctx context.Context, req models.PickupRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pickup_requests
		    SET item_type=$2, quantity=$3, condition=$4, brand=$5,
		        pickup_address=$6, pickup_date=$7, status=$8, notes=$9,
		        collector_id=$10, assigned_at=$11, completed_at=$12, updated_at=now()
		  WHERE id=$1`,
		req.ID, req.ItemType, req.Quantity, req.Condition, req.Brand,
		req.PickupAddress, req.PickupDate.Time, req.Status, req.Notes,
		req.CollectorID, req.AssignedAt, req.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *requestsRepo) CountByStatus(ctx context.Context) (models.DashboardStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM pickup_requests GROUP BY status`)
	if err != nil {
		return models.DashboardStats{}, err
	}
	defer rows.Close()

	var stats models.DashboardStats
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return models.DashboardStats{}, err
		}
		stats.TotalRequests += n
		switch status {
		case models.StatusPending:
			stats.PendingRequests = n
		case models.StatusAssigned:
			stats.AssignedRequests = n
		case models.StatusCompleted:
			stats.CompletedRequests = n
		case models.StatusCancelled:
			stats.CancelledRequests = n
		}
	}
	return stats, rows.Err()
}

func (r *requestsRepo) ListCompletedInMonth(ctx context.Context, year int, month time.Month) ([]models.PickupRequest, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	rows, err := r.pool.Query(ctx,
		requestSelect+`
		 WHERE r.status=$1 AND r.pickup_date >= $2 AND r.pickup_date < $3
		 ORDER BY r.pickup_date, r.created_at`,
		models.StatusCompleted, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]models.PickupRequest, error) {
	var out []models.PickupRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
