package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smartewaste/ewaste-backend/internal/models"
)

// ErrNotFound is returned by every repository when the referenced row does
// not exist; services translate it into the API error taxonomy.
var ErrNotFound = errors.New("not found")

type Users interface {
	// Create inserts the user and its profile atomically.
	Create(ctx context.Context, u models.User, p models.Profile) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u models.User) error
	SetPassword(ctx context.Context, id, hash string) error
	ListCollectors(ctx context.Context) ([]models.UserRef, error)
}

type Profiles interface {
	GetByUserID(ctx context.Context, userID string) (models.Profile, error)
	Update(ctx context.Context, p models.Profile) error
	SetRole(ctx context.Context, userID, role string) error
}

// RequestFilter narrows List to the rows a role may see. Zero value means
// no restriction (admin scope).
type RequestFilter struct {
	OwnerID     string
	CollectorID string
}

type Requests interface {
	Create(ctx context.Context, r models.PickupRequest) (models.PickupRequest, error)
	GetByID(ctx context.Context, id string) (models.PickupRequest, error)
	// List returns matching requests newest-first.
	List(ctx context.Context, f RequestFilter) ([]models.PickupRequest, error)
	Update(ctx context.Context, r models.PickupRequest) error
	CountByStatus(ctx context.Context) (models.DashboardStats, error)
	// ListCompletedInMonth returns completed requests whose pickup_date falls
	// in the given month, ordered by pickup_date then creation time.
	ListCompletedInMonth(ctx context.Context, year int, month time.Month) ([]models.PickupRequest, error)
}
