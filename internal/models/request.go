package models

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PickupRequest is one e-waste pickup record. User and Collector are
// populated on reads; CollectorID drives the persisted foreign key.
type PickupRequest struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	User          UserRef    `json:"user"`
	ItemType      string     `json:"item_type"`
	Quantity      int        `json:"quantity"`
	Condition     string     `json:"condition"`
	Brand         string     `json:"brand"`
	PickupAddress string     `json:"pickup_address"`
	PickupDate    Date       `json:"pickup_date"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	CollectorID   *string    `json:"-"`
	Collector     *UserRef   `json:"assigned_collector"`
	AssignedAt    *time.Time `json:"assigned_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

var (
	ErrCollectorRole     = errors.New("Assigned user must have collector role.")
	ErrCollectorRequired = errors.New("Assigned or completed requests must have a collector.")
)

func (r *PickupRequest) MarkAssigned(collector User, now time.Time) {
	id := collector.ID
	ref := collector.Ref()
	r.CollectorID = &id
	r.Collector = &ref
	r.Status = StatusAssigned
	at := now
	r.AssignedAt = &at
}

func (r *PickupRequest) MarkCompleted(now time.Time) {
	r.Status = StatusCompleted
	at := now
	r.CompletedAt = &at
}

// Validate enforces the persist-time invariants. collectorRole is the profile
// role of the assigned collector and is only consulted when one is set. It is
// run before every write; a violation means nothing is persisted.
func (r *PickupRequest) Validate(collectorRole string, now time.Time) error {
	if strings.TrimSpace(r.ItemType) == "" {
		return errors.New("item_type required")
	}
	if strings.TrimSpace(r.PickupAddress) == "" {
		return errors.New("pickup_address required")
	}
	if r.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if r.CollectorID != nil && collectorRole != RoleCollector {
		return ErrCollectorRole
	}
	if (r.Status == StatusAssigned || r.Status == StatusCompleted) && r.CollectorID == nil {
		return ErrCollectorRequired
	}
	if r.Status == StatusCompleted && r.CompletedAt == nil {
		at := now
		r.CompletedAt = &at
	}
	return nil
}
