package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/policy"
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
)

type RequestService struct {
	requests repo.Requests
	users    repo.Users
	profiles repo.Profiles
	now      func() time.Time
}

func NewRequestService(requests repo.Requests, users repo.Users, profiles repo.Profiles) *RequestService {
	return &RequestService{requests: requests, users: users, profiles: profiles, now: time.Now}
}

type CreateRequestInput struct {
	ItemType      string `json:"item_type"`
	Quantity      int    `json:"quantity"`
	Condition     string `json:"condition"`
	Brand         string `json:"brand"`
	PickupAddress string `json:"pickup_address"`
	PickupDate    string `json:"pickup_date"`
	Notes         string `json:"notes"`
}

func (s *RequestService) Create(ctx context.Context, actor policy.Actor, in CreateRequestInput) (models.PickupRequest, error) {
	if d := policy.CanCreate(actor); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}

	itemType := strings.TrimSpace(in.ItemType)
	pickupAddress := strings.TrimSpace(in.PickupAddress)
	if itemType == "" || pickupAddress == "" || strings.TrimSpace(in.PickupDate) == "" {
		return models.PickupRequest{}, apperrors.Validation("item_type, pickup_address and pickup_date are required")
	}
	pickupDate, err := models.ParseDate(in.PickupDate)
	if err != nil {
		return models.PickupRequest{}, apperrors.Validation("pickup_date must be YYYY-MM-DD")
	}
	if pickupDate.Before(models.Today(s.now())) {
		return models.PickupRequest{}, apperrors.Validation("pickup_date cannot be in the past")
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return models.PickupRequest{}, apperrors.Validation("quantity must be at least 1")
	}

	req := models.PickupRequest{
		UserID:        actor.ID,
		ItemType:      itemType,
		Quantity:      quantity,
		Condition:     strings.TrimSpace(in.Condition),
		Brand:         strings.TrimSpace(in.Brand),
		PickupAddress: pickupAddress,
		PickupDate:    pickupDate,
		Status:        models.StatusPending,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if err := req.Validate("", s.now()); err != nil {
		return models.PickupRequest{}, apperrors.Validation(err.Error())
	}
	return s.requests.Create(ctx, req)
}

func (s *RequestService) Get(ctx context.Context, actor policy.Actor, id string) (models.PickupRequest, error) {
	req, err := s.load(ctx, id)
	if err != nil {
		return models.PickupRequest{}, err
	}
	if d := policy.CanView(actor, req); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}
	return req, nil
}

// List returns the requests the actor may see, newest first: owners their
// own, collectors their assignments, admins everything.
func (s *RequestService) List(ctx context.Context, actor policy.Actor) ([]models.PickupRequest, error) {
	var f repo.RequestFilter
	switch actor.Role {
	case models.RoleUser:
		f.OwnerID = actor.ID
	case models.RoleCollector:
		f.CollectorID = actor.ID
	}
	return s.requests.List(ctx, f)
}

type EditRequestInput struct {
	ItemType      string `json:"item_type"`
	Quantity      *int   `json:"quantity"`
	Condition     string `json:"condition"`
	Brand         string `json:"brand"`
	PickupAddress string `json:"pickup_address"`
	PickupDate    string `json:"pickup_date"`
	Notes         string `json:"notes"`
}

// Edit applies a partial update to an owned, still-pending request. Absent
// or empty fields keep their stored values.
func (s *RequestService) Edit(ctx context.Context, actor policy.Actor, id string, in EditRequestInput) (models.PickupRequest, error) {
	req, err := s.load(ctx, id)
	if err != nil {
		return models.PickupRequest{}, err
	}
	if d := policy.CanView(actor, req); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}
	if d := policy.CanEdit(actor, req); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}
	if req.Status != models.StatusPending {
		return models.PickupRequest{}, apperrors.Validation("Only pending requests can be edited")
	}

	req.ItemType = mergeField(in.ItemType, req.ItemType)
	req.PickupAddress = mergeField(in.PickupAddress, req.PickupAddress)
	req.Condition = mergeField(in.Condition, req.Condition)
	req.Brand = mergeField(in.Brand, req.Brand)
	req.Notes = mergeField(in.Notes, req.Notes)

	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return models.PickupRequest{}, apperrors.Validation("quantity must be at least 1")
		}
		req.Quantity = *in.Quantity
	}
	if strings.TrimSpace(in.PickupDate) != "" {
		pickupDate, err := models.ParseDate(in.PickupDate)
		if err != nil {
			return models.PickupRequest{}, apperrors.Validation("pickup_date must be YYYY-MM-DD")
		}
		if pickupDate.Before(models.Today(s.now())) {
			return models.PickupRequest{}, apperrors.Validation("pickup_date cannot be in the past")
		}
		req.PickupDate = pickupDate
	}

	if err := s.validateAndSave(ctx, &req); err != nil {
		return models.PickupRequest{}, err
	}
	return req, nil
}

func (s *RequestService) Assign(ctx context.Context, actor policy.Actor, requestID, collectorID string) (models.PickupRequest, error) {
	if d := policy.CanAssign(actor); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}
	if strings.TrimSpace(collectorID) == "" {
		return models.PickupRequest{}, apperrors.Validation("collector_id is required")
	}

	req, err := s.load(ctx, requestID)
	if err != nil {
		return models.PickupRequest{}, err
	}
	collector, err := s.users.GetByID(ctx, collectorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.PickupRequest{}, apperrors.NotFound("Collector not found")
		}
		return models.PickupRequest{}, err
	}
	profile, err := s.profiles.GetByUserID(ctx, collector.ID)
	if err != nil {
		return models.PickupRequest{}, err
	}
	if profile.Role != models.RoleCollector {
		return models.PickupRequest{}, apperrors.Validation("Selected user is not a collector")
	}

	req.MarkAssigned(collector, s.now())
	if err := s.validateAndSave(ctx, &req); err != nil {
		return models.PickupRequest{}, err
	}
	return req, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, actor policy.Actor, requestID, status string) (models.PickupRequest, error) {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return models.PickupRequest{}, err
	}
	if d := policy.CanUpdateStatus(actor, req); !d.Allowed {
		return models.PickupRequest{}, apperrors.Forbidden(d.Reason)
	}

	status = strings.ToLower(strings.TrimSpace(status))
	switch {
	case status == models.StatusCompleted:
		req.MarkCompleted(s.now())
	case models.ValidStatus(status):
		// Note: setting "assigned" here does not fill in a collector; the
		// persist-time invariant rejects the write when one is missing.
		req.Status = status
	default:
		return models.PickupRequest{}, apperrors.Validation("Unsupported status")
	}

	if err := s.validateAndSave(ctx, &req); err != nil {
		return models.PickupRequest{}, err
	}
	return req, nil
}

func (s *RequestService) load(ctx context.Context, id string) (models.PickupRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.PickupRequest{}, apperrors.NotFound("Request not found")
		}
		return models.PickupRequest{}, err
	}
	return req, nil
}

// validateAndSave runs the persist-time invariants against the mutated row
// and only then writes it. A validation failure leaves the store untouched.
func (s *RequestService) validateAndSave(ctx context.Context, req *models.PickupRequest) error {
	collectorRole := ""
	if req.CollectorID != nil {
		p, err := s.profiles.GetByUserID(ctx, *req.CollectorID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		collectorRole = p.Role
	}
	if err := req.Validate(collectorRole, s.now()); err != nil {
		return apperrors.Validation(err.Error())
	}
	return s.requests.Update(ctx, *req)
}
