package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartewaste/ewaste-backend/internal/models"
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
)

// memStore is the in-memory backing for the repository fakes so service
// tests run without Postgres.
type memStore struct {
	users    map[string]models.User
	profiles map[string]models.Profile
	requests map[string]models.PickupRequest
	base     time.Time
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		profiles: map[string]models.Profile{},
		requests: map[string]models.PickupRequest{},
		base:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Second)
}

// seedUser inserts a user+profile pair directly.
func (s *memStore) seedUser(username, role string) models.User {
	u := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	s.users[u.ID] = u
	s.profiles[u.ID] = models.Profile{UserID: u.ID, Role: role}
	return u
}

func (s *memStore) seedRequest(owner models.User, mutate func(*models.PickupRequest)) models.PickupRequest {
	req := models.PickupRequest{
		ID:            uuid.NewString(),
		UserID:        owner.ID,
		User:          owner.Ref(),
		ItemType:      "Laptop",
		Quantity:      1,
		PickupAddress: "12 Ocean Rd",
		PickupDate:    models.NewDate(2024, time.March, 15),
		Status:        models.StatusPending,
		CreatedAt:     s.tick(),
	}
	if mutate != nil {
		mutate(&req)
	}
	s.requests[req.ID] = req
	return req
}

type memUsers struct{ s *memStore }

func (m *memUsers) Create(_ context.Context, u models.User, p models.Profile) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = m.s.tick()
	u.UpdatedAt = u.CreatedAt
	p.UserID = u.ID
	m.s.users[u.ID] = u
	m.s.profiles[u.ID] = p
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (m *memUsers) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range m.s.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UsernameTaken(_ context.Context, username string) (bool, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Update(_ context.Context, u models.User) error {
	stored, ok := m.s.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	stored.Email = u.Email
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.IsActive = u.IsActive
	stored.UpdatedAt = m.s.tick()
	m.s.users[u.ID] = stored
	return nil
}

func (m *memUsers) SetPassword(_ context.Context, id, hash string) error {
	u, ok := m.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	m.s.users[id] = u
	return nil
}

func (m *memUsers) ListCollectors(_ context.Context) ([]models.UserRef, error) {
	var out []models.UserRef
	for id, p := range m.s.profiles {
		if p.Role == models.RoleCollector {
			out = append(out, m.s.users[id].Ref())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memProfiles struct{ s *memStore }

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (models.Profile, error) {
	p, ok := m.s.profiles[userID]
	if !ok {
		return models.Profile{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProfiles) Update(_ context.Context, p models.Profile) error {
	if _, ok := m.s.profiles[p.UserID]; !ok {
		return repo.ErrNotFound
	}
	m.s.profiles[p.UserID] = p
	return nil
}

func (m *memProfiles) SetRole(_ context.Context, userID, role string) error {
	p, ok := m.s.profiles[userID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Role = role
	m.s.profiles[userID] = p
	return nil
}

type memRequests struct{ s *memStore }

func (m *memRequests) Create(_ context.Context, r models.PickupRequest) (models.PickupRequest, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = m.s.tick()
	r.UpdatedAt = r.CreatedAt
	if u, ok := m.s.users[r.UserID]; ok {
		r.User = u.Ref()
	}
	m.s.requests[r.ID] = r
	return r, nil
}

func (m *memRequests) GetByID(_ context.Context, id string) (models.PickupRequest, error) {
	r, ok := m.s.requests[id]
	if !ok {
		return models.PickupRequest{}, repo.ErrNotFound
	}
	return r, nil
}

func (m *memRequests) List(_ context.Context, f repo.RequestFilter) ([]models.PickupRequest, error) {
	var out []models.PickupRequest
	for _, r := range m.s.requests {
		if f.OwnerID != "" && r.UserID != f.OwnerID {
			continue
		}
		if f.CollectorID != "" && (r.CollectorID == nil || *r.CollectorID != f.CollectorID) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memRequests) Update(_ context.Context, r models.PickupRequest) error {
	if _, ok := m.s.requests[r.ID]; !ok {
		return repo.ErrNotFound
	}
	r.UpdatedAt = m.s.tick()
	m.s.requests[r.ID] = r
	return nil
}

func (m *memRequests) CountByStatus(_ context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	for _, r := range m.s.requests {
		stats.TotalRequests++
		switch r.Status {
		case models.StatusPending:
			stats.PendingRequests++
		case models.StatusAssigned:
			stats.AssignedRequests++
		case models.StatusCompleted:
			stats.CompletedRequests++
		case models.StatusCancelled:
			stats.CancelledRequests++
		}
	}
	return stats, nil
}

func (m *memRequests) ListCompletedInMonth(_ context.Context, year int, month time.Month) ([]models.PickupRequest, error) {
	var out []models.PickupRequest
	for _, r := range m.s.requests {
		if r.Status != models.StatusCompleted {
			continue
		}
		if r.PickupDate.Year() != year || r.PickupDate.Month() != month {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PickupDate.Time.Equal(out[j].PickupDate.Time) {
			return out[i].PickupDate.Time.Before(out[j].PickupDate.Time)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

