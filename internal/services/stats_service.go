package services

import (
	"context"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/policy"
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
)

type StatsService struct {
	requests repo.Requests
}

func NewStatsService(requests repo.Requests) *StatsService {
	return &StatsService{requests: requests}
}

// Stats returns the admin dashboard counters. One grouped query, no side
// effects.
func (s *StatsService) Stats(ctx context.Context, actor policy.Actor) (models.DashboardStats, error) {
	if d := policy.CanViewStats(actor); !d.Allowed {
		return models.DashboardStats{}, apperrors.Forbidden(d.Reason)
	}
	return s.requests.CountByStatus(ctx)
}
