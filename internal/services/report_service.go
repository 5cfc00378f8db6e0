package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
	"github.com/smartewaste/ewaste-backend/internal/policy"
	"github.com/smartewaste/ewaste-backend/internal/report"
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
)

type ReportService struct {
	requests repo.Requests
	renderer report.Renderer
	now      func() time.Time
}

func NewReportService(requests repo.Requests, renderer report.Renderer) *ReportService {
	return &ReportService{requests: requests, renderer: renderer, now: time.Now}
}

// MonthlyPDF aggregates the completed pickups of one month and renders the
// report document. generatedBy is the acting admin's display name. Returns
// the document bytes and the download filename.
func (s *ReportService) MonthlyPDF(ctx context.Context, actor policy.Actor, generatedBy, monthParam string) ([]byte, string, error) {
	if d := policy.CanExportReports(actor); !d.Allowed {
		return nil, "", apperrors.Forbidden(d.Reason)
	}
	monthParam = strings.TrimSpace(monthParam)
	if monthParam == "" {
		return nil, "", apperrors.Validation("month query parameter is required in YYYY-MM format")
	}
	month, err := time.Parse("2006-01", monthParam)
	if err != nil {
		return nil, "", apperrors.Validation("Invalid month format. Use YYYY-MM")
	}
	if s.renderer == nil {
		return nil, "", apperrors.Unavailable("PDF renderer is not available")
	}

	rows, err := s.requests.ListCompletedInMonth(ctx, month.Year(), month.Month())
	if err != nil {
		return nil, "", err
	}
	rep := report.Aggregate(month.Year(), month.Month(), generatedBy, rows, s.now())

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, rep); err != nil {
		return nil, "", apperrors.Unavailable("report rendering failed")
	}
	filename := fmt.Sprintf("monthly_collection_%d_%02d.pdf", month.Year(), int(month.Month()))
	return buf.Bytes(), filename, nil
}
