// Package admin aggregates the read-only numbers shown on the admin
// dashboard.
package admin

import (
	"context"
	"fmt"

	"github.com/childhope-org/childhope-backend/internal/models"
)

const recentDonationsLimit = 10

type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountVolunteers(ctx context.Context) (int64, error)
	SumDonations(ctx context.Context) (int64, error)
	SumVolunteerHours(ctx context.Context) (float64, error)
	CountVolunteerApplications(ctx context.Context, status string) (int64, error)
	ListRecentDonations(ctx context.Context, limit int) ([]models.Donation, error)
}

// DashboardStats is the aggregate payload for GET /admin/stats. Raised
// is in cents, like everything donation-related.
type DashboardStats struct {
	TotalUsers          int64             `json:"totalUsers"`
	TotalVolunteers     int64             `json:"totalVolunteers"`
	TotalRaised         int64             `json:"totalRaised"`
	VolunteerHours      float64           `json:"volunteerHours"`
	PendingApplications int64             `json:"pendingApplications"`
	TotalApplications   int64             `json:"totalApplications"`
	RecentDonations     []models.Donation `json:"recentDonations"`
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	const op = "admin.Dashboard"

	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.TotalVolunteers, err = s.repo.CountVolunteers(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.TotalRaised, err = s.repo.SumDonations(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.VolunteerHours, err = s.repo.SumVolunteerHours(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.PendingApplications, err = s.repo.CountVolunteerApplications(ctx, models.ApplicationPending); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.TotalApplications, err = s.repo.CountVolunteerApplications(ctx, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.RecentDonations, err = s.repo.ListRecentDonations(ctx, recentDonationsLimit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
