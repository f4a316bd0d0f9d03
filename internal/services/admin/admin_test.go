package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/models"
)

type fakeRepo struct {
	users      int64
	volunteers int64
	raised     int64
	hours      float64
	pending    int64
	total      int64
	donations  []models.Donation
	err        error
}

func (f *fakeRepo) CountUsers(context.Context) (int64, error) {
	return f.users, f.err
}

func (f *fakeRepo) CountVolunteers(context.Context) (int64, error) {
	return f.volunteers, f.err
}

func (f *fakeRepo) SumDonations(context.Context) (int64, error) {
	return f.raised, f.err
}

func (f *fakeRepo) SumVolunteerHours(context.Context) (float64, error) {
	return f.hours, f.err
}

func (f *fakeRepo) CountVolunteerApplications(_ context.Context, status string) (int64, error) {
	if status == models.ApplicationPending {
		return f.pending, f.err
	}
	return f.total, f.err
}

func (f *fakeRepo) ListRecentDonations(context.Context, int) ([]models.Donation, error) {
	return f.donations, f.err
}

func TestDashboard(t *testing.T) {
	repo := &fakeRepo{
		users:      42,
		volunteers: 7,
		raised:     150000,
		hours:      87.5,
		pending:    3,
		total:      11,
		donations: []models.Donation{
			{ID: "d1", Email: "a@b.com", Amount: 2500},
		},
	}
	svc := New(repo)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(7), stats.TotalVolunteers)
	assert.Equal(t, int64(150000), stats.TotalRaised)
	assert.Equal(t, 87.5, stats.VolunteerHours)
	assert.Equal(t, int64(3), stats.PendingApplications)
	assert.Equal(t, int64(11), stats.TotalApplications)
	require.Len(t, stats.RecentDonations, 1)
	assert.Equal(t, "d1", stats.RecentDonations[0].ID)
}

func TestDashboard_RepositoryFailure(t *testing.T) {
	svc := New(&fakeRepo{err: errors.New("db down")})

	_, err := svc.Dashboard(context.Background())
	require.Error(t, err)
}
