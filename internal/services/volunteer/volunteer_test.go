package volunteer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/models"
)

type fakeRepo struct {
	apps []models.VolunteerApplication
	err  error
}

func (f *fakeRepo) CreateVolunteerApplication(_ context.Context, app models.VolunteerApplication) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.apps = append(f.apps, app)
	return "app-1", nil
}

type fakeConfirmer struct {
	sent []string
	err  error
}

func (f *fakeConfirmer) SendVolunteerConfirmation(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmit_StoresPendingAndConfirms(t *testing.T) {
	repo := &fakeRepo{}
	confirm := &fakeConfirmer{}
	svc := New(repo, confirm, discardLogger())

	id, err := svc.Submit(context.Background(), models.VolunteerApplication{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Skills:    []string{"teaching"},
		Status:    "approved", // callers cannot pre-set a status
	})
	require.NoError(t, err)
	assert.Equal(t, "app-1", id)

	require.Len(t, repo.apps, 1)
	assert.Equal(t, models.ApplicationPending, repo.apps[0].Status)
	assert.Equal(t, []string{"ana@example.com"}, confirm.sent)
}

func TestSubmit_RepositoryFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	confirm := &fakeConfirmer{}
	svc := New(repo, confirm, discardLogger())

	_, err := svc.Submit(context.Background(), models.VolunteerApplication{Email: "a@b.com"})
	require.Error(t, err)
	assert.Empty(t, confirm.sent)
}

func TestSubmit_MailFailureTolerated(t *testing.T) {
	repo := &fakeRepo{}
	confirm := &fakeConfirmer{err: errors.New("mail down")}
	svc := New(repo, confirm, discardLogger())

	id, err := svc.Submit(context.Background(), models.VolunteerApplication{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "app-1", id)
	require.Len(t, repo.apps, 1)
}
