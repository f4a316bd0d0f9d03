package auth

import (
	"context"
	"fmt"

	"github.com/childhope-org/childhope-backend/internal/lib/password"
	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/storage/repository"
)

// UserRepository is the hosted identity backend's storage contract.
type UserRepository interface {
	RegisterUser(ctx context.Context, rec repository.UserRecord) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*repository.UserRecord, error)
	UpdateUserProfile(ctx context.Context, user models.User) error
}

// HostedProvider backs the facade with the users table: bcrypt-verified
// credentials and durable profiles.
type HostedProvider struct {
	repo UserRepository
}

// NewHostedProvider returns a HostedProvider over repo.
func NewHostedProvider(repo UserRepository) *HostedProvider {
	return &HostedProvider{repo: repo}
}

// Login verifies the password against the stored hash and returns the
// normalized user.
func (p *HostedProvider) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "auth.HostedProvider.Login"
	rec, err := p.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(rec.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: invalid credentials", op)
	}
	return normalizeUser(rec), nil
}

// Register hashes the password, stores the fresh user and returns it
// normalized. Donation total and volunteer hours start at zero.
func (p *HostedProvider) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "auth.HostedProvider.Register"
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec := repository.UserRecord{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hashed,
	}
	if rec.Name == "" {
		rec.Name = localPart(req.Email)
	}
	id, err := p.repo.RegisterUser(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.ID = id
	return normalizeUser(&rec), nil
}

// SyncProfile pushes the merged profile back to the users table.
func (p *HostedProvider) SyncProfile(ctx context.Context, user models.User) error {
	const op = "auth.HostedProvider.SyncProfile"
	if err := p.repo.UpdateUserProfile(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// normalizeUser is the single mapping point from the hosted provider's
// row shape to the canonical user. Nothing outside this function
// depends on the provider's field layout.
func normalizeUser(rec *repository.UserRecord) *models.User {
	return &models.User{
		ID:             rec.ID,
		Email:          rec.Email,
		Name:           rec.Name,
		Role:           rec.Role,
		ProfilePicture: rec.ProfilePicture,
		Phone:          rec.Phone,
		Address:        rec.Address,
		Donations:      rec.Donations,
		VolunteerHours: rec.VolunteerHours,
		CreatedAt:      rec.CreatedAt,
	}
}
