package service

import (
	"context"
	"errors"

	"readypulse/internal/model"
	"readypulse/internal/repository"
)

// OrganizationService handles organization CRUD
type OrganizationService struct {
	orgRepo repository.OrganizationRepo
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo repository.OrganizationRepo) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// Create creates a new organization
func (s *OrganizationService) Create(ctx context.Context, org *model.Organization) error {
	if org.Name == "" {
		return errors.New("organization name is required")
	}
	return s.orgRepo.Create(ctx, org)
}

// Get returns one organization by ID
func (s *OrganizationService) Get(ctx context.Context, id string) (*model.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

// List returns all organizations
func (s *OrganizationService) List(ctx context.Context) ([]*model.Organization, error) {
	return s.orgRepo.List(ctx)
}

// Update updates an organization
func (s *OrganizationService) Update(ctx context.Context, org *model.Organization) error {
	return s.orgRepo.Update(ctx, org)
}

// Delete removes an organization
func (s *OrganizationService) Delete(ctx context.Context, id string) error {
	return s.orgRepo.Delete(ctx, id)
}
