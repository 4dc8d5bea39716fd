package services

import (
	"context"
	"fmt"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
)

type VenuesService struct {
	venuesRepo models.VenuesRepo
}

func NewVenuesService(venuesRepo models.VenuesRepo) *VenuesService {
	return &VenuesService{
		venuesRepo: venuesRepo,
	}
}

func (vs *VenuesService) CreateVenue(ctx context.Context, actor *helpers.Principal, req *dto.VenueRequest) (*models.Venue, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return nil, ErrForbidden
	}

	trim(req.Address)
	errs := models.FieldErrors{}
	for _, field := range req.Missing() {
		errs.Add(field, models.MsgRequired)
	}
	errs.Merge(validate(req))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	venue := &models.Venue{
		Name:     models.VenueName(*req.Name),
		Address:  *req.Address,
		Capacity: *req.Capacity,
	}
	if err := vs.venuesRepo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (vs *VenuesService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return vs.venuesRepo.ListVenues(ctx)
}

// UpdateVenue applies the fields present in req and leaves the rest alone.
func (vs *VenuesService) UpdateVenue(ctx context.Context, actor *helpers.Principal, id uint, req *dto.VenueRequest) (*models.Venue, error) {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return nil, ErrForbidden
	}
	venue, err := vs.venuesRepo.GetVenueByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	trim(req.Address)
	if err := validate(req).Err(); err != nil {
		return nil, err
	}
	if req.Name != nil {
		venue.Name = models.VenueName(*req.Name)
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}

	if err := vs.venuesRepo.SaveVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

// DeleteVenue removes the venue. Events held there keep existing without one.
func (vs *VenuesService) DeleteVenue(ctx context.Context, actor *helpers.Principal, id uint) error {
	if !actor.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		return ErrForbidden
	}
	if err := vs.venuesRepo.DeleteVenue(ctx, id); err != nil {
		if models.IsNotFound(err) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}
