package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type VenuesRepo interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id uint) (*Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
	SaveVenue(ctx context.Context, venue *Venue) error
	DeleteVenue(ctx context.Context, id uint) error
}

func (g *GormRepo) CreateVenue(ctx context.Context, venue *Venue) error {
	return g.db.WithContext(ctx).Create(venue).Error
}

func (g *GormRepo) GetVenueByID(ctx context.Context, id uint) (*Venue, error) {
	var venue Venue
	if err := g.db.WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (g *GormRepo) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	if err := g.db.WithContext(ctx).Order("id ASC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("failed to get venues: %w", err)
	}
	return venues, nil
}

func (g *GormRepo) SaveVenue(ctx context.Context, venue *Venue) error {
	return g.db.WithContext(ctx).Save(venue).Error
}

// DeleteVenue removes the venue; events that used it keep existing with a
// NULL venue.
func (g *GormRepo) DeleteVenue(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&Venue{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete venue: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
