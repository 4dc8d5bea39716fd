package models

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id uint) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	SaveEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id uint) error
	EventTitleDateTaken(ctx context.Context, title string, startDate datatypes.Date, excludeID uint) (bool, error)
}

func (g *GormRepo) CreateEvent(ctx context.Context, event *Event) error {
	return g.db.WithContext(ctx).Omit("Organizer", "Venue").Create(event).Error
}

func (g *GormRepo) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	var event Event
	if err := g.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns every event, latest start first.
func (g *GormRepo) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := g.db.WithContext(ctx).
		Order("start_date DESC").
		Order("start_time DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (g *GormRepo) SaveEvent(ctx context.Context, event *Event) error {
	return g.db.WithContext(ctx).Omit("Organizer", "Venue").Save(event).Error
}

// DeleteEvent removes the event; its bookings cascade.
func (g *GormRepo) DeleteEvent(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&Event{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (g *GormRepo) EventTitleDateTaken(ctx context.Context, title string, startDate datatypes.Date, excludeID uint) (bool, error) {
	var count int64
	q := g.db.WithContext(ctx).Model(&Event{}).Where("title = ? AND start_date = ?", title, startDate)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check event uniqueness: %w", err)
	}
	return count > 0, nil
}
