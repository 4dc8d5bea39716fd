package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryMusic      Category = "music"
	CategorySports     Category = "sports"
	CategoryEducation  Category = "education"
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event rows cascade away with their organizer and lose their venue (set to
// NULL) when the venue is deleted. Title and start date are unique together.
type Event struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"size:200;not null;uniqueIndex:idx_events_title_start_date,priority:1"`
	Description string         `gorm:"type:text;not null"`
	OrganizerID uint           `gorm:"not null;index"`
	Organizer   *User          `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category    Category       `gorm:"type:varchar(20);not null"`
	VenueID     *uint          `gorm:"index"`
	Venue       *Venue         `gorm:"foreignKey:VenueID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	StartDate   datatypes.Date `gorm:"not null;uniqueIndex:idx_events_title_start_date,priority:2"`
	StartTime   datatypes.Time `gorm:"not null"`
	EndDate     datatypes.Date `gorm:"not null"`
	EndTime     datatypes.Time `gorm:"not null"`
	TicketPrice Money          `gorm:"type:numeric(10,2);not null"`
	Capacity    int            `gorm:"not null;check:chk_events_capacity,capacity >= 0"`
	Status      EventStatus    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptsBookings reports whether new bookings may be placed on the event.
func (e *Event) AcceptsBookings() bool {
	return e.Status == EventStatusUpcoming || e.Status == EventStatusOngoing
}
