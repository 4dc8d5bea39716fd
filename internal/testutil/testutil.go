// Package testutil opens throwaway SQLite databases with the production
// schema and seeds rows for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eventmngt/eventapi/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// OpenDB returns a private in-memory database with foreign keys enforced and
// every table migrated.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	n := seq.Add(1)
	user := &models.User{
		Name:         fmt.Sprintf("%s %d", role, n),
		Email:        fmt.Sprintf("%s%d@example.com", role, n),
		PasswordHash: "unused",
		Role:         role,
		Status:       models.UserStatusActive,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedVenue(t testing.TB, db *gorm.DB) *models.Venue {
	t.Helper()
	venue := &models.Venue{
		Name:     models.VenueExpo,
		Address:  "Johar Town, Lahore",
		Capacity: 500,
	}
	require.NoError(t, db.Create(venue).Error)
	return venue
}

// SeedEvent creates an upcoming event with a unique title.
func SeedEvent(t testing.TB, db *gorm.DB, organizerID uint, venueID *uint) *models.Event {
	t.Helper()
	n := seq.Add(1)
	event := &models.Event{
		Title:       fmt.Sprintf("Event %d", n),
		Description: "Seeded event",
		OrganizerID: organizerID,
		Category:    models.CategoryMusic,
		VenueID:     venueID,
		StartDate:   Date(2030, time.June, 1),
		StartTime:   datatypes.NewTime(18, 0, 0, 0),
		EndDate:     Date(2030, time.June, 1),
		EndTime:     datatypes.NewTime(22, 0, 0, 0),
		TicketPrice: 2500,
		Capacity:    100,
		Status:      models.EventStatusUpcoming,
	}
	require.NoError(t, db.Omit("Organizer", "Venue").Create(event).Error)
	return event
}

func SeedBooking(t testing.TB, db *gorm.DB, customerID, eventID uint) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerID:      customerID,
		EventID:         eventID,
		TicketsReserved: 2,
		Status:          models.BookingStatusPending,
	}
	require.NoError(t, db.Omit("Customer", "Event").Create(booking).Error)
	return booking
}

func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
