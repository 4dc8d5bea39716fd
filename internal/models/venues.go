package models

type VenueName string

const (
	VenuePearlContinental VenueName = "pc"
	VenueFalettis         VenueName = "falettis"
	VenueAlhamra          VenueName = "alhamra"
	VenueExpo             VenueName = "expo"
	VenueRoyalPalm        VenueName = "royalpalm"
)

var venueDisplayNames = map[VenueName]string{
	VenuePearlContinental: "Pearl Continental Hotel",
	VenueFalettis:         "Faletti's Hotel",
	VenueAlhamra:          "Alhamra Arts Council",
	VenueExpo:             "Expo Center Lahore",
	VenueRoyalPalm:        "Royal Palm Golf & Country Club",
}

// DisplayName returns the human readable venue name, or the code itself for
// unknown values.
func (n VenueName) DisplayName() string {
	if d, ok := venueDisplayNames[n]; ok {
		return d
	}
	return string(n)
}

type Venue struct {
	ID       uint      `gorm:"primaryKey"`
	Name     VenueName `gorm:"type:varchar(50);not null"`
	Address  string    `gorm:"type:text;not null"`
	Capacity int       `gorm:"not null;check:chk_venues_capacity,capacity >= 0"`
}
