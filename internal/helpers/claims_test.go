package helpers

import (
	"testing"
	"time"

	"github.com/eventmngt/eventapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "eventapi")
	now := time.Now()

	token, err := tm.IssueToken(42, "session-1", now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "session-1", claims.SessionID())
}

func TestValidateTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", "eventapi")
	now := time.Now()

	expired, err := tm.IssueToken(1, "s", now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = tm.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	foreign, err := NewTokenManager("other", "eventapi").IssueToken(1, "s", now, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = tm.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	otherIssuer, err := NewTokenManager("secret", "someone-else").IssueToken(1, "s", now, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = tm.ValidateToken(otherIssuer)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tm.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBookingScope(t *testing.T) {
	admin := &Principal{UserID: 1, Role: models.RoleAdmin}
	organizer := &Principal{UserID: 2, Role: models.RoleOrganizer}
	customer := &Principal{UserID: 3, Role: models.RoleCustomer}

	assert.Equal(t, models.Scope{}, admin.BookingScope())
	assert.Equal(t, models.Scope{OrganizerID: 2}, organizer.BookingScope())
	assert.Equal(t, models.Scope{CustomerID: 3}, customer.BookingScope())
	assert.True(t, organizer.HasRole(models.RoleAdmin, models.RoleOrganizer))
	assert.False(t, customer.HasRole(models.RoleAdmin, models.RoleOrganizer))
}
