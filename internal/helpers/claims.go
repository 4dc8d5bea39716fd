package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/eventmngt/eventapi/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// CustomClaims is the access token payload. Subject is the user id and ID
// (jti) names the server-side session.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *CustomClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// SessionID returns the session the token belongs to.
func (c *CustomClaims) SessionID() string {
	return c.ID
}

type TokenManager struct {
	secret []byte
	issuer string
}

func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// IssueToken signs an HS256 token for the user and session expiring at expiresAt.
func (tm *TokenManager) IssueToken(userID uint, sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        sessionID,
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (tm *TokenManager) ValidateToken(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Principal is the authenticated caller, resolved from the database on every
// request and handed explicitly to the services.
type Principal struct {
	UserID    uint
	Role      models.Role
	Email     string
	SessionID string
}

// Helper methods for role checking
func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p *Principal) IsOrganizer() bool {
	return p.Role == models.RoleOrganizer
}

func (p *Principal) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p *Principal) IsOwner(userID uint) bool {
	return p.UserID == userID
}

// BookingScope maps the caller's role onto the rows they may list: admins
// see everything, organizers see rows for events they organize, anyone else
// sees their own rows.
func (p *Principal) BookingScope() models.Scope {
	switch p.Role {
	case models.RoleAdmin:
		return models.Scope{}
	case models.RoleOrganizer:
		return models.Scope{OrganizerID: p.UserID}
	default:
		return models.Scope{CustomerID: p.UserID}
	}
}
