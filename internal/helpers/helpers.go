package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	PrincipalKey    = "principal"
	AccessCookie    = "access_token"
	RequestIDKey    = "request_id"
	dateLayout      = "2006-01-02"
	bcryptCost      = bcrypt.DefaultCost
	maxPasswordSize = 72
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword returns a salted bcrypt hash.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordSize {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	return local + "@" + strings.ToLower(domain)
}

// ParseDate accepts YYYY-MM-DD and returns midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
}

// ParseClock accepts hh:mm or hh:mm:ss and returns its parts.
func ParseClock(s string) (hour, minute, second int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, perr := time.Parse(layout, s)
		if perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("invalid time %q", s)
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the access token cookie.
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(AccessCookie); err == nil {
		return token
	}
	return ""
}

// GetPrincipal returns the caller stored by the auth middleware.
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// SetAccessCookie stores the token in an HttpOnly cookie; maxAge <= 0 clears it.
func SetAccessCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, token, maxAge, "/", "", secure, true)
}
