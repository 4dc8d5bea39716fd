package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst. An empty body decodes as an
// empty object so that missing fields are reported by validation.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Errors: models.NewFieldError(typeErr.Field, models.MsgIncorrect),
		})
		return false
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Errors: models.NewFieldError(models.NonFieldErrors, "JSON parse error - "+err.Error()),
	})
	return false
}

// respondError maps service errors onto status codes. Anything unrecognised
// is left to the ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	if fe, ok := models.AsFieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: fe})
		return
	}

	status := 0
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountSuspended),
		errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	}
	if status == 0 {
		_ = c.Error(err)
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// principal returns the authenticated caller, answering 401 when there is none.
func principal(c *gin.Context) (*helpers.Principal, bool) {
	p, ok := helpers.GetPrincipal(c)
	if !ok {
		respondError(c, services.ErrUnauthenticated)
		return nil, false
	}
	return p, true
}

// pathID reads the :id parameter. Ids that cannot exist answer with the
// given not found error.
func pathID(c *gin.Context, notFound error) (uint, bool) {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		respondError(c, notFound)
		return 0, false
	}
	return id, true
}
