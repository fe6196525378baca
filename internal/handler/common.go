package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/repository"
)

// getActor extracts the authenticated user from the echo context into the
// explicit lifecycle.Actor every core operation takes.  JWTAuth stores the
// raw claims, so the subject arrives as whatever type the JSON decoder
// produced.
func getActor(c echo.Context) (lifecycle.Actor, error) {
	var a lifecycle.Actor
	switch t := c.Get("user_id").(type) {
	case uint64:
		a.ID = t
	case int:
		a.ID = uint64(t)
	case int64:
		a.ID = uint64(t)
	case float64:
		a.ID = uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return lifecycle.Actor{}, errors.New("invalid user_id in context")
		}
		a.ID = n
	default:
		return lifecycle.Actor{}, errors.New("missing user_id in context")
	}
	if role, ok := c.Get("role").(string); ok {
		a.Role = role
	}
	if a.ID == 0 || a.Role == "" {
		return lifecycle.Actor{}, errors.New("incomplete identity in context")
	}
	return a, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// writeDomainError maps lifecycle and repository errors onto HTTP
// responses.  Every failure carries a machine-distinguishable code plus a
// short message; internal details never reach the client.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, lifecycle.ErrWrongRole):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "role may not perform this action"})
	case errors.Is(err, lifecycle.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your donation or request"})
	case errors.Is(err, lifecycle.ErrOwnDonation):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot request your own donation"})
	case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "donation state does not allow this action"})
	case errors.Is(err, lifecycle.ErrInvalidEvent):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid action"})
	case errors.Is(err, repository.ErrDonationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	// Anything else is the store misbehaving; surface it as unavailable
	// rather than retrying here.  A retry is a new request.
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
}
