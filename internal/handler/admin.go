package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/model"
	"github.com/mealbridge/food-donation-platform/internal/repository"
)

// AdminHandler serves the monitoring and moderation endpoints.  Routes are
// guarded by RequireRole("admin") in the router; the handlers themselves
// only deal with the operations.
type AdminHandler struct {
	Users     *repository.UserRepo
	Donations *repository.DonationRepo
	Stats     *repository.StatsRepo
}

// NewAdminHandler constructs an AdminHandler; all dependencies must be
// non-nil.
func NewAdminHandler(users *repository.UserRepo, donations *repository.DonationRepo, stats *repository.StatsRepo) *AdminHandler {
	if users == nil || donations == nil || stats == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Donations: donations, Stats: stats}
}

// adminUser is the user shape shown on the admin panel; password hashes
// stay out of responses.
type adminUser struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Phone            string    `json:"phone"`
	City             string    `json:"city,omitempty"`
	OrganizationName string    `json:"organization_name,omitempty"`
	VehicleType      string    `json:"vehicle_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toAdminUser(u model.User) adminUser {
	return adminUser{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone,
		City: u.City, OrganizationName: u.OrganizationName, VehicleType: u.VehicleType,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUser(u))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user removed"})
}

// ListDonations handles GET /v1/admin/donations: the full pipeline for
// monitoring, regardless of status or expiry.
func (h *AdminHandler) ListDonations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// DeleteDonation handles DELETE /v1/admin/donations/:id (moderation).
func (h *AdminHandler) DeleteDonation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid donation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donations.Delete(ctx, id); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "donation removed"})
}

// AssignVolunteer handles PUT /v1/admin/donations/:id/assign with body
// {"volunteer_id": N}.  Assignment is a manual admin action on an accepted
// donation; there is no automatic matching.  The target user must hold the
// volunteer role.
func (h *AdminHandler) AssignVolunteer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid donation id"})
	}
	var body struct {
		VolunteerID uint64 `json:"volunteer_id"`
	}
	if err := c.Bind(&body); err != nil || body.VolunteerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "volunteer_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, body.VolunteerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	if u.Role != lifecycle.RoleVolunteer {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user is not a volunteer"})
	}

	updated, err := h.Donations.AssignVolunteer(ctx, id, body.VolunteerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toDonationResp(updated))
}

// GetStats handles GET /v1/admin/stats: the dashboard counters.
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Stats.Collect(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
