package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/handler"
	"github.com/mealbridge/food-donation-platform/internal/middleware"
)

// RegisterAdmin registers admin-scoped endpoints under /v1/admin.  All
// routes require a valid JWT and the admin role.  Admins monitor the whole
// pipeline, moderate users and donations, assign volunteers to accepted
// donations and read the platform counters.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)
	g.GET("/users", a.ListUsers)
	g.DELETE("/users/:id", a.DeleteUser)
	g.GET("/donations", a.ListDonations)
	g.DELETE("/donations/:id", a.DeleteDonation)
	g.PUT("/donations/:id/assign", a.AssignVolunteer)
	g.GET("/stats", a.GetStats)
}
