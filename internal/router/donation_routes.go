package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/handler"
	"github.com/mealbridge/food-donation-platform/internal/middleware"
)

// RegisterPublicDonations registers the browse endpoint that guests may hit
// without a session.  The optional cache middleware (nil when Redis is not
// configured) shields the hot listing query; cached responses expire fast
// enough that newly posted or claimed donations surface quickly.
func RegisterPublicDonations(e *echo.Echo, d *handler.DonationHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/donations/available", d.ListAvailable, cache)
		return
	}
	e.GET("/v1/donations/available", d.ListAvailable)
}

// RegisterDonor registers donor-scoped endpoints under /v1.  All routes
// require a valid JWT and the donor role.  Donors post donations, review
// their own listings, see incoming NGO requests and answer them.
func RegisterDonor(e *echo.Echo, d *handler.DonationHandler, l *handler.LifecycleHandler, v *handler.ViewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("donor"),
	)
	g.POST("/donations", d.Create)
	g.GET("/donations/my", d.ListMine)
	g.GET("/donations/requests/donor", v.DonorRequests)
	g.PUT("/donations/:id/respond", l.Respond)
}

// RegisterNgo registers NGO-scoped endpoints under /v1.  NGOs claim
// available donations, withdraw claims and track everything they have
// requested.
func RegisterNgo(e *echo.Echo, l *handler.LifecycleHandler, v *handler.ViewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ngo"),
	)
	g.PUT("/donations/:id/request", l.Request)
	g.PUT("/donations/:id/cancel", l.Cancel)
	g.GET("/donations/requests/ngo", v.NgoRequests)
}

// RegisterVolunteer registers volunteer-scoped endpoints under /v1.
// Volunteers see the delivery board and advance assigned donations through
// pickup and delivery.
func RegisterVolunteer(e *echo.Echo, l *handler.LifecycleHandler, v *handler.ViewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("volunteer"),
	)
	g.GET("/donations/tasks/volunteer", v.VolunteerTasks)
	g.PUT("/donations/:id/status", l.Advance)
}
