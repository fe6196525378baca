package lifecycle

import (
	"time"

	"github.com/mealbridge/food-donation-platform/internal/model"
)

// Donation statuses.  Available is the initial state; Delivered and
// Cancelled are terminal.  Expired is never written by a transition – a
// donation counts as expired the moment its expiry time passes, which the
// listing queries evaluate at read time.  The constant exists so admin
// analytics can also count legacy rows that carry the explicit value.
const (
	StatusAvailable = "Available"
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusPickedUp  = "PickedUp"
	StatusDelivered = "Delivered"
	StatusExpired   = "Expired"
	StatusCancelled = "Cancelled"
)

// User roles as stored in users.role and carried in the JWT role claim.
const (
	RoleDonor     = "donor"
	RoleNGO       = "ngo"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// Food types, categories and storage instructions accepted at creation.
const (
	FoodVeg    = "Veg"
	FoodNonVeg = "Non-Veg"
	FoodVegan  = "Vegan"

	CategoryCooked = "Cooked"
	CategoryRaw    = "Raw"
	CategoryBakery = "Bakery"
	CategoryPacked = "Packed"

	StorageKeepHot     = "Keep Hot"
	StorageRefrigerate = "Refrigerate"
	StorageRoomTemp    = "Room Temperature"
)

// Actor identifies the authenticated user attempting an event.  It is
// passed explicitly to every lifecycle decision; nothing in this package
// reads ambient request state.
type Actor struct {
	ID   uint64
	Role string
}

// ValidFoodType reports whether s is one of the accepted food types.
func ValidFoodType(s string) bool {
	return s == FoodVeg || s == FoodNonVeg || s == FoodVegan
}

// ValidCategory reports whether s is one of the accepted categories.
func ValidCategory(s string) bool {
	return s == CategoryCooked || s == CategoryRaw || s == CategoryBakery || s == CategoryPacked
}

// ValidStorage reports whether s is one of the accepted storage instructions.
func ValidStorage(s string) bool {
	return s == StorageKeepHot || s == StorageRefrigerate || s == StorageRoomTemp
}

// ValidRole reports whether s is a self-registrable role.  Admin accounts
// are provisioned by the seeder, never through the public register endpoint.
func ValidRole(s string) bool {
	return s == RoleDonor || s == RoleNGO || s == RoleVolunteer
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// IsExpired reports whether the donation has passed its expiry time.
// Expiry is a derived predicate, not a stored transition: the row keeps
// whatever status it had, listings simply stop returning it.
func IsExpired(d *model.Donation, now time.Time) bool {
	return !d.ExpiryTime.After(now)
}

// ActiveRequestStatuses are the states in which requested_by must be set:
// an NGO has claimed the donation and the claim has not been released.
func ActiveRequestStatuses() []string {
	return []string{StatusPending, StatusAccepted, StatusPickedUp, StatusDelivered}
}

// DeliveryStatuses are the states relevant to volunteer task lists.
func DeliveryStatuses() []string {
	return []string{StatusAccepted, StatusPickedUp, StatusDelivered}
}
