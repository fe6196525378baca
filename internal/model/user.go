package model

import "time"

// User represents a platform account as stored in the `users` table.  A
// single table holds all four roles; the role-specific attribute groups are
// optional and empty for roles they do not apply to, mirroring how the
// registration endpoint accepts them.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address (login identifier).
//  PasswordHash – bcrypt hashed password.
//  Role         – donor, ngo, volunteer or admin.
//  Phone        – contact number.
//  Address/City – textual location.
//  ProfileImage – avatar URL.
//  Longitude/Latitude – last known coordinates for nearby searches.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	Phone        string    // users.phone
	Address      string    // users.address
	City         string    // users.city
	ProfileImage string    // users.profile_image
	Longitude    float64   // users.longitude
	Latitude     float64   // users.latitude
	CreatedAt    time.Time // users.created_at

	// Donor-specific attributes.
	DonorType         string // users.donor_type (Individual, Restaurant, Event, Hotel)
	DonorFoodCategory string // users.donor_food_category (Veg, Non-Veg, Both)
	AvailabilityTime  string // users.availability_time, e.g. "10 AM - 10 PM"

	// NGO-specific attributes.
	OrganizationName    string // users.organization_name
	LicenseNumber       string // users.license_number
	Capacity            uint32 // users.capacity (meals/people served)
	NgoAcceptedCategory string // users.ngo_accepted_category (Veg, Non-Veg, Both)

	// Volunteer-specific attributes.
	VehicleType   string // users.vehicle_type (Bike, Car, Van)
	PreferredArea string // users.preferred_area
	IsAvailable   bool   // users.is_available
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token value is persisted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null while active).
//  CreatedAt – creation timestamp.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
