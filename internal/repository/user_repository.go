package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mealbridge/food-donation-platform/internal/model"
	"github.com/mealbridge/food-donation-platform/internal/utils"
)

// UserRepo handles persistence for the users table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo constructs a UserRepo bound to the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, name, email, password_hash, role, phone, address, city,
 profile_image, longitude, latitude, donor_type, donor_food_category, availability_time,
 organization_name, license_number, capacity, ngo_accepted_category, vehicle_type,
 preferred_area, is_available, created_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u model.User

		donorType, donorCat, avail    sql.NullString
		orgName, license, ngoCat      sql.NullString
		vehicle, area                 sql.NullString
		capacity                      sql.NullInt64
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Address, &u.City,
		&u.ProfileImage, &u.Longitude, &u.Latitude, &donorType, &donorCat, &avail,
		&orgName, &license, &capacity, &ngoCat, &vehicle, &area, &u.IsAvailable, &u.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	u.DonorType = donorType.String
	u.DonorFoodCategory = donorCat.String
	u.AvailabilityTime = avail.String
	u.OrganizationName = orgName.String
	u.LicenseNumber = license.String
	if capacity.Valid {
		u.Capacity = uint32(capacity.Int64)
	}
	u.NgoAcceptedCategory = ngoCat.String
	u.VehicleType = vehicle.String
	u.PreferredArea = area.String
	return u, nil
}

// Create hashes the password and inserts a user together with whatever
// role-specific attributes were supplied.  Returns the new id, or
// ErrEmailExists when the unique email index rejects the row.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users
		 (name, email, password_hash, role, phone, address, city, profile_image,
		  longitude, latitude, donor_type, donor_food_category, availability_time,
		  organization_name, license_number, capacity, ngo_accepted_category,
		  vehicle_type, preferred_area, is_available)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		u.Name, u.Email, hash, u.Role, u.Phone, u.Address, u.City, u.ProfileImage,
		u.Longitude, u.Latitude, nullStr(u.DonorType), nullStr(u.DonorFoodCategory),
		nullStr(u.AvailabilityTime), nullStr(u.OrganizationName), nullStr(u.LicenseNumber),
		nullCapacity(u.Capacity), nullStr(u.NgoAcceptedCategory), nullStr(u.VehicleType),
		nullStr(u.PreferredArea), u.IsAvailable)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail looks a user up by email for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
	return scanUser(row)
}

// GetByID fetches a user or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfileImage stores a new avatar URL for the user.
func (r *UserRepo) UpdateProfileImage(ctx context.Context, id uint64, url string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET profile_image = ? WHERE id = ?`, url, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListAll returns every user, newest first, for the admin panel.  Password
// hashes stay in the struct; the handler response type omits them.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a user account (admin moderation).
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func nullCapacity(c uint32) any {
	if c == 0 {
		return nil
	}
	return c
}
