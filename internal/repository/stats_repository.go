package repository

import (
	"context"
	"database/sql"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
)

// PlatformStats aggregates the counters shown on the admin dashboard.
type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	Donors          int64 `json:"donors"`
	NGOs            int64 `json:"ngos"`
	Volunteers      int64 `json:"volunteers"`
	TotalDonations  int64 `json:"total_donations"`
	ActiveDonations int64 `json:"active_donations"`
	Delivered       int64 `json:"delivered"`
	Pending         int64 `json:"pending"`
	Expired         int64 `json:"expired"`
	Veg             int64 `json:"veg"`
	NonVeg          int64 `json:"non_veg"`
}

// StatsRepo runs the analytics counts over users and donations.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

func (r *StatsRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// Collect gathers all dashboard counters.  "Active" means stored status
// Available and not yet expired.  "Expired" counts both the legacy explicit
// status value and Available rows whose expiry has passed, since expiry is
// normally a derived predicate that never rewrites the row.
func (r *StatsRepo) Collect(ctx context.Context) (PlatformStats, error) {
	var (
		s   PlatformStats
		err error
	)
	steps := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&s.TotalUsers, `SELECT COUNT(*) FROM users`, nil},
		{&s.Donors, `SELECT COUNT(*) FROM users WHERE role = ?`, []any{lifecycle.RoleDonor}},
		{&s.NGOs, `SELECT COUNT(*) FROM users WHERE role = ?`, []any{lifecycle.RoleNGO}},
		{&s.Volunteers, `SELECT COUNT(*) FROM users WHERE role = ?`, []any{lifecycle.RoleVolunteer}},
		{&s.TotalDonations, `SELECT COUNT(*) FROM donations`, nil},
		{&s.ActiveDonations,
			`SELECT COUNT(*) FROM donations WHERE status = ? AND expiry_time > UTC_TIMESTAMP()`,
			[]any{lifecycle.StatusAvailable}},
		{&s.Delivered, `SELECT COUNT(*) FROM donations WHERE status = ?`, []any{lifecycle.StatusDelivered}},
		{&s.Pending, `SELECT COUNT(*) FROM donations WHERE status = ?`, []any{lifecycle.StatusPending}},
		{&s.Expired,
			`SELECT COUNT(*) FROM donations WHERE status = ?
			 OR (status = ? AND expiry_time <= UTC_TIMESTAMP())`,
			[]any{lifecycle.StatusExpired, lifecycle.StatusAvailable}},
		{&s.Veg, `SELECT COUNT(*) FROM donations WHERE food_type = ?`, []any{lifecycle.FoodVeg}},
		{&s.NonVeg, `SELECT COUNT(*) FROM donations WHERE food_type = ?`, []any{lifecycle.FoodNonVeg}},
	}
	for _, st := range steps {
		if *st.dst, err = r.count(ctx, st.query, st.args...); err != nil {
			return PlatformStats{}, err
		}
	}
	return s, nil
}
