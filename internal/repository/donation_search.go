package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
)

// AvailableQuery defines the optional filters for the public donation
// listing: a case-insensitive substring match over title and description,
// an exact food type, and a geo-proximity circle around the caller.
type AvailableQuery struct {
	Search   string
	FoodType string
	HasGeo   bool
	Lat      float64
	Lng      float64
	RadiusKM float64
}

// StakeholderSummary is the slice of a user record attached to listing
// rows so clients can render donor/NGO/volunteer details without extra
// round trips.
type StakeholderSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	VehicleType      string `json:"vehicle_type,omitempty"`
}

// DonationView is a donation row shaped for API responses, with the
// referenced stakeholders resolved.
type DonationView struct {
	ID                 uint64              `json:"id"`
	Title              string              `json:"title"`
	Quantity           string              `json:"quantity"`
	Description        string              `json:"description,omitempty"`
	FoodType           string              `json:"food_type"`
	Category           string              `json:"category"`
	StorageInstruction string              `json:"storage_instruction"`
	PreparationTime    time.Time           `json:"preparation_time"`
	ExpiryTime         time.Time           `json:"expiry_time"`
	ImageURL           string              `json:"image_url"`
	Longitude          float64             `json:"longitude"`
	Latitude           float64             `json:"latitude"`
	Address            string              `json:"address,omitempty"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	Donor              *StakeholderSummary `json:"donor,omitempty"`
	RequestedBy        *StakeholderSummary `json:"requested_by,omitempty"`
	AssignedVolunteer  *StakeholderSummary `json:"assigned_volunteer,omitempty"`
}

// viewColumns selects a donation joined with its three stakeholders.  The
// donor join is inner (donor_id is required); requester and volunteer are
// left joins because the claim fields are nullable.
const viewColumns = `d.id, d.title, d.quantity, d.description, d.food_type, d.category,
 d.storage_instruction, d.preparation_time, d.expiry_time, d.image_url, d.longitude,
 d.latitude, d.address, d.status, d.created_at,
 u.id, u.name, u.phone, u.address,
 rq.id, rq.name, rq.email, rq.phone, rq.organization_name,
 vol.id, vol.name, vol.phone, vol.vehicle_type`

const viewJoins = ` FROM donations d
 JOIN users u ON u.id = d.donor_id
 LEFT JOIN users rq ON rq.id = d.requested_by
 LEFT JOIN users vol ON vol.id = d.assigned_volunteer`

// buildAvailableFilter produces the WHERE clause and arguments for the
// available listing.  Expiry is evaluated here, at query time: a donation
// whose expiry has passed is excluded whatever its stored status says.
// Kept as a pure function so the clause shape is unit-testable.
func buildAvailableFilter(q AvailableQuery) (string, []any) {
	where := []string{"d.expiry_time > UTC_TIMESTAMP()"}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "(LOWER(d.title) LIKE ? OR LOWER(d.description) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	if q.FoodType != "" && q.FoodType != "All" {
		where = append(where, "d.food_type = ?")
		args = append(args, q.FoodType)
	}
	if q.HasGeo {
		// ST_Distance_Sphere works on POINT(longitude, latitude) and
		// returns meters.
		where = append(where, "ST_Distance_Sphere(POINT(d.longitude, d.latitude), POINT(?, ?)) <= ?")
		args = append(args, q.Lng, q.Lat, q.RadiusKM*1000)
	}
	return strings.Join(where, " AND "), args
}

func scanDonationView(rows *sql.Rows) (DonationView, error) {
	var (
		v           DonationView
		description sql.NullString
		address     sql.NullString

		donorID              uint64
		donorName, donorPh   string
		donorAddr            sql.NullString
		rqID                 sql.NullInt64
		rqName, rqEmail      sql.NullString
		rqPhone, rqOrg       sql.NullString
		volID                sql.NullInt64
		volName, volPh, volV sql.NullString
	)
	err := rows.Scan(
		&v.ID, &v.Title, &v.Quantity, &description, &v.FoodType, &v.Category,
		&v.StorageInstruction, &v.PreparationTime, &v.ExpiryTime, &v.ImageURL, &v.Longitude,
		&v.Latitude, &address, &v.Status, &v.CreatedAt,
		&donorID, &donorName, &donorPh, &donorAddr,
		&rqID, &rqName, &rqEmail, &rqPhone, &rqOrg,
		&volID, &volName, &volPh, &volV,
	)
	if err != nil {
		return DonationView{}, err
	}
	v.Description = description.String
	v.Address = address.String
	v.Donor = &StakeholderSummary{ID: donorID, Name: donorName, Phone: donorPh, Address: donorAddr.String}
	if rqID.Valid {
		v.RequestedBy = &StakeholderSummary{
			ID:               uint64(rqID.Int64),
			Name:             rqName.String,
			Email:            rqEmail.String,
			Phone:            rqPhone.String,
			OrganizationName: rqOrg.String,
		}
	}
	if volID.Valid {
		v.AssignedVolunteer = &StakeholderSummary{
			ID:          uint64(volID.Int64),
			Name:        volName.String,
			Phone:       volPh.String,
			VehicleType: volV.String,
		}
	}
	return v, nil
}

func (r *DonationRepo) queryViews(ctx context.Context, query string, args ...any) ([]DonationView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	views := []DonationView{}
	for rows.Next() {
		v, err := scanDonationView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListAvailable returns unexpired donations matching the filter, newest
// first.  Viewing never mutates state – an expired donation is simply not
// returned, its row is untouched.
func (r *DonationRepo) ListAvailable(ctx context.Context, q AvailableQuery) ([]DonationView, error) {
	where, args := buildAvailableFilter(q)
	return r.queryViews(ctx,
		`SELECT `+viewColumns+viewJoins+` WHERE `+where+` ORDER BY d.created_at DESC`,
		args...)
}

// ListByDonor returns every donation posted by the given donor.
func (r *DonationRepo) ListByDonor(ctx context.Context, donorID uint64) ([]DonationView, error) {
	return r.queryViews(ctx,
		`SELECT `+viewColumns+viewJoins+` WHERE d.donor_id = ? ORDER BY d.created_at DESC`,
		donorID)
}

// ListDonorRequests returns the donor's donations that currently carry an
// NGO claim, with the requester and any assigned volunteer resolved.
func (r *DonationRepo) ListDonorRequests(ctx context.Context, donorID uint64) ([]DonationView, error) {
	statuses, args := statusSet(lifecycle.ActiveRequestStatuses())
	args = append([]any{donorID}, args...)
	return r.queryViews(ctx,
		`SELECT `+viewColumns+viewJoins+` WHERE d.donor_id = ? AND d.status IN (`+statuses+`)
		 ORDER BY d.created_at DESC`,
		args...)
}

// ListByRequester returns every donation the given NGO has requested,
// whatever state the claim reached.
func (r *DonationRepo) ListByRequester(ctx context.Context, ngoID uint64) ([]DonationView, error) {
	return r.queryViews(ctx,
		`SELECT `+viewColumns+viewJoins+` WHERE d.requested_by = ? ORDER BY d.created_at DESC`,
		ngoID)
}

// ListVolunteerTasks returns donations in a delivery-relevant state that
// have a volunteer assigned.
func (r *DonationRepo) ListVolunteerTasks(ctx context.Context) ([]DonationView, error) {
	statuses, args := statusSet(lifecycle.DeliveryStatuses())
	return r.queryViews(ctx,
		`SELECT `+viewColumns+viewJoins+` WHERE d.status IN (`+statuses+`)
		 AND d.assigned_volunteer IS NOT NULL ORDER BY d.created_at DESC`,
		args...)
}

// ListAll returns every donation with its donor, for admin monitoring.
func (r *DonationRepo) ListAll(ctx context.Context) ([]DonationView, error) {
	return r.queryViews(ctx,
		`SELECT ` + viewColumns + viewJoins + ` ORDER BY d.created_at DESC`)
}

// statusSet expands a status slice into an IN (...) placeholder list.
func statusSet(statuses []string) (string, []any) {
	ph := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		ph[i] = "?"
		args[i] = s
	}
	return strings.Join(ph, ","), args
}
