package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/model"
)

// donationColumns is the canonical select list for donation rows.  Every
// scan helper in this package expects columns in exactly this order.
const donationColumns = `id, donor_id, title, quantity, description, food_type, category,
 storage_instruction, preparation_time, expiry_time, image_url, longitude, latitude,
 address, status, requested_by, assigned_volunteer, created_at`

// DonationRepo encapsulates persistence for the donations table, including
// the conditional status update that makes lifecycle transitions atomic.
type DonationRepo struct {
	db *sql.DB
}

// NewDonationRepo constructs a DonationRepo bound to the given DB handle.
func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *DonationRepo) DB() *sql.DB { return r.db }

// scanDonation reads one donation row.  Nullable columns (description,
// address, requested_by, assigned_volunteer) are normalized into the model.
func scanDonation(row interface{ Scan(...any) error }) (model.Donation, error) {
	var (
		d           model.Donation
		description sql.NullString
		address     sql.NullString
		requestedBy sql.NullInt64
		volunteer   sql.NullInt64
	)
	err := row.Scan(
		&d.ID, &d.DonorID, &d.Title, &d.Quantity, &description, &d.FoodType, &d.Category,
		&d.StorageInstruction, &d.PreparationTime, &d.ExpiryTime, &d.ImageURL, &d.Longitude,
		&d.Latitude, &address, &d.Status, &requestedBy, &volunteer, &d.CreatedAt,
	)
	if err != nil {
		return model.Donation{}, err
	}
	d.Description = description.String
	d.Address = address.String
	if requestedBy.Valid {
		v := uint64(requestedBy.Int64)
		d.RequestedBy = &v
	}
	if volunteer.Valid {
		v := uint64(volunteer.Int64)
		d.AssignedVolunteer = &v
	}
	return d, nil
}

// Create inserts a new donation.  The caller supplies the derived expiry
// time; status always starts as Available and the claim fields as NULL.
func (r *DonationRepo) Create(ctx context.Context, d *model.Donation) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO donations
		 (donor_id, title, quantity, description, food_type, category, storage_instruction,
		  preparation_time, expiry_time, image_url, longitude, latitude, address, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.DonorID, d.Title, d.Quantity, nullStr(d.Description), d.FoodType, d.Category,
		d.StorageInstruction, d.PreparationTime.UTC(), d.ExpiryTime.UTC(), d.ImageURL,
		d.Longitude, d.Latitude, nullStr(d.Address), lifecycle.StatusAvailable)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single donation or ErrDonationNotFound.
func (r *DonationRepo) GetByID(ctx context.Context, id uint64) (model.Donation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = ?`, id)
	d, err := scanDonation(row)
	if err == sql.ErrNoRows {
		return model.Donation{}, ErrDonationNotFound
	}
	return d, err
}

// ApplyChange persists a lifecycle change as a single compare-and-set
// UPDATE: the row must still hold the status the decision was made against.
// Zero affected rows means somebody else transitioned the donation first (or
// it was deleted); the row is re-read to distinguish ErrConflict from
// ErrDonationNotFound.  On success the fresh row is returned.
func (r *DonationRepo) ApplyChange(ctx context.Context, id uint64, ch lifecycle.Change) (model.Donation, error) {
	sets := []string{"status = ?"}
	args := []any{ch.To}
	if ch.SetRequestedBy != nil {
		sets = append(sets, "requested_by = ?")
		args = append(args, *ch.SetRequestedBy)
	}
	if ch.ClearRequestedBy {
		sets = append(sets, "requested_by = NULL")
	}
	if ch.ClearVolunteer {
		sets = append(sets, "assigned_volunteer = NULL")
	}
	args = append(args, id, ch.From)

	res, err := r.db.ExecContext(ctx,
		`UPDATE donations SET `+strings.Join(sets, ", ")+` WHERE id = ? AND status = ?`,
		args...)
	if err != nil {
		return model.Donation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Donation{}, err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return model.Donation{}, getErr
		}
		return model.Donation{}, ErrConflict
	}
	return r.GetByID(ctx, id)
}

// AssignVolunteer sets assigned_volunteer on an accepted donation.  The
// update is conditional on status so a cancelled or delivered donation can
// never pick up an assignee.
func (r *DonationRepo) AssignVolunteer(ctx context.Context, donationID, volunteerID uint64) (model.Donation, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE donations SET assigned_volunteer = ? WHERE id = ? AND status = ?`,
		volunteerID, donationID, lifecycle.StatusAccepted)
	if err != nil {
		return model.Donation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Donation{}, err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, donationID); getErr != nil {
			return model.Donation{}, getErr
		}
		return model.Donation{}, ErrConflict
	}
	return r.GetByID(ctx, donationID)
}

// Delete removes a donation (admin moderation).
func (r *DonationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDonationNotFound
	}
	return nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
