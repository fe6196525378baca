package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/model"
	"github.com/mealbridge/food-donation-platform/internal/repository"
)

// DonationHandler serves donation creation and the listing views.  All
// methods assume JWT authentication and role validation already happened in
// middleware, except ListAvailable which is public.
type DonationHandler struct {
	Donations *repository.DonationRepo
}

// NewDonationHandler constructs a DonationHandler; the repository must be
// non-nil.
func NewDonationHandler(donations *repository.DonationRepo) *DonationHandler {
	if donations == nil {
		panic("nil repository passed to NewDonationHandler")
	}
	return &DonationHandler{Donations: donations}
}

// donationResp is the JSON shape for a single donation row.  Listing
// endpoints use repository.DonationView instead, which additionally
// resolves the stakeholders.
type donationResp struct {
	ID                 uint64    `json:"id"`
	DonorID            uint64    `json:"donor_id"`
	Title              string    `json:"title"`
	Quantity           string    `json:"quantity"`
	Description        string    `json:"description,omitempty"`
	FoodType           string    `json:"food_type"`
	Category           string    `json:"category"`
	StorageInstruction string    `json:"storage_instruction"`
	PreparationTime    time.Time `json:"preparation_time"`
	ExpiryTime         time.Time `json:"expiry_time"`
	ImageURL           string    `json:"image_url"`
	Longitude          float64   `json:"longitude"`
	Latitude           float64   `json:"latitude"`
	Address            string    `json:"address,omitempty"`
	Status             string    `json:"status"`
	RequestedBy        *uint64   `json:"requested_by,omitempty"`
	AssignedVolunteer  *uint64   `json:"assigned_volunteer,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toDonationResp(d model.Donation) donationResp {
	return donationResp{
		ID: d.ID, DonorID: d.DonorID, Title: d.Title, Quantity: d.Quantity,
		Description: d.Description, FoodType: d.FoodType, Category: d.Category,
		StorageInstruction: d.StorageInstruction, PreparationTime: d.PreparationTime,
		ExpiryTime: d.ExpiryTime, ImageURL: d.ImageURL,
		Longitude: d.Longitude, Latitude: d.Latitude, Address: d.Address,
		Status: d.Status, RequestedBy: d.RequestedBy, AssignedVolunteer: d.AssignedVolunteer,
		CreatedAt: d.CreatedAt,
	}
}

// createDonationReq binds the creation payload.  The coordinates are
// pointers so that an absent pair is distinguishable from a donation posted
// at (0,0); image, location and address are proof-of-provenance fields and
// all three are required.
type createDonationReq struct {
	Title              string   `json:"title"`
	Quantity           string   `json:"quantity"`
	Description        string   `json:"description"`
	FoodType           string   `json:"food_type"`
	Category           string   `json:"category"`
	StorageInstruction string   `json:"storage_instruction"`
	PreparationTime    string   `json:"preparation_time"` // RFC3339, optional
	ImageURL           string   `json:"image_url"`
	Longitude          *float64 `json:"longitude"`
	Latitude           *float64 `json:"latitude"`
	Address            string   `json:"address"`
}

// Create handles POST /v1/donations.  The expiry time is derived from
// category, food type and storage instruction; the caller can never set it.
// Status always starts as Available.
func (h *DonationHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createDonationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Quantity == "" || req.ImageURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/quantity/image_url required"})
	}
	if req.Longitude == nil || req.Latitude == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "longitude/latitude required"})
	}
	if strings.TrimSpace(req.Address) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "address required"})
	}
	if !lifecycle.ValidFoodType(req.FoodType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid food_type"})
	}
	if !lifecycle.ValidCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	storage := req.StorageInstruction
	if storage == "" {
		storage = lifecycle.StorageRoomTemp
	}
	if !lifecycle.ValidStorage(storage) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid storage_instruction"})
	}

	prep := time.Now().UTC()
	if req.PreparationTime != "" {
		p, err := time.Parse(time.RFC3339, req.PreparationTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "preparation_time must be RFC3339"})
		}
		prep = p.UTC()
	}

	d := model.Donation{
		DonorID:            actor.ID,
		Title:              req.Title,
		Quantity:           req.Quantity,
		Description:        req.Description,
		FoodType:           req.FoodType,
		Category:           req.Category,
		StorageInstruction: storage,
		PreparationTime:    prep,
		ExpiryTime:         lifecycle.ComputeExpiry(req.Category, req.FoodType, storage, prep),
		ImageURL:           req.ImageURL,
		Longitude:          *req.Longitude,
		Latitude:           *req.Latitude,
		Address:            req.Address,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Donations.Create(ctx, &d)
	if err != nil {
		return writeDomainError(c, err)
	}
	created, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toDonationResp(created))
}

// ListAvailable handles GET /v1/donations/available.  Supports
// ?search=biryani, ?type=Veg and optional proximity via ?lat=&lng=&radius_km=.
// Expired donations never appear, whatever their stored status; viewing
// mutates nothing.
func (h *DonationHandler) ListAvailable(c echo.Context) error {
	q := repository.AvailableQuery{
		Search:   c.QueryParam("search"),
		FoodType: c.QueryParam("type"),
	}
	latS, lngS := c.QueryParam("lat"), c.QueryParam("lng")
	if latS != "" && lngS != "" {
		lat, errLat := strconv.ParseFloat(latS, 64)
		lng, errLng := strconv.ParseFloat(lngS, 64)
		if errLat != nil || errLng != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
		}
		radius := 10.0 // km default
		if rs := c.QueryParam("radius_km"); rs != "" {
			r, err := strconv.ParseFloat(rs, 64)
			if err != nil || r <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid radius_km"})
			}
			radius = r
		}
		q.HasGeo, q.Lat, q.Lng, q.RadiusKM = true, lat, lng, radius
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListAvailable(ctx, q)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// ListMine handles GET /v1/donations/my: every donation the authenticated
// donor has posted.
func (h *DonationHandler) ListMine(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListByDonor(ctx, actor.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
