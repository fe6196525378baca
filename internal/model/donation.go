package model

import "time"

// Donation is a single food-surplus listing posted by a donor.  It is the
// aggregate root of the platform: NGOs claim it, volunteers deliver it and
// every lifecycle transition mutates exactly this row.
//
// Fields:
//  ID                 – primary key identifier.
//  DonorID            – user who posted the donation; never changes.
//  Title              – short label, e.g. "Rice & Sambar".
//  Quantity           – free-form amount, e.g. "5 kg".
//  Description        – ingredients / allergens.
//  FoodType           – Veg, Non-Veg or Vegan.
//  Category           – Cooked, Raw, Bakery or Packed.
//  StorageInstruction – Keep Hot, Refrigerate or Room Temperature.
//  PreparationTime    – when the food was prepared.
//  ExpiryTime         – derived from category/type/storage; never set by the
//                       caller directly.
//  ImageURL           – photo of the food (visual proof).
//  Longitude/Latitude – pickup coordinates.
//  Address            – human-readable pickup address.
//  Status             – lifecycle state (see internal/lifecycle).
//  RequestedBy        – NGO currently claiming the donation (nullable).
//  AssignedVolunteer  – volunteer delivering it (nullable, set by an admin).
//  CreatedAt          – creation timestamp.
type Donation struct {
	ID                 uint64    // donations.id
	DonorID            uint64    // donations.donor_id
	Title              string    // donations.title
	Quantity           string    // donations.quantity
	Description        string    // donations.description
	FoodType           string    // donations.food_type
	Category           string    // donations.category
	StorageInstruction string    // donations.storage_instruction
	PreparationTime    time.Time // donations.preparation_time
	ExpiryTime         time.Time // donations.expiry_time
	ImageURL           string    // donations.image_url
	Longitude          float64   // donations.longitude
	Latitude           float64   // donations.latitude
	Address            string    // donations.address
	Status             string    // donations.status
	RequestedBy        *uint64   // donations.requested_by (nullable)
	AssignedVolunteer  *uint64   // donations.assigned_volunteer (nullable)
	CreatedAt          time.Time // donations.created_at
}
