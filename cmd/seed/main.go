package main

// Seeds the database with a demo cast of users and a handful of donations.
// Existing rows are wiped first; run this against development databases
// only.

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/mealbridge/food-donation-platform/internal/config"
	"github.com/mealbridge/food-donation-platform/internal/database"
	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/model"
	"github.com/mealbridge/food-donation-platform/internal/repository"
)

const defaultPassword = "123456"

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, table := range []string{"refresh_tokens", "donations", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("wipe %s: %v", table, err)
		}
	}
	log.Println("existing data removed")

	users := repository.NewUserRepo(db)
	donations := repository.NewDonationRepo(db)

	seedUsers := []model.User{
		{
			Name: "Super Admin", Email: "admin@test.com", Role: lifecycle.RoleAdmin,
			Phone: "9999999999", Address: "HQ, Chennai", City: "Chennai",
			ProfileImage: "https://cdn-icons-png.flaticon.com/512/906/906343.png",
		},
		{
			Name: "Ram Kumar", Email: "donor@test.com", Role: lifecycle.RoleDonor,
			Phone: "9876543210", Address: "2nd Street, Anna Nagar", City: "Chennai",
			DonorType: "Individual", AvailabilityTime: "9 AM - 6 PM",
			ProfileImage: "https://img.freepik.com/free-photo/portrait-white-man-isolated_53876-40306.jpg",
		},
		{
			Name: "Hotel Saravana Bhavan", Email: "hotel@test.com", Role: lifecycle.RoleDonor,
			Phone: "044-12345678", Address: "T-Nagar Main Road", City: "Chennai",
			DonorType: "Restaurant", AvailabilityTime: "10 PM - 11 PM",
			ProfileImage: "https://b.zmtcdn.com/data/pictures/chains/8/65088/6f131a9427df96d48f654b9aa58cd07c.jpg",
		},
		{
			Name: "Helping Hands NGO", Email: "ngo@test.com", Role: lifecycle.RoleNGO,
			Phone: "8888888888", Address: "NGO Colony, Adyar", City: "Chennai",
			OrganizationName: "Helping Hands Foundation", LicenseNumber: "NGO-TN-12345", Capacity: 500,
			ProfileImage: "https://cdn-icons-png.flaticon.com/512/2830/2830305.png",
		},
		{
			Name: "Vijay (Volunteer)", Email: "volunteer@test.com", Role: lifecycle.RoleVolunteer,
			Phone: "7777777777", Address: "Velachery", City: "Chennai",
			VehicleType: "Bike", PreferredArea: "South Chennai", IsAvailable: true,
			ProfileImage: "https://img.freepik.com/free-photo/young-bearded-man-with-striped-shirt_273609-5677.jpg",
		},
	}

	ids := make([]uint64, 0, len(seedUsers))
	for i := range seedUsers {
		id, err := users.Create(ctx, &seedUsers[i], defaultPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("seed user %s: %v", seedUsers[i].Email, err)
		}
		ids = append(ids, id)
	}
	log.Printf("%d users created", len(ids))

	ramID, hotelID := ids[1], ids[2]
	now := time.Now().UTC()

	seedDonations := []model.Donation{
		{
			DonorID: ramID, Title: "Veg Biryani (Leftover)", Quantity: "5 kg",
			Description:        "Fresh homemade veg biryani, cooked for a party. Contains nuts.",
			FoodType:           lifecycle.FoodVeg,
			Category:           lifecycle.CategoryCooked,
			StorageInstruction: lifecycle.StorageKeepHot,
			ImageURL:           "https://www.indianhealthyrecipes.com/wp-content/uploads/2022/02/hyderabadi-biryani-recipe-chicken.jpg",
			Longitude:          80.22, Latitude: 13.02, Address: "Anna Nagar, Chennai",
		},
		{
			DonorID: hotelID, Title: "50 Idlis & Sambar", Quantity: "50 pieces",
			Description:        "Surplus breakfast items. Freshly made.",
			FoodType:           lifecycle.FoodVeg,
			Category:           lifecycle.CategoryCooked,
			StorageInstruction: lifecycle.StorageRoomTemp,
			ImageURL:           "https://www.cookwithmanali.com/wp-content/uploads/2020/05/Soft-Homemade-Idli-500x500.jpg",
			Longitude:          80.24, Latitude: 13.04, Address: "T-Nagar, Chennai",
		},
		{
			DonorID: ramID, Title: "Wheat Bread Packets", Quantity: "10 packets",
			Description:        "Sealed bakery items, near expiry date.",
			FoodType:           lifecycle.FoodVeg,
			Category:           lifecycle.CategoryBakery,
			StorageInstruction: lifecycle.StorageRoomTemp,
			ImageURL:           "https://www.bigbasket.com/media/uploads/p/l/40009472_4-fresho-whole-wheat-bread-safe-preservative-free.jpg",
			Longitude:          80.22, Latitude: 13.02, Address: "Anna Nagar, Chennai",
		},
		{
			DonorID: ramID, Title: "Rice (Raw)", Quantity: "25 kg",
			Description:        "Uncooked raw rice bag.",
			FoodType:           lifecycle.FoodVeg,
			Category:           lifecycle.CategoryRaw,
			StorageInstruction: lifecycle.StorageRoomTemp,
			ImageURL:           "https://5.imimg.com/data5/SELLER/Default/2023/9/344847396/SX/DX/SS/3436034/white-raw-rice.jpeg",
			Longitude:          80.22, Latitude: 13.02, Address: "Anna Nagar, Chennai",
		},
	}

	donationIDs := make([]uint64, 0, len(seedDonations))
	for i := range seedDonations {
		d := &seedDonations[i]
		d.PreparationTime = now
		d.ExpiryTime = lifecycle.ComputeExpiry(d.Category, d.FoodType, d.StorageInstruction, now)
		id, err := donations.Create(ctx, d)
		if err != nil {
			log.Fatalf("seed donation %q: %v", d.Title, err)
		}
		donationIDs = append(donationIDs, id)
	}
	log.Printf("%d donations created", len(donationIDs))

	ngoID, volunteerID := ids[3], ids[4]
	ngo := lifecycle.Actor{ID: ngoID, Role: lifecycle.RoleNGO}
	donor := lifecycle.Actor{ID: ramID, Role: lifecycle.RoleDonor}

	// Walk the bread packets into a pending request and the biryani all the
	// way to Accepted with a volunteer, so every listing view has content.
	transition(ctx, donations, donationIDs[2], ngo, lifecycle.EventRequest)
	transition(ctx, donations, donationIDs[0], ngo, lifecycle.EventRequest)
	transition(ctx, donations, donationIDs[0], donor, lifecycle.EventAccept)
	if _, err := donations.AssignVolunteer(ctx, donationIDs[0], volunteerID); err != nil {
		log.Fatalf("assign volunteer: %v", err)
	}

	log.Println("seeding complete")
}

func transition(ctx context.Context, repo *repository.DonationRepo, id uint64, actor lifecycle.Actor, ev lifecycle.Event) {
	d, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Fatalf("load donation %d: %v", id, err)
	}
	ch, err := lifecycle.Decide(actor, &d, ev)
	if err != nil {
		log.Fatalf("decide %s on donation %d: %v", ev, id, err)
	}
	if _, err := repo.ApplyChange(ctx, id, ch); err != nil {
		log.Fatalf("apply %s on donation %d: %v", ev, id, err)
	}
}
