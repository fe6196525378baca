package lifecycle

import (
	"testing"
	"time"
)

func TestShelfLifeTable(t *testing.T) {
	cases := []struct {
		name     string
		category string
		foodType string
		storage  string
		want     time.Duration
	}{
		{"raw ignores type and storage", CategoryRaw, FoodNonVeg, StorageKeepHot, 168 * time.Hour},
		{"raw refrigerated unchanged", CategoryRaw, FoodVeg, StorageRefrigerate, 168 * time.Hour},
		{"bakery one day", CategoryBakery, FoodVegan, StorageRoomTemp, 24 * time.Hour},
		{"packed one month", CategoryPacked, FoodVeg, StorageKeepHot, 720 * time.Hour},
		{"cooked non-veg unrefrigerated", CategoryCooked, FoodNonVeg, StorageKeepHot, 3 * time.Hour},
		{"cooked non-veg refrigerated", CategoryCooked, FoodNonVeg, StorageRefrigerate, 15 * time.Hour},
		{"cooked veg room temperature", CategoryCooked, FoodVeg, StorageRoomTemp, 5 * time.Hour},
		{"cooked vegan keep hot", CategoryCooked, FoodVegan, StorageKeepHot, 5 * time.Hour},
		{"cooked veg refrigerated", CategoryCooked, FoodVeg, StorageRefrigerate, 17 * time.Hour},
		{"cooked vegan refrigerated", CategoryCooked, FoodVegan, StorageRefrigerate, 17 * time.Hour},
		{"unknown category falls back", "Frozen", FoodVeg, StorageRefrigerate, 4 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShelfLife(tc.category, tc.foodType, tc.storage); got != tc.want {
				t.Fatalf("ShelfLife(%q,%q,%q) = %v, want %v", tc.category, tc.foodType, tc.storage, got, tc.want)
			}
		})
	}
}

func TestComputeExpiryOffsetsPreparationTime(t *testing.T) {
	prep := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ComputeExpiry(CategoryCooked, FoodVeg, StorageKeepHot, prep)
	if want := prep.Add(5 * time.Hour); !got.Equal(want) {
		t.Fatalf("cooked veg keep hot: got %v, want %v", got, want)
	}

	// Expiry must always land strictly after preparation, for every rule.
	for _, cat := range []string{CategoryCooked, CategoryRaw, CategoryBakery, CategoryPacked, "???"} {
		for _, ft := range []string{FoodVeg, FoodNonVeg, FoodVegan} {
			for _, st := range []string{StorageKeepHot, StorageRefrigerate, StorageRoomTemp} {
				if exp := ComputeExpiry(cat, ft, st, prep); !exp.After(prep) {
					t.Fatalf("expiry %v not after preparation %v for (%s,%s,%s)", exp, prep, cat, ft, st)
				}
			}
		}
	}
}
