package lifecycle

import "time"

// Shelf lives per category.  Cooked food depends on food type and storage;
// refrigeration buys an extra 12 hours.  Anything unrecognized falls back
// to a conservative 4 hours.
const (
	shelfRaw     = 168 * time.Hour // raw produce keeps about a week
	shelfBakery  = 24 * time.Hour
	shelfPacked  = 720 * time.Hour // sealed packed goods, about a month
	shelfDefault = 4 * time.Hour

	cookedNonVeg = 3 * time.Hour // non-veg spoils faster
	cookedVeg    = 5 * time.Hour
	fridgeBonus  = 12 * time.Hour
)

// ShelfLife returns how long food of the given category, type and storage
// instruction stays safe after preparation.  The function is deterministic
// and has no side effects.
func ShelfLife(category, foodType, storage string) time.Duration {
	switch category {
	case CategoryRaw:
		return shelfRaw
	case CategoryBakery:
		return shelfBakery
	case CategoryPacked:
		return shelfPacked
	case CategoryCooked:
		life := cookedVeg
		if foodType == FoodNonVeg {
			life = cookedNonVeg
		}
		if storage == StorageRefrigerate {
			life += fridgeBonus
		}
		return life
	}
	return shelfDefault
}

// ComputeExpiry derives the expiry timestamp for a donation created with
// the given attributes.  Expiry is always strictly after the preparation
// time; callers never supply it directly.
func ComputeExpiry(category, foodType, storage string, preparedAt time.Time) time.Time {
	return preparedAt.Add(ShelfLife(category, foodType, storage))
}
