package repository

import (
	"strings"
	"testing"
)

func TestBuildAvailableFilterAlwaysExcludesExpired(t *testing.T) {
	where, args := buildAvailableFilter(AvailableQuery{})
	if !strings.Contains(where, "d.expiry_time > UTC_TIMESTAMP()") {
		t.Fatalf("expiry predicate missing from %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("no filters requested, got args %v", args)
	}
}

func TestBuildAvailableFilterSearchIsCaseInsensitive(t *testing.T) {
	where, args := buildAvailableFilter(AvailableQuery{Search: "  BirYani "})
	if !strings.Contains(where, "LOWER(d.title) LIKE ?") || !strings.Contains(where, "LOWER(d.description) LIKE ?") {
		t.Fatalf("search clause missing from %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("want 2 search args, got %v", args)
	}
	for _, a := range args {
		if a != "%biryani%" {
			t.Fatalf("search arg %v not lower-cased and trimmed", a)
		}
	}
}

func TestBuildAvailableFilterFoodType(t *testing.T) {
	where, args := buildAvailableFilter(AvailableQuery{FoodType: "Veg"})
	if !strings.Contains(where, "d.food_type = ?") {
		t.Fatalf("food type clause missing from %q", where)
	}
	if len(args) != 1 || args[0] != "Veg" {
		t.Fatalf("unexpected args %v", args)
	}

	// "All" means no filter, same as empty.
	where, args = buildAvailableFilter(AvailableQuery{FoodType: "All"})
	if strings.Contains(where, "d.food_type") || len(args) != 0 {
		t.Fatalf("All should not filter: %q %v", where, args)
	}
}

func TestBuildAvailableFilterGeo(t *testing.T) {
	where, args := buildAvailableFilter(AvailableQuery{HasGeo: true, Lat: 12.97, Lng: 77.59, RadiusKM: 5})
	if !strings.Contains(where, "ST_Distance_Sphere") {
		t.Fatalf("geo clause missing from %q", where)
	}
	if len(args) != 3 {
		t.Fatalf("want lng/lat/radius args, got %v", args)
	}
	if args[0] != 77.59 || args[1] != 12.97 {
		t.Fatalf("POINT takes longitude then latitude, got %v", args[:2])
	}
	if args[2] != float64(5000) {
		t.Fatalf("radius should be meters, got %v", args[2])
	}
}

func TestStatusSet(t *testing.T) {
	ph, args := statusSet([]string{"Pending", "Accepted"})
	if ph != "?,?" {
		t.Fatalf("placeholders %q", ph)
	}
	if len(args) != 2 || args[0] != "Pending" || args[1] != "Accepted" {
		t.Fatalf("args %v", args)
	}
}
